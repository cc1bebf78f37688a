package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
	"github.com/jugendhilfe/casework-system/internal/core/ports"
)

// ClientService implements client case management: creation, specialist
// assignment, and listings. Role checks happen in the RBAC middleware; this
// layer validates the entities involved.
type ClientService struct {
	clients ports.ClientRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, users ports.UserRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, users: users, logger: logger}
}

func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:               input.Name,
		CaseID:             input.CaseID,
		BirthDate:          input.BirthDate,
		Address:            input.Address,
		TargetLanguage:     input.TargetLanguage,
		AssignedSpecialist: input.AssignedSpecialist,
		CreatedAt:          time.Now().UTC(),
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	if created.AssignedSpecialist != "" {
		if err := s.users.AddAssignedClient(ctx, created.AssignedSpecialist, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("client_id", created.ID).Msg("failed to update specialist back-reference")
		}
	}

	s.logger.Info().Str("client_id", created.ID).Str("case_id", created.CaseID).Msg("client created")
	return created, nil
}

// Assign sets the client's responsible specialist. The target user must exist,
// be active, and hold the Fachkraft role.
func (s *ClientService) Assign(ctx context.Context, clientID, specialistID string) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	specialist, err := s.users.FindByID(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	if specialist.Role != domain.RoleFachkraft || !specialist.IsActive {
		return nil, domain.ErrUserNotFound
	}

	if err := s.clients.SetAssignedSpecialist(ctx, clientID, specialistID); err != nil {
		return nil, err
	}

	// Back-reference on the user record; the client row stays authoritative.
	if err := s.users.AddAssignedClient(ctx, specialistID, clientID); err != nil {
		s.logger.Warn().Err(err).Str("client_id", clientID).Msg("failed to update specialist back-reference")
	}

	client.AssignedSpecialist = specialistID
	s.logger.Info().Str("client_id", clientID).Str("specialist_id", specialistID).Msg("specialist assigned")
	return client, nil
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *ClientService) ListMine(ctx context.Context, specialistID string) ([]*domain.Client, error) {
	return s.clients.ListByAssignedSpecialist(ctx, specialistID)
}

func (s *ClientService) ListSpecialists(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListSpecialists(ctx)
}

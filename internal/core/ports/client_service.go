package ports

import (
	"context"
	"time"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

// CreateClientInput carries the data for a new client case record.
type CreateClientInput struct {
	Name           string
	CaseID         string
	BirthDate      *time.Time
	Address        string
	TargetLanguage string
	// AssignedSpecialist optionally assigns a Fachkraft at creation time.
	AssignedSpecialist string
}

// ClientService defines the client management use cases (Verwaltung side,
// plus the specialist's own-clients listing).
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	// Assign sets the client's specialist and maintains the user-side
	// back-reference.
	Assign(ctx context.Context, clientID, specialistID string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	ListMine(ctx context.Context, specialistID string) ([]*domain.Client, error)
	ListSpecialists(ctx context.Context) ([]*domain.User, error)
}

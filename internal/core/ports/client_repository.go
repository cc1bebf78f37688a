package ports

import (
	"context"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

// ClientRepository defines persistence operations for client case records.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	// ListByAssignedSpecialist returns all clients currently assigned to the
	// given specialist.
	ListByAssignedSpecialist(ctx context.Context, specialistID string) ([]*domain.Client, error)
	// SetAssignedSpecialist atomically replaces the client's assignment.
	SetAssignedSpecialist(ctx context.Context, clientID, specialistID string) error
}

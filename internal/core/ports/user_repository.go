package ports

import (
	"context"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ListSpecialists returns all active users with role Fachkraft.
	ListSpecialists(ctx context.Context) ([]*domain.User, error)
	// AddAssignedClient appends clientID to the user's back-reference list
	// unless it is already present.
	AddAssignedClient(ctx context.Context, userID, clientID string) error
	// UsernamesByIDs resolves user ids to usernames for list views.
	UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

package ports

import (
	"context"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

// AuthService implements account registration and login. Self-registration is
// disabled: Register requires a Verwaltung actor.
type AuthService interface {
	Register(ctx context.Context, actor domain.Actor, username, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

func registerSpecialist(t *testing.T, svc *AuthService, repo *stubUserRepo, username string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), admin, username, "geheim123", domain.RoleFachkraft)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestRegister_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user := registerSpecialist(t, svc, repo, "maria")

	if user.Username != "maria" {
		t.Errorf("username: got %q", user.Username)
	}
	if user.Role != domain.RoleFachkraft {
		t.Errorf("role: got %q", user.Role)
	}
	if !user.IsActive {
		t.Error("new accounts start active")
	}
	if user.PasswordHash == "geheim123" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_DefaultsToFachkraft(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), admin, "jan", "geheim123", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleFachkraft {
		t.Errorf("expected default role fachkraft, got %q", user.Role)
	}
}

func TestRegister_NonAdminForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), fachkraft("u1"), "eva", "geheim123", domain.RoleFachkraft)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	registerSpecialist(t, svc, repo, "maria")

	_, err := svc.Register(context.Background(), admin, "maria", "anders456", domain.RoleFachkraft)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestRegister_RejectsEmptyCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), admin, "", "geheim123", domain.RoleFachkraft); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty username: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), admin, "maria", "", domain.RoleFachkraft); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), admin, "maria", "geheim123", "hausmeister"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown role: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	created := registerSpecialist(t, svc, repo, "maria")

	token, user, err := svc.Login(context.Background(), "maria", "geheim123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("user id: want %q, got %q", created.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}
	if claims["user_id"] != created.ID {
		t.Errorf("user_id claim: got %v", claims["user_id"])
	}
	if claims["username"] != "maria" {
		t.Errorf("username claim: got %v", claims["username"])
	}
	if claims["role"] != string(domain.RoleFachkraft) {
		t.Errorf("role claim: got %v", claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token must expire")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	registerSpecialist(t, svc, repo, "maria")

	_, _, err := svc.Login(context.Background(), "maria", "falsch")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// An unknown username answers exactly like a wrong password.
func TestLogin_UnknownUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "niemand", "geheim123")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	created := registerSpecialist(t, svc, repo, "maria")
	repo.byID[created.ID].IsActive = false

	_, _, err := svc.Login(context.Background(), "maria", "geheim123")
	if !errors.Is(err, domain.ErrUserInactive) {
		t.Errorf("expected ErrUserInactive, got %v", err)
	}
}

func TestGetUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	created := registerSpecialist(t, svc, repo, "maria")

	user, err := svc.GetUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "maria" {
		t.Errorf("got %q", user.Username)
	}

	if _, err := svc.GetUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

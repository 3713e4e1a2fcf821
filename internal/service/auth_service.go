package service

import (
	"context"
	"fmt"

	"tunedeck/internal/backend"
	"tunedeck/internal/model"
)

// AuthService handles login and registration against the identity
// provider and the users table.
type AuthService interface {
	// Login authenticates the credentials and returns the user with the
	// role read from the users table. Callers surface every failure as
	// one generic message; the returned error carries detail for logs.
	Login(ctx context.Context, email, password string) (*model.User, error)
	// Register creates the identity record and the matching users row
	// with role "user". The two writes share an id but no transaction:
	// a row-insert failure leaves a rowless identity behind.
	Register(ctx context.Context, email, password string) error
}

type authService struct {
	backend backend.Client
}

// NewAuthService creates an auth service over the backend client.
func NewAuthService(client backend.Client) AuthService {
	return &authService{backend: client}
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	identity, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	role, err := s.backend.FetchUserRole(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch role for %s: %w", identity.ID, err)
	}
	return &model.User{ID: identity.ID, Email: identity.Email, Role: role}, nil
}

func (s *authService) Register(ctx context.Context, email, password string) error {
	identity, err := s.backend.SignUp(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	user := model.User{
		ID:    identity.ID,
		Email: email,
		Role:  model.RoleUser,
	}
	if err := s.backend.CreateUserRow(ctx, user); err != nil {
		return fmt.Errorf("create user row for %s: %w", identity.ID, err)
	}
	return nil
}

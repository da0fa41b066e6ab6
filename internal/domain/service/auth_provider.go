package service

import (
	"context"
	"errors"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/auth_provider.go -package=mocks cwrs/internal/domain/service AuthProvider

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already exists")
	ErrWeakPassword    = errors.New("weak password")
)

type SignInResult struct {
	UID          string
	IDToken      string
	RefreshToken string
	ExpiresIn    int64
}

// AuthProvider is the managed identity service. Implementations translate
// provider failures into the sentinel errors above where they apply.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	VerifyToken(ctx context.Context, idToken string) (string, error)
	UpdateEmail(ctx context.Context, uid, email string) error
	UpdatePassword(ctx context.Context, uid, password string) error
}

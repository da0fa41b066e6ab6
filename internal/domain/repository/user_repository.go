package repository

import (
	"context"

	"cwrs/internal/domain/entity"
)

// UserRepository reads and writes the sellers and buyers registries.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, role entity.Role, id string) (*entity.User, error)
	// FindByID looks the id up in sellers first and then buyers.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByUsername looks the username up in sellers first and then buyers.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type ProfileRepository interface {
	Get(ctx context.Context, role entity.Role, userID string) (*entity.Profile, error)
	Save(ctx context.Context, role entity.Role, profile *entity.Profile) error
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.Profile, error)
}

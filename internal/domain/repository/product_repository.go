package repository

import (
	"context"

	"cwrs/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error)
}

package repository

import (
	"context"
	"time"

	"cwrs/internal/domain/entity"
)

type CartRepository interface {
	// Get returns an empty cart when the buyer has none yet.
	Get(ctx context.Context, buyerID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Clear(ctx context.Context, buyerID string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	SetOrderNumber(ctx context.Context, id, orderNumber string) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error)
	Confirm(ctx context.Context, id string, at time.Time) error
}

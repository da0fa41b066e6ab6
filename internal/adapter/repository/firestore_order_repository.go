package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{
		client: client,
	}
}

func (r *firestoreCartRepository) Get(ctx context.Context, buyerID string) (*entity.Cart, error) {
	doc, err := r.client.Collection(cartsCollection).Doc(buyerID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return &entity.Cart{BuyerID: buyerID, Items: []entity.CartItem{}}, nil
		}
		return nil, errors.Internal("Failed to get cart", err)
	}

	var cart entity.Cart
	if err := doc.DataTo(&cart); err != nil {
		return nil, errors.Internal("Failed to parse cart data", err)
	}
	cart.BuyerID = buyerID
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}
	return &cart, nil
}

func (r *firestoreCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now()
	if _, err := r.client.Collection(cartsCollection).Doc(cart.BuyerID).Set(ctx, cart); err != nil {
		return errors.Internal("Failed to save cart", err)
	}
	return nil
}

func (r *firestoreCartRepository) Clear(ctx context.Context, buyerID string) error {
	if _, err := r.client.Collection(cartsCollection).Doc(buyerID).Delete(ctx); err != nil {
		return errors.Internal("Failed to clear cart", err)
	}
	return nil
}

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	ref, _, err := r.client.Collection(ordersCollection).Add(ctx, order)
	if err != nil {
		return errors.Internal("Failed to create order", err)
	}
	order.ID = ref.ID
	return nil
}

func (r *firestoreOrderRepository) SetOrderNumber(ctx context.Context, id, orderNumber string) error {
	_, err := r.client.Collection(ordersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "orderNumber", Value: orderNumber},
	})
	if err != nil {
		return errors.Internal("Failed to set order number", err)
	}
	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}
	return decodeOrder(doc)
}

func (r *firestoreOrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return r.query(ctx, r.client.Collection(ordersCollection).Where("buyerId", "==", buyerID))
}

func (r *firestoreOrderRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	return r.query(ctx, r.client.Collection(ordersCollection).Where("sellerId", "==", sellerID))
}

func (r *firestoreOrderRepository) Confirm(ctx context.Context, id string, at time.Time) error {
	_, err := r.client.Collection(ordersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(entity.OrderStatusConfirmed)},
		{Path: "confirmedAt", Value: at},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Order", err)
		}
		return errors.Internal("Failed to confirm order", err)
	}
	return nil
}

func (r *firestoreOrderRepository) query(ctx context.Context, q firestore.Query) ([]*entity.Order, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("OrderRepository query Error: %v", err)
		return nil, errors.Internal("Failed to list orders", err)
	}

	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := decodeOrder(doc)
		if err != nil {
			logger.Warn("Skipping malformed order %s: %v", doc.Ref.ID, err)
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func decodeOrder(doc *firestore.DocumentSnapshot) (*entity.Order, error) {
	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	order.ID = doc.Ref.ID
	return &order, nil
}

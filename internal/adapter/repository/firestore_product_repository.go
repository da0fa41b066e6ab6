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

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	ref, _, err := r.client.Collection(productsCollection).Add(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}
	product.ID = ref.ID
	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	return decodeProduct(doc)
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	_, err := r.client.Collection(productsCollection).Doc(product.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: product.Name},
		{Path: "price", Value: product.Price},
		{Path: "quantity", Value: product.Quantity},
		{Path: "weight", Value: product.Weight},
		{Path: "materialType", Value: product.MaterialType},
		{Path: "location", Value: product.Location},
		{Path: "photoURL", Value: product.PhotoURL},
		{Path: "updatedAt", Value: product.UpdatedAt},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product", err)
	}
	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete product", err)
	}
	return nil
}

func (r *firestoreProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	return r.query(ctx, r.client.Collection(productsCollection).Query)
}

func (r *firestoreProductRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	return r.query(ctx, r.client.Collection(productsCollection).Where("sellerId", "==", sellerID))
}

func (r *firestoreProductRepository) query(ctx context.Context, q firestore.Query) ([]*entity.Product, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("ProductRepository query Error: %v", err)
		return nil, errors.Internal("Failed to list products", err)
	}

	products := make([]*entity.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := decodeProduct(doc)
		if err != nil {
			logger.Warn("Skipping malformed product %s: %v", doc.Ref.ID, err)
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func decodeProduct(doc *firestore.DocumentSnapshot) (*entity.Product, error) {
	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	product.ID = doc.Ref.ID
	return &product, nil
}

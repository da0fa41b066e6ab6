package entity

import (
	"time"
)

type Product struct {
	ID           string    `json:"id" firestore:"-"`
	Name         string    `json:"name" firestore:"name"`
	Price        float64   `json:"price" firestore:"price"`
	Quantity     *int      `json:"quantity" firestore:"quantity"`
	Weight       string    `json:"weight,omitempty" firestore:"weight,omitempty"`
	MaterialType string    `json:"material_type,omitempty" firestore:"materialType,omitempty"`
	Location     string    `json:"location,omitempty" firestore:"location,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	SellerID     string    `json:"seller_id" firestore:"sellerId"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`

	SellerName string `json:"seller_name,omitempty" firestore:"-"`
}

// OutOfStock reports a recorded quantity of zero or less. Products without a
// quantity are still offered.
func (p *Product) OutOfStock() bool {
	return p.Quantity != nil && *p.Quantity <= 0
}

// OrphanProduct is a product whose sellerId does not resolve to a seller.
type OrphanProduct struct {
	Product      *Product `json:"product"`
	OwnerIsBuyer bool     `json:"owner_is_buyer"`
	BuyerName    string   `json:"buyer_name,omitempty"`
}

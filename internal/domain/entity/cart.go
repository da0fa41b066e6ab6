package entity

import "time"

type CartItem struct {
	ID         string  `json:"id" firestore:"id"`
	Name       string  `json:"name" firestore:"name"`
	Price      float64 `json:"price" firestore:"price"`
	Quantity   int     `json:"quantity" firestore:"quantity"`
	SellerID   string  `json:"seller_id" firestore:"sellerId"`
	SellerName string  `json:"seller_name" firestore:"sellerName"`
	Weight     string  `json:"weight,omitempty" firestore:"weight,omitempty"`
	Type       string  `json:"type,omitempty" firestore:"type,omitempty"`
	PhotoURL   string  `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Cart struct {
	BuyerID   string     `json:"buyer_id" firestore:"buyerId"`
	Items     []CartItem `json:"items" firestore:"items"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
}

package entity

import "time"

// Profile holds the editable contact details of a user. Seller profiles are
// keyed by sellerId, buyer profiles by buyerId.
type Profile struct {
	SellerID    string    `json:"seller_id,omitempty" firestore:"sellerId,omitempty"`
	BuyerID     string    `json:"buyer_id,omitempty" firestore:"buyerId,omitempty"`
	Username    string    `json:"username" firestore:"username"`
	PhoneNumber string    `json:"phone_number" firestore:"phoneNumber"`
	Location    string    `json:"location" firestore:"location"`
	AvatarURL   string    `json:"avatar_url,omitempty" firestore:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (p *Profile) OwnerID() string {
	if p.SellerID != "" {
		return p.SellerID
	}
	return p.BuyerID
}

package entity

import (
	"time"
)

type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

func (r Role) Valid() bool {
	return r == RoleSeller || r == RoleBuyer
}

// Counterpart is the role a user of this role trades and chats with.
func (r Role) Counterpart() Role {
	if r == RoleSeller {
		return RoleBuyer
	}
	return RoleSeller
}

// User is a registry document in either the sellers or the buyers collection.
// The document id is the auth uid.
type User struct {
	ID        string    `json:"id" firestore:"userId"`
	Email     string    `json:"email" firestore:"email"`
	Username  string    `json:"username" firestore:"username"`
	Role      Role      `json:"role" firestore:"-"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

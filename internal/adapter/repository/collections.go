package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cwrs/internal/domain/entity"
)

const (
	sellersCollection        = "sellers"
	buyersCollection         = "buyers"
	sellerProfilesCollection = "sellerProfiles"
	buyerProfilesCollection  = "buyerProfiles"
	productsCollection       = "products"
	cartsCollection          = "carts"
	ordersCollection         = "orders"
	chatsCollection          = "chats"
	messagesCollection       = "messages"
)

func registryCollection(role entity.Role) string {
	if role == entity.RoleSeller {
		return sellersCollection
	}
	return buyersCollection
}

func profileCollection(role entity.Role) (collection, ownerField string) {
	if role == entity.RoleSeller {
		return sellerProfilesCollection, "sellerId"
	}
	return buyerProfilesCollection, "buyerId"
}

// firstWhere returns the first document matching field == value, or nil when
// there is none.
func firstWhere(ctx context.Context, col *firestore.CollectionRef, field string, value interface{}) (*firestore.DocumentSnapshot, error) {
	iter := col.Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// isStopped reports whether a snapshot listener ended because its context did.
func isStopped(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	code := status.Code(err)
	return code == codes.Canceled || code == codes.DeadlineExceeded
}

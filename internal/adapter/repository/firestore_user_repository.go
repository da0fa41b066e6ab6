package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

// Registry documents are written under the uid, but documents created by the
// web client carry a random id, so reads always go through the userId field.
func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(registryCollection(user.Role)).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user record", err)
	}
	return nil
}

func (r *firestoreUserRepository) lookup(ctx context.Context, role entity.Role, field, value string) (*entity.User, *firestore.DocumentRef, error) {
	doc, err := firstWhere(ctx, r.client.Collection(registryCollection(role)), field, value)
	if err != nil {
		logger.Error("UserRepository lookup Error: role=%s %s=%s: %v", role, field, value, err)
		return nil, nil, errors.Internal("Failed to get user", err)
	}
	if doc == nil {
		return nil, nil, errors.NotFound("User", nil)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, nil, errors.Internal("Failed to parse user data", err)
	}
	user.Role = role
	if user.ID == "" {
		user.ID = doc.Ref.ID
	}
	return &user, doc.Ref, nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, role entity.Role, id string) (*entity.User, error) {
	user, _, err := r.lookup(ctx, role, "userId", id)
	return user, err
}

func (r *firestoreUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findInRegistries(ctx, "userId", id)
}

func (r *firestoreUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findInRegistries(ctx, "username", username)
}

func (r *firestoreUserRepository) findInRegistries(ctx context.Context, field, value string) (*entity.User, error) {
	for _, role := range []entity.Role{entity.RoleSeller, entity.RoleBuyer} {
		user, _, err := r.lookup(ctx, role, field, value)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *firestoreUserRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	iter := r.client.Collection(registryCollection(role)).Documents(ctx)
	defer iter.Stop()

	var users []*entity.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list users", err)
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			logger.Warn("Skipping malformed %s document %s: %v", registryCollection(role), doc.Ref.ID, err)
			continue
		}
		user.Role = role
		if user.ID == "" {
			user.ID = doc.Ref.ID
		}
		users = append(users, &user)
	}

	return users, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	_, ref, err := r.lookup(ctx, user.Role, "userId", user.ID)
	if err != nil {
		return err
	}

	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "username", Value: user.Username},
		{Path: "email", Value: user.Email},
	})
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

type firestoreProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
	}
}

func (r *firestoreProfileRepository) find(ctx context.Context, role entity.Role, userID string) (*firestore.DocumentSnapshot, error) {
	collection, field := profileCollection(role)
	doc, err := firstWhere(ctx, r.client.Collection(collection), field, userID)
	if err != nil {
		return nil, errors.Internal("Failed to get profile", err)
	}
	return doc, nil
}

func (r *firestoreProfileRepository) Get(ctx context.Context, role entity.Role, userID string) (*entity.Profile, error) {
	doc, err := r.find(ctx, role, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.NotFound("Profile", nil)
	}

	var profile entity.Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Internal("Failed to parse profile data", err)
	}
	return &profile, nil
}

func (r *firestoreProfileRepository) Save(ctx context.Context, role entity.Role, profile *entity.Profile) error {
	collection, _ := profileCollection(role)
	ownerID := profile.OwnerID()

	existing, err := r.find(ctx, role, ownerID)
	if err != nil {
		return err
	}

	now := time.Now()
	profile.UpdatedAt = now

	if existing != nil {
		updates := []firestore.Update{
			{Path: "username", Value: profile.Username},
			{Path: "phoneNumber", Value: profile.PhoneNumber},
			{Path: "location", Value: profile.Location},
			{Path: "updatedAt", Value: now},
		}
		if profile.AvatarURL != "" {
			updates = append(updates, firestore.Update{Path: "avatarUrl", Value: profile.AvatarURL})
		}
		if _, err := existing.Ref.Update(ctx, updates); err != nil {
			return errors.Internal("Failed to update profile", err)
		}
		return nil
	}

	profile.CreatedAt = now
	if _, err := r.client.Collection(collection).Doc(ownerID).Set(ctx, profile); err != nil {
		return errors.Internal("Failed to create profile", err)
	}
	return nil
}

func (r *firestoreProfileRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.Profile, error) {
	collection, _ := profileCollection(role)
	docs, err := r.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list profiles", err)
	}

	profiles := make([]*entity.Profile, 0, len(docs))
	for _, doc := range docs {
		var profile entity.Profile
		if err := doc.DataTo(&profile); err != nil {
			logger.Warn("Skipping malformed profile %s: %v", doc.Ref.ID, err)
			continue
		}
		profiles = append(profiles, &profile)
	}
	return profiles, nil
}

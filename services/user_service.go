package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adcraft/database"
	"adcraft/models"
	"adcraft/storage"
	"adcraft/utils"
)

// UserService owns profile reads and updates.
type UserService struct {
	collection *mongo.Collection
	store      storage.StorageInterface
}

func NewUserService(store storage.StorageInterface) *UserService {
	return &UserService{
		collection: database.Users(),
		store:      store,
	}
}

// Get loads a user by id.
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// Update patches the profile. Replacing the profile picture deletes the old
// storage object.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	var staleKey string

	if req.FirstName != nil {
		set["first_name"] = utils.SanitizeText(*req.FirstName)
	}
	if req.LastName != nil {
		set["last_name"] = utils.SanitizeText(*req.LastName)
	}
	if req.ProfilePic != nil {
		set["profile_pic"] = *req.ProfilePic
	}
	if req.ProfilePicKey != nil {
		if current.ProfilePicKey != "" && current.ProfilePicKey != *req.ProfilePicKey {
			staleKey = current.ProfilePicKey
		}
		set["profile_pic_key"] = *req.ProfilePicKey
	}

	var updated models.User
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if staleKey != "" {
		s.store.DeleteObject(ctx, staleKey)
	}
	return &updated, nil
}

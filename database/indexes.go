package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adcraft/utils"
)

// CreateIndexes creates the indexes every collection relies on. Name
// uniqueness is scoped to the parent, matching the duplicate checks in the
// services.
func CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}
	if _, err := Users().Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	workspaceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "creator_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "deleted_at", Value: 1}},
		},
	}
	if _, err := Workspaces().Indexes().CreateMany(ctx, workspaceIndexes); err != nil {
		return fmt.Errorf("failed to create workspace indexes: %w", err)
	}

	folderIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "workspace_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "is_deleted", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "deleted_at", Value: 1}},
		},
	}
	if _, err := Folders().Indexes().CreateMany(ctx, folderIndexes); err != nil {
		return fmt.Errorf("failed to create folder indexes: %w", err)
	}

	assetIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "folder_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "folder_id", Value: 1}, {Key: "is_deleted", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "is_deleted", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "deleted_at", Value: 1}},
		},
	}
	if _, err := Assets().Indexes().CreateMany(ctx, assetIndexes); err != nil {
		return fmt.Errorf("failed to create asset indexes: %w", err)
	}

	adIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "folder_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "folder_id", Value: 1}, {Key: "is_deleted", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "is_deleted", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "deleted_at", Value: 1}},
		},
	}
	if _, err := Ads().Indexes().CreateMany(ctx, adIndexes); err != nil {
		return fmt.Errorf("failed to create ad indexes: %w", err)
	}

	magicLinkIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	if _, err := MagicLinks().Indexes().CreateMany(ctx, magicLinkIndexes); err != nil {
		return fmt.Errorf("failed to create magic link indexes: %w", err)
	}

	utils.Logger().Info("database indexes created")
	return nil
}

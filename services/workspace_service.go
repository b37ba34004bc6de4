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

// WorkspaceService owns workspace CRUD and fronts the cascade engine for
// workspace-rooted deletes and restores.
type WorkspaceService struct {
	collection *mongo.Collection
	cascade    *CascadeService
	relations  *CascadeConfigService
	store      storage.StorageInterface
}

func NewWorkspaceService(cascade *CascadeService, relations *CascadeConfigService, store storage.StorageInterface) *WorkspaceService {
	return &WorkspaceService{
		collection: database.Workspaces(),
		cascade:    cascade,
		relations:  relations,
		store:      store,
	}
}

// Create inserts a workspace for the creator. Names are unique per creator
// among active workspaces.
func (s *WorkspaceService) Create(ctx context.Context, creatorID primitive.ObjectID, req *models.CreateWorkspaceRequest) (*models.Workspace, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.checkDuplicateName(ctx, creatorID, req.Name, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	workspace := &models.Workspace{
		ID:                primitive.NewObjectID(),
		Name:              utils.SanitizeText(req.Name),
		Description:       utils.SanitizeText(req.Description),
		Category:          req.Category,
		Email:             req.Email,
		CreatorID:         creatorID,
		Image:             req.Image,
		ImageKey:          req.ImageKey,
		AppScreenshots:    req.AppScreenshots,
		AppScreenshotKeys: req.AppScreenshotKeys,
		IsDeleted:         false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := s.collection.InsertOne(ctx, workspace); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return workspace, nil
}

// Get loads a workspace owned by the creator.
func (s *WorkspaceService) Get(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Workspace, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var workspace models.Workspace
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "creator_id": creatorID}).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	return &workspace, nil
}

// List returns the creator's workspaces, newest first. Trashed workspaces
// are included only when requested.
func (s *WorkspaceService) List(ctx context.Context, creatorID primitive.ObjectID, page, limit int, includeDeleted bool) ([]models.Workspace, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"creator_id": creatorID}
	if !includeDeleted {
		filter["is_deleted"] = false
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count workspaces: %w", err)
	}

	skip, lim := utils.Paginate(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(lim)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workspaces: %w", err)
	}

	workspaces := make([]models.Workspace, 0, lim)
	if err := cursor.All(ctx, &workspaces); err != nil {
		return nil, 0, fmt.Errorf("failed to decode workspaces: %w", err)
	}
	return workspaces, total, nil
}

// Update patches a workspace. Replacing the image or the screenshots deletes
// the storage objects they pointed at.
func (s *WorkspaceService) Update(ctx context.Context, id, creatorID primitive.ObjectID, req *models.UpdateWorkspaceRequest) (*models.Workspace, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	current, err := s.Get(ctx, id, creatorID)
	if err != nil {
		return nil, err
	}
	if current.IsDeleted {
		return nil, ErrAlreadyDeleted
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	var staleKeys []string

	if req.Name != nil {
		if err := s.checkDuplicateName(ctx, creatorID, *req.Name, id); err != nil {
			return nil, err
		}
		set["name"] = utils.SanitizeText(*req.Name)
	}
	if req.Description != nil {
		set["description"] = utils.SanitizeText(*req.Description)
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	if req.ImageKey != nil {
		if current.ImageKey != "" && current.ImageKey != *req.ImageKey {
			staleKeys = append(staleKeys, current.ImageKey)
		}
		set["image_key"] = *req.ImageKey
	}
	if req.AppScreenshots != nil {
		set["app_screenshots"] = *req.AppScreenshots
	}
	if req.AppScreenshotKeys != nil {
		kept := make(map[string]bool, len(*req.AppScreenshotKeys))
		for _, k := range *req.AppScreenshotKeys {
			kept[k] = true
		}
		for _, old := range current.AppScreenshotKeys {
			if old != "" && !kept[old] {
				staleKeys = append(staleKeys, old)
			}
		}
		set["app_screenshot_keys"] = *req.AppScreenshotKeys
	}

	var updated models.Workspace
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "creator_id": creatorID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	for _, key := range staleKeys {
		s.store.DeleteObject(ctx, key)
	}
	return &updated, nil
}

// GetDeletePreview reports what deleting the workspace would touch.
func (s *WorkspaceService) GetDeletePreview(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadePreview, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	return s.cascade.GetCascadePreview(ctx, s.collection, id, s.relations.RelationsFor(ParentWorkspace))
}

// SoftDelete moves the workspace and its active contents to the trash.
func (s *WorkspaceService) SoftDelete(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.SoftDeleteCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentWorkspace))
	observeCascade("soft_delete", ParentWorkspace, err)
	return outcome, err
}

// HardDelete permanently removes the workspace, its contents and their
// storage objects.
func (s *WorkspaceService) HardDelete(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.HardDeleteCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentWorkspace))
	observeCascade("hard_delete", ParentWorkspace, err)
	return outcome, err
}

// Restore brings the workspace and its cascade-deleted contents back from
// the trash.
func (s *WorkspaceService) Restore(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.RestoreCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentWorkspace))
	observeCascade("restore", ParentWorkspace, err)
	return outcome, err
}

// checkDuplicateName rejects a name already used by another of the
// creator's active workspaces.
func (s *WorkspaceService) checkDuplicateName(ctx context.Context, creatorID primitive.ObjectID, name string, exclude primitive.ObjectID) error {
	filter := bson.M{
		"name":       name,
		"creator_id": creatorID,
		"is_deleted": false,
	}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}

	err := s.collection.FindOne(ctx, filter).Err()
	if err == nil {
		return ErrDuplicateName
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return fmt.Errorf("failed to check workspace name: %w", err)
}

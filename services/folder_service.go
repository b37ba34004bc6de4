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
	"adcraft/utils"
)

// FolderService owns folder CRUD and fronts the cascade engine for
// folder-rooted deletes and restores.
type FolderService struct {
	collection *mongo.Collection
	workspaces *mongo.Collection
	cascade    *CascadeService
	relations  *CascadeConfigService
}

func NewFolderService(cascade *CascadeService, relations *CascadeConfigService) *FolderService {
	return &FolderService{
		collection: database.Folders(),
		workspaces: database.Workspaces(),
		cascade:    cascade,
		relations:  relations,
	}
}

// Create inserts a folder. The workspace must exist, belong to the creator
// and not be in the trash; names are unique per workspace among active
// folders.
func (s *FolderService) Create(ctx context.Context, creatorID primitive.ObjectID, req *models.CreateFolderRequest) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	workspaceID, err := utils.StringToObjectID(req.WorkspaceID)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.requireActiveWorkspace(ctx, workspaceID, creatorID); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(ctx, workspaceID, req.Name, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	folder := &models.Folder{
		ID:          primitive.NewObjectID(),
		Name:        utils.SanitizeText(req.Name),
		WorkspaceID: workspaceID,
		FolderType:  req.FolderType,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.collection.InsertOne(ctx, folder); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// Get loads a folder and verifies the creator owns its workspace.
func (s *FolderService) Get(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var folder models.Folder
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load folder: %w", err)
	}
	if err := s.requireWorkspaceOwner(ctx, folder.WorkspaceID, creatorID); err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListByWorkspace returns a workspace's folders, newest first.
func (s *FolderService) ListByWorkspace(ctx context.Context, workspaceID, creatorID primitive.ObjectID, page, limit int, includeDeleted bool) ([]models.Folder, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.requireWorkspaceOwner(ctx, workspaceID, creatorID); err != nil {
		return nil, 0, err
	}

	filter := bson.M{"workspace_id": workspaceID}
	if !includeDeleted {
		filter["is_deleted"] = false
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count folders: %w", err)
	}

	skip, lim := utils.Paginate(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(lim)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list folders: %w", err)
	}

	folders := make([]models.Folder, 0, lim)
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode folders: %w", err)
	}
	return folders, total, nil
}

// Update renames or retypes a folder.
func (s *FolderService) Update(ctx context.Context, id, creatorID primitive.ObjectID, req *models.UpdateFolderRequest) (*models.Folder, error) {
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
	if req.Name != nil {
		if err := s.checkDuplicateName(ctx, current.WorkspaceID, *req.Name, id); err != nil {
			return nil, err
		}
		set["name"] = utils.SanitizeText(*req.Name)
	}
	if req.FolderType != nil {
		set["folder_type"] = *req.FolderType
	}

	var updated models.Folder
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
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
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	return &updated, nil
}

// GetDeletePreview reports what deleting the folder would touch.
func (s *FolderService) GetDeletePreview(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadePreview, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	return s.cascade.GetCascadePreview(ctx, s.collection, id, s.relations.RelationsFor(ParentFolder))
}

// SoftDelete moves the folder and its active contents to the trash.
func (s *FolderService) SoftDelete(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.SoftDeleteCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentFolder))
	observeCascade("soft_delete", ParentFolder, err)
	return outcome, err
}

// HardDelete permanently removes the folder, its contents and their storage
// objects.
func (s *FolderService) HardDelete(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.HardDeleteCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentFolder))
	observeCascade("hard_delete", ParentFolder, err)
	return outcome, err
}

// Restore brings the folder and its cascade-deleted contents back from the
// trash.
func (s *FolderService) Restore(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.RestoreCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentFolder))
	observeCascade("restore", ParentFolder, err)
	return outcome, err
}

func (s *FolderService) requireWorkspaceOwner(ctx context.Context, workspaceID, creatorID primitive.ObjectID) error {
	err := s.workspaces.FindOne(ctx, bson.M{"_id": workspaceID, "creator_id": creatorID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load workspace: %w", err)
	}
	return nil
}

func (s *FolderService) requireActiveWorkspace(ctx context.Context, workspaceID, creatorID primitive.ObjectID) error {
	err := s.workspaces.FindOne(ctx, bson.M{
		"_id":        workspaceID,
		"creator_id": creatorID,
		"is_deleted": false,
	}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load workspace: %w", err)
	}
	return nil
}

func (s *FolderService) checkDuplicateName(ctx context.Context, workspaceID primitive.ObjectID, name string, exclude primitive.ObjectID) error {
	filter := bson.M{
		"name":         name,
		"workspace_id": workspaceID,
		"is_deleted":   false,
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
	return fmt.Errorf("failed to check folder name: %w", err)
}

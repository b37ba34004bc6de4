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

// AssetService owns asset CRUD. Assets are cascade leaves: their deletes
// and restores go through the engine with no child relations.
type AssetService struct {
	collection *mongo.Collection
	folders    *mongo.Collection
	workspaces *mongo.Collection
	cascade    *CascadeService
	relations  *CascadeConfigService
	store      storage.StorageInterface
}

func NewAssetService(cascade *CascadeService, relations *CascadeConfigService, store storage.StorageInterface) *AssetService {
	return &AssetService{
		collection: database.Assets(),
		folders:    database.Folders(),
		workspaces: database.Workspaces(),
		cascade:    cascade,
		relations:  relations,
		store:      store,
	}
}

// AssetListFilter narrows List results.
type AssetListFilter struct {
	FolderID       *primitive.ObjectID
	WorkspaceID    *primitive.ObjectID
	AssetType      string
	Search         string
	IncludeDeleted bool
}

// Create registers an uploaded file as an asset. The folder must be active;
// the workspace is derived from it. Names are unique per folder among
// active assets.
func (s *AssetService) Create(ctx context.Context, creatorID primitive.ObjectID, req *models.CreateAssetRequest) (*models.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	folderID, err := utils.StringToObjectID(req.FolderID)
	if err != nil {
		return nil, ErrNotFound
	}
	folder, err := s.requireActiveFolder(ctx, folderID, creatorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(ctx, folderID, req.Name, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	asset := &models.Asset{
		ID:            primitive.NewObjectID(),
		Name:          utils.SanitizeText(req.Name),
		FolderID:      folderID,
		WorkspaceID:   folder.WorkspaceID,
		AssetType:     req.AssetType,
		SourceLink:    req.SourceLink,
		SourceLinkKey: req.SourceLinkKey,
		IsDeleted:     false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.collection.InsertOne(ctx, asset); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

// Get loads an asset and verifies the creator owns its workspace.
func (s *AssetService) Get(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var asset models.Asset
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&asset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	if err := s.requireWorkspaceOwner(ctx, asset.WorkspaceID, creatorID); err != nil {
		return nil, err
	}
	return &asset, nil
}

// List returns assets matching the filter, newest first. One of FolderID or
// WorkspaceID must be set so ownership can be checked.
func (s *AssetService) List(ctx context.Context, creatorID primitive.ObjectID, f AssetListFilter, page, limit int) ([]models.Asset, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	switch {
	case f.FolderID != nil:
		folder, err := s.loadFolder(ctx, *f.FolderID, creatorID)
		if err != nil {
			return nil, 0, err
		}
		filter["folder_id"] = folder.ID
	case f.WorkspaceID != nil:
		if err := s.requireWorkspaceOwner(ctx, *f.WorkspaceID, creatorID); err != nil {
			return nil, 0, err
		}
		filter["workspace_id"] = *f.WorkspaceID
	default:
		return nil, 0, ErrNotFound
	}

	if !f.IncludeDeleted {
		filter["is_deleted"] = false
	}
	if f.AssetType != "" {
		filter["asset_type"] = f.AssetType
	}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	skip, lim := utils.Paginate(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(lim)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}

	assets := make([]models.Asset, 0, lim)
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, 0, fmt.Errorf("failed to decode assets: %w", err)
	}
	return assets, total, nil
}

// Update patches an asset. Replacing the file deletes the old storage
// object.
func (s *AssetService) Update(ctx context.Context, id, creatorID primitive.ObjectID, req *models.UpdateAssetRequest) (*models.Asset, error) {
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
	var staleKey string

	if req.Name != nil {
		if err := s.checkDuplicateName(ctx, current.FolderID, *req.Name, id); err != nil {
			return nil, err
		}
		set["name"] = utils.SanitizeText(*req.Name)
	}
	if req.SourceLink != nil {
		set["source_link"] = *req.SourceLink
	}
	if req.SourceLinkKey != nil {
		if current.SourceLinkKey != "" && current.SourceLinkKey != *req.SourceLinkKey {
			staleKey = current.SourceLinkKey
		}
		set["source_link_key"] = *req.SourceLinkKey
	}

	var updated models.Asset
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
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	if staleKey != "" {
		s.store.DeleteObject(ctx, staleKey)
	}
	return &updated, nil
}

// SoftDelete moves the asset to the trash.
func (s *AssetService) SoftDelete(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.SoftDeleteCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentAsset))
	observeCascade("soft_delete", ParentAsset, err)
	return outcome, err
}

// HardDelete permanently removes the asset row and its storage object.
func (s *AssetService) HardDelete(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.HardDeleteCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentAsset))
	observeCascade("hard_delete", ParentAsset, err)
	return outcome, err
}

// Restore brings the asset back from the trash.
func (s *AssetService) Restore(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.RestoreCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentAsset))
	observeCascade("restore", ParentAsset, err)
	return outcome, err
}

func (s *AssetService) loadFolder(ctx context.Context, folderID, creatorID primitive.ObjectID) (*models.Folder, error) {
	var folder models.Folder
	err := s.folders.FindOne(ctx, bson.M{"_id": folderID}).Decode(&folder)
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

func (s *AssetService) requireActiveFolder(ctx context.Context, folderID, creatorID primitive.ObjectID) (*models.Folder, error) {
	folder, err := s.loadFolder(ctx, folderID, creatorID)
	if err != nil {
		return nil, err
	}
	if folder.IsDeleted {
		return nil, ErrAlreadyDeleted
	}
	return folder, nil
}

func (s *AssetService) requireWorkspaceOwner(ctx context.Context, workspaceID, creatorID primitive.ObjectID) error {
	err := s.workspaces.FindOne(ctx, bson.M{"_id": workspaceID, "creator_id": creatorID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load workspace: %w", err)
	}
	return nil
}

func (s *AssetService) checkDuplicateName(ctx context.Context, folderID primitive.ObjectID, name string, exclude primitive.ObjectID) error {
	filter := bson.M{
		"name":       name,
		"folder_id":  folderID,
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
	return fmt.Errorf("failed to check asset name: %w", err)
}

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

// adStatusTransitions maps each status to the states reachable from it.
var adStatusTransitions = map[string][]string{
	models.AdStatusDraft:      {models.AdStatusQueued},
	models.AdStatusQueued:     {models.AdStatusProcessing, models.AdStatusFailed},
	models.AdStatusProcessing: {models.AdStatusCompleted, models.AdStatusFailed},
	models.AdStatusFailed:     {models.AdStatusQueued},
}

// AdService owns ad CRUD and the generation status machine. Ads are cascade
// leaves.
type AdService struct {
	collection *mongo.Collection
	folders    *mongo.Collection
	workspaces *mongo.Collection
	cascade    *CascadeService
	relations  *CascadeConfigService
}

func NewAdService(cascade *CascadeService, relations *CascadeConfigService) *AdService {
	return &AdService{
		collection: database.Ads(),
		folders:    database.Folders(),
		workspaces: database.Workspaces(),
		cascade:    cascade,
		relations:  relations,
	}
}

// AdListFilter narrows List results.
type AdListFilter struct {
	FolderID       *primitive.ObjectID
	WorkspaceID    *primitive.ObjectID
	Status         string
	Search         string
	IncludeDeleted bool
}

// Create inserts an ad in DRAFT with its generation parameters fixed and the
// credit estimate computed.
func (s *AdService) Create(ctx context.Context, creatorID primitive.ObjectID, req *models.CreateAdRequest) (*models.Ad, error) {
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
	ad := &models.Ad{
		ID:                  primitive.NewObjectID(),
		Name:                utils.SanitizeText(req.Name),
		FolderID:            folderID,
		WorkspaceID:         folder.WorkspaceID,
		Duration:            req.Duration,
		AdStyle:             req.AdStyle,
		NumberOfVariations:  req.NumberOfVariations,
		TargetDemographic:   req.TargetDemographic,
		AgeRange:            req.AgeRange,
		FeaturesToHighlight: req.FeaturesToHighlight,
		Status:              models.AdStatusDraft,
		EstimatedCredits:    models.EstimateCredits(req.Duration, req.NumberOfVariations),
		IsDeleted:           false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if _, err := s.collection.InsertOne(ctx, ad); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create ad: %w", err)
	}
	return ad, nil
}

// Get loads an ad and verifies the creator owns its workspace.
func (s *AdService) Get(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Ad, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ad models.Ad
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ad)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load ad: %w", err)
	}
	if err := s.requireWorkspaceOwner(ctx, ad.WorkspaceID, creatorID); err != nil {
		return nil, err
	}
	return &ad, nil
}

// List returns ads matching the filter, newest first. One of FolderID or
// WorkspaceID must be set so ownership can be checked.
func (s *AdService) List(ctx context.Context, creatorID primitive.ObjectID, f AdListFilter, page, limit int) ([]models.Ad, int64, error) {
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
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ads: %w", err)
	}

	skip, lim := utils.Paginate(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(lim)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ads: %w", err)
	}

	ads := make([]models.Ad, 0, lim)
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, 0, fmt.Errorf("failed to decode ads: %w", err)
	}
	return ads, total, nil
}

// Update patches an ad's mutable fields. Status changes go through the
// transition table.
func (s *AdService) Update(ctx context.Context, id, creatorID primitive.ObjectID, req *models.UpdateAdRequest) (*models.Ad, error) {
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
		if err := s.checkDuplicateName(ctx, current.FolderID, *req.Name, id); err != nil {
			return nil, err
		}
		set["name"] = utils.SanitizeText(*req.Name)
	}
	if req.FeaturesToHighlight != nil {
		set["features_to_highlight"] = *req.FeaturesToHighlight
	}
	if req.Status != nil {
		if !s.canTransition(current.Status, *req.Status) {
			return nil, ErrInvalidStatusTransition
		}
		set["status"] = *req.Status
	}

	var updated models.Ad
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
		return nil, fmt.Errorf("failed to update ad: %w", err)
	}
	return &updated, nil
}

// SoftDelete moves the ad to the trash.
func (s *AdService) SoftDelete(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.SoftDeleteCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentAd))
	observeCascade("soft_delete", ParentAd, err)
	return outcome, err
}

// HardDelete permanently removes the ad row.
func (s *AdService) HardDelete(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.HardDeleteCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentAd))
	observeCascade("hard_delete", ParentAd, err)
	return outcome, err
}

// Restore brings the ad back from the trash.
func (s *AdService) Restore(ctx context.Context, id, creatorID primitive.ObjectID) (*CascadeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.Get(ctx, id, creatorID); err != nil {
		return nil, err
	}
	outcome, err := s.cascade.RestoreCascade(ctx, s.collection, id, s.relations.RelationsFor(ParentAd))
	observeCascade("restore", ParentAd, err)
	return outcome, err
}

func (s *AdService) canTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range adStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *AdService) loadFolder(ctx context.Context, folderID, creatorID primitive.ObjectID) (*models.Folder, error) {
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

func (s *AdService) requireActiveFolder(ctx context.Context, folderID, creatorID primitive.ObjectID) (*models.Folder, error) {
	folder, err := s.loadFolder(ctx, folderID, creatorID)
	if err != nil {
		return nil, err
	}
	if folder.IsDeleted {
		return nil, ErrAlreadyDeleted
	}
	return folder, nil
}

func (s *AdService) requireWorkspaceOwner(ctx context.Context, workspaceID, creatorID primitive.ObjectID) error {
	err := s.workspaces.FindOne(ctx, bson.M{"_id": workspaceID, "creator_id": creatorID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load workspace: %w", err)
	}
	return nil
}

func (s *AdService) checkDuplicateName(ctx context.Context, folderID primitive.ObjectID, name string, exclude primitive.ObjectID) error {
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
	return fmt.Errorf("failed to check ad name: %w", err)
}

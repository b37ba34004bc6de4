package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"adcraft/utils"
)

// Collection is the slice of *mongo.Collection the cascade engine uses.
// Keeping it narrow lets tests substitute in-memory fakes.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *mongo.SingleResult
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// ObjectDeleter removes objects from the backing store. Implementations
// report success as a bool and never fail the caller; a lost object must not
// abort a database transaction.
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, key string) bool
}

// defaultStorageKeyFields are the document fields scanned for object-store
// keys when a relation does not declare its own list.
var defaultStorageKeyFields = []string{
	"image_key",
	"source_link_key",
	"profile_pic_key",
	"avatar_key",
	"file_key",
	"attachment_key",
	"app_screenshot_keys",
}

// CascadeCounts maps relation name to the number of child rows affected.
type CascadeCounts map[string]int64

// CascadePreview reports what a delete would touch, without mutating.
type CascadePreview struct {
	Parent        bson.M
	Counts        CascadeCounts
	TotalAffected int64
}

// CascadeOutcome reports what a cascade operation actually touched.
type CascadeOutcome struct {
	ParentAffected bool
	Counts         CascadeCounts
}

// CascadeService applies soft delete, hard delete and restore to a parent
// row and all of its children in one transaction, coordinating row removal
// with object-store cleanup.
type CascadeService struct {
	txn    TransactionRunner
	store  ObjectDeleter
	logger *zap.Logger
}

func NewCascadeService(txn TransactionRunner, store ObjectDeleter) *CascadeService {
	return &CascadeService{
		txn:    txn,
		store:  store,
		logger: utils.Logger(),
	}
}

// runAtomic executes fn transactionally. When the incoming context already
// carries a session the work joins it and the owner commits; otherwise a
// session is opened and closed here.
func (cs *CascadeService) runAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	return cs.txn.WithTransaction(ctx, fn)
}

// cascadeNow returns the operation timestamp. Truncated to milliseconds so
// the value written to one row compares equal to the same value read back
// from another (BSON datetimes carry millisecond precision).
func cascadeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// GetCascadePreview counts the active children each relation would cascade
// over. Read-only, no transaction; the counts may be stale by the time a
// delete runs.
func (cs *CascadeService) GetCascadePreview(ctx context.Context, parentColl Collection, parentID interface{}, relations []CascadeRelation) (*CascadePreview, error) {
	var parent bson.M
	err := parentColl.FindOne(ctx, bson.M{"_id": parentID}).Decode(&parent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load parent: %w", err)
	}

	preview := &CascadePreview{
		Parent: parent,
		Counts: make(CascadeCounts, len(relations)),
	}
	for _, rel := range relations {
		count, err := rel.Collection.CountDocuments(ctx, bson.M{
			rel.ForeignKey: parentID,
			"is_deleted":   false,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", rel.Name, err)
		}
		preview.Counts[rel.Name] = count
		preview.TotalAffected += count
	}
	return preview, nil
}

// SoftDeleteCascade marks the parent and all of its active children as
// deleted, stamping every row with the same deletion timestamp. The shared
// timestamp is what lets a later restore pick out exactly this cascade's
// rows.
func (cs *CascadeService) SoftDeleteCascade(ctx context.Context, parentColl Collection, parentID interface{}, relations []CascadeRelation) (*CascadeOutcome, error) {
	now := cascadeNow()
	outcome := &CascadeOutcome{Counts: make(CascadeCounts, len(relations))}

	err := cs.runAtomic(ctx, func(sc context.Context) error {
		// Conditional initiating transition: only an active parent starts a
		// cascade, so two racing soft deletes cannot stamp children twice.
		res := parentColl.FindOneAndUpdate(sc,
			bson.M{"_id": parentID, "is_deleted": false},
			bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now}},
		)
		if err := res.Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return cs.classifySoftDeleteMiss(sc, parentColl, parentID)
			}
			return fmt.Errorf("failed to soft delete parent: %w", err)
		}
		outcome.ParentAffected = true

		for _, rel := range relations {
			result, err := rel.Collection.UpdateMany(sc,
				bson.M{rel.ForeignKey: parentID, "is_deleted": false},
				bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now}},
			)
			if err != nil {
				return fmt.Errorf("failed to soft delete %s: %w", rel.Name, err)
			}
			outcome.Counts[rel.Name] = result.ModifiedCount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.logger.Info("soft delete cascade complete",
		zap.Any("parent_id", parentID),
		zap.Any("counts", outcome.Counts))
	return outcome, nil
}

// classifySoftDeleteMiss decides why the conditional update matched nothing:
// the row is absent, or it is already in the trash.
func (cs *CascadeService) classifySoftDeleteMiss(ctx context.Context, parentColl Collection, parentID interface{}) error {
	err := parentColl.FindOne(ctx, bson.M{"_id": parentID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load parent: %w", err)
	}
	return ErrAlreadyDeleted
}

// HardDeleteCascade permanently removes the parent and every child row
// regardless of delete state, deleting their storage objects along the way.
// Object deletes are best effort; row deletes are transactional. The parent
// row goes last so a failed cascade never leaves orphaned children.
func (cs *CascadeService) HardDeleteCascade(ctx context.Context, parentColl Collection, parentID interface{}, relations []CascadeRelation) (*CascadeOutcome, error) {
	outcome := &CascadeOutcome{Counts: make(CascadeCounts, len(relations))}

	err := cs.runAtomic(ctx, func(sc context.Context) error {
		var parent bson.M
		if err := parentColl.FindOne(sc, bson.M{"_id": parentID}).Decode(&parent); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load parent: %w", err)
		}

		cs.deleteStorageObjects(sc, parent, nil)

		for _, rel := range relations {
			cursor, err := rel.Collection.Find(sc, bson.M{rel.ForeignKey: parentID})
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", rel.Name, err)
			}
			var children []bson.M
			if err := cursor.All(sc, &children); err != nil {
				return fmt.Errorf("failed to decode %s: %w", rel.Name, err)
			}
			for _, child := range children {
				cs.deleteStorageObjects(sc, child, rel.StorageKeyFields)
			}

			result, err := rel.Collection.DeleteMany(sc, bson.M{rel.ForeignKey: parentID})
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", rel.Name, err)
			}
			outcome.Counts[rel.Name] = result.DeletedCount
		}

		if err := parentColl.FindOneAndDelete(sc, bson.M{"_id": parentID}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to delete parent: %w", err)
		}
		outcome.ParentAffected = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.logger.Info("hard delete cascade complete",
		zap.Any("parent_id", parentID),
		zap.Any("counts", outcome.Counts))
	return outcome, nil
}

// RestoreCascade brings a soft-deleted parent back together with exactly the
// children its own soft delete trashed. Children deleted separately, before
// or after, carry a different timestamp and stay in the trash.
func (cs *CascadeService) RestoreCascade(ctx context.Context, parentColl Collection, parentID interface{}, relations []CascadeRelation) (*CascadeOutcome, error) {
	now := cascadeNow()
	outcome := &CascadeOutcome{Counts: make(CascadeCounts, len(relations))}

	err := cs.runAtomic(ctx, func(sc context.Context) error {
		var state struct {
			IsDeleted bool       `bson:"is_deleted"`
			DeletedAt *time.Time `bson:"deleted_at"`
		}
		if err := parentColl.FindOne(sc, bson.M{"_id": parentID}).Decode(&state); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load parent: %w", err)
		}
		if !state.IsDeleted || state.DeletedAt == nil {
			return ErrNotDeleted
		}
		cascadeStamp := *state.DeletedAt

		restorePatch := bson.M{
			"$set":   bson.M{"is_deleted": false, "updated_at": now},
			"$unset": bson.M{"deleted_at": ""},
		}

		res := parentColl.FindOneAndUpdate(sc, bson.M{"_id": parentID}, restorePatch)
		if err := res.Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to restore parent: %w", err)
		}
		outcome.ParentAffected = true

		for _, rel := range relations {
			result, err := rel.Collection.UpdateMany(sc,
				bson.M{
					rel.ForeignKey: parentID,
					"is_deleted":   true,
					"deleted_at":   cascadeStamp,
				},
				restorePatch,
			)
			if err != nil {
				return fmt.Errorf("failed to restore %s: %w", rel.Name, err)
			}
			outcome.Counts[rel.Name] = result.ModifiedCount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.logger.Info("restore cascade complete",
		zap.Any("parent_id", parentID),
		zap.Any("counts", outcome.Counts))
	return outcome, nil
}

// BulkCleanupDeleted purges rows that have sat in the trash longer than the
// retention window, across all target collections in one transaction.
// Storage objects are not touched here.
func (cs *CascadeService) BulkCleanupDeleted(ctx context.Context, targets []CleanupTarget, olderThanDays int) (CascadeCounts, error) {
	cutoff := cascadeNow().AddDate(0, 0, -olderThanDays)
	counts := make(CascadeCounts, len(targets))

	err := cs.runAtomic(ctx, func(sc context.Context) error {
		for _, target := range targets {
			result, err := target.Collection.DeleteMany(sc, bson.M{
				"is_deleted": true,
				"deleted_at": bson.M{"$lt": cutoff},
			})
			if err != nil {
				return fmt.Errorf("failed to purge %s: %w", target.Name, err)
			}
			counts[target.Name] = result.DeletedCount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.logger.Info("trash purge complete",
		zap.Time("cutoff", cutoff),
		zap.Any("counts", counts))
	return counts, nil
}

// deleteStorageObjects extracts object keys from a document and best-effort
// deletes each one. Failures are logged by the store and ignored.
func (cs *CascadeService) deleteStorageObjects(ctx context.Context, doc bson.M, fields []string) {
	for _, key := range extractStorageKeys(doc, fields) {
		if !cs.store.DeleteObject(ctx, key) {
			cs.logger.Warn("storage object not deleted", zap.String("key", key))
		}
	}
}

// extractStorageKeys pulls object-store keys out of a document. String
// fields contribute one key, array fields one per string element. Absent
// fields and non-string values are skipped.
func extractStorageKeys(doc bson.M, fields []string) []string {
	if len(fields) == 0 {
		fields = defaultStorageKeyFields
	}

	var keys []string
	for _, field := range fields {
		value, ok := doc[field]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				keys = append(keys, v)
			}
		case bson.A:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					keys = append(keys, s)
				}
			}
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					keys = append(keys, s)
				}
			}
		case []string:
			for _, s := range v {
				if s != "" {
					keys = append(keys, s)
				}
			}
		}
	}
	return keys
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	workspaces *fakeCollection
	folders    *fakeCollection
	assets     *fakeCollection
	ads        *fakeCollection
	store      *fakeStore
	txn        *fakeTxnRunner
	engine     *CascadeService
	config     *CascadeConfigService
}

func newFixture() *fixture {
	f := &fixture{
		workspaces: newFakeCollection(),
		folders:    newFakeCollection(),
		assets:     newFakeCollection(),
		ads:        newFakeCollection(),
		store:      newFakeStore(),
		txn:        &fakeTxnRunner{},
	}
	f.engine = NewCascadeService(f.txn, f.store)
	f.config = NewCascadeConfigService(f.workspaces, f.folders, f.assets, f.ads)
	return f
}

func baseDoc(id primitive.ObjectID, extra bson.M) bson.M {
	doc := bson.M{
		"_id":        id,
		"is_deleted": false,
		"created_at": time.Now().UTC().Truncate(time.Millisecond),
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}
	for k, v := range extra {
		doc[k] = v
	}
	return doc
}

func (f *fixture) addWorkspace(extra bson.M) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.workspaces.docs = append(f.workspaces.docs, baseDoc(id, extra))
	return id
}

func (f *fixture) addFolder(workspaceID primitive.ObjectID, extra bson.M) primitive.ObjectID {
	id := primitive.NewObjectID()
	doc := baseDoc(id, bson.M{"workspace_id": workspaceID})
	for k, v := range extra {
		doc[k] = v
	}
	f.folders.docs = append(f.folders.docs, doc)
	return id
}

func (f *fixture) addAsset(workspaceID, folderID primitive.ObjectID, extra bson.M) primitive.ObjectID {
	id := primitive.NewObjectID()
	doc := baseDoc(id, bson.M{"workspace_id": workspaceID, "folder_id": folderID})
	for k, v := range extra {
		doc[k] = v
	}
	f.assets.docs = append(f.assets.docs, doc)
	return id
}

func (f *fixture) addAd(workspaceID, folderID primitive.ObjectID, extra bson.M) primitive.ObjectID {
	id := primitive.NewObjectID()
	doc := baseDoc(id, bson.M{"workspace_id": workspaceID, "folder_id": folderID})
	for k, v := range extra {
		doc[k] = v
	}
	f.ads.docs = append(f.ads.docs, doc)
	return id
}

func TestSoftDeleteCascadeStampsEveryRowWithOneTimestamp(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(nil)
	fo1 := f.addFolder(ws, nil)
	fo2 := f.addFolder(ws, nil)
	as := f.addAsset(ws, fo1, nil)
	ad := f.addAd(ws, fo1, nil)

	outcome, err := f.engine.SoftDeleteCascade(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace))
	if err != nil {
		t.Fatalf("SoftDeleteCascade: %v", err)
	}
	if !outcome.ParentAffected {
		t.Error("parent not affected")
	}
	if outcome.Counts["folders"] != 2 || outcome.Counts["assets"] != 1 || outcome.Counts["ads"] != 1 {
		t.Errorf("unexpected counts: %v", outcome.Counts)
	}
	if f.txn.calls != 1 {
		t.Errorf("expected one transaction, got %d", f.txn.calls)
	}

	parent := f.workspaces.get(ws)
	if parent["is_deleted"] != true {
		t.Fatal("parent not marked deleted")
	}
	stamp, ok := toTime(parent["deleted_at"])
	if !ok {
		t.Fatal("parent deleted_at missing")
	}

	for _, check := range []struct {
		coll *fakeCollection
		id   primitive.ObjectID
	}{
		{f.folders, fo1}, {f.folders, fo2}, {f.assets, as}, {f.ads, ad},
	} {
		doc := check.coll.get(check.id)
		if doc["is_deleted"] != true {
			t.Errorf("child %s not marked deleted", check.id.Hex())
		}
		childStamp, ok := toTime(doc["deleted_at"])
		if !ok || !childStamp.Equal(stamp) {
			t.Errorf("child %s stamp %v != parent stamp %v", check.id.Hex(), doc["deleted_at"], stamp)
		}
	}
}

func TestSoftDeleteCascadeSkipsAlreadyTrashedChildren(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(nil)
	older := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	trashed := f.addFolder(ws, bson.M{"is_deleted": true, "deleted_at": older})
	active := f.addFolder(ws, nil)

	outcome, err := f.engine.SoftDeleteCascade(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace))
	if err != nil {
		t.Fatalf("SoftDeleteCascade: %v", err)
	}
	if outcome.Counts["folders"] != 1 {
		t.Errorf("expected 1 folder affected, got %d", outcome.Counts["folders"])
	}

	kept, _ := toTime(f.folders.get(trashed)["deleted_at"])
	if !kept.Equal(older) {
		t.Errorf("pre-trashed child stamp changed: %v", kept)
	}
	if f.folders.get(active)["is_deleted"] != true {
		t.Error("active child not trashed")
	}
}

func TestSoftDeleteCascadePreconditions(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(bson.M{"is_deleted": true, "deleted_at": time.Now().UTC()})

	_, err := f.engine.SoftDeleteCascade(context.Background(), f.workspaces, ws, nil)
	if !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("expected ErrAlreadyDeleted, got %v", err)
	}

	_, err = f.engine.SoftDeleteCascade(context.Background(), f.workspaces, primitive.NewObjectID(), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRestoreCascadeMatchesExactTimestamp(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(nil)
	cascaded := f.addFolder(ws, nil)
	independent := f.addFolder(ws, nil)

	// Trash one folder on its own first, then the workspace.
	if _, err := f.engine.SoftDeleteCascade(context.Background(), f.folders, independent, f.config.RelationsFor(ParentFolder)); err != nil {
		t.Fatalf("folder soft delete: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := f.engine.SoftDeleteCascade(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace)); err != nil {
		t.Fatalf("workspace soft delete: %v", err)
	}

	outcome, err := f.engine.RestoreCascade(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace))
	if err != nil {
		t.Fatalf("RestoreCascade: %v", err)
	}
	if !outcome.ParentAffected {
		t.Error("parent not restored")
	}
	if outcome.Counts["folders"] != 1 {
		t.Errorf("expected 1 folder restored, got %d", outcome.Counts["folders"])
	}

	parent := f.workspaces.get(ws)
	if parent["is_deleted"] != false {
		t.Error("parent still trashed")
	}
	if _, has := parent["deleted_at"]; has {
		t.Error("parent deleted_at not cleared")
	}

	restored := f.folders.get(cascaded)
	if restored["is_deleted"] != false {
		t.Error("cascaded folder not restored")
	}
	if _, has := restored["deleted_at"]; has {
		t.Error("restored folder keeps deleted_at")
	}

	// The independently trashed folder carries a different stamp and must
	// stay in the trash.
	if f.folders.get(independent)["is_deleted"] != true {
		t.Error("independently trashed folder was restored")
	}
}

func TestRestoreCascadePreconditions(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(nil)

	_, err := f.engine.RestoreCascade(context.Background(), f.workspaces, ws, nil)
	if !errors.Is(err, ErrNotDeleted) {
		t.Errorf("expected ErrNotDeleted, got %v", err)
	}

	_, err = f.engine.RestoreCascade(context.Background(), f.workspaces, primitive.NewObjectID(), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHardDeleteCascadeRemovesRowsAndStorageObjects(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(bson.M{
		"image_key":           "workspaces/acme/img-1.png",
		"app_screenshot_keys": []string{"workspaces/acme/shot-1.png", "workspaces/acme/shot-2.png"},
	})
	fo := f.addFolder(ws, nil)
	f.addAsset(ws, fo, bson.M{"source_link_key": "assets/clip/vid-1.mp4"})
	// Trashed children are removed too.
	f.addAsset(ws, fo, bson.M{
		"is_deleted":      true,
		"deleted_at":      time.Now().UTC().Truncate(time.Millisecond),
		"source_link_key": "assets/clip/vid-2.mp4",
	})
	f.addAd(ws, fo, nil)

	outcome, err := f.engine.HardDeleteCascade(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace))
	if err != nil {
		t.Fatalf("HardDeleteCascade: %v", err)
	}
	if !outcome.ParentAffected {
		t.Error("parent not deleted")
	}
	if outcome.Counts["folders"] != 1 || outcome.Counts["assets"] != 2 || outcome.Counts["ads"] != 1 {
		t.Errorf("unexpected counts: %v", outcome.Counts)
	}

	if f.workspaces.len() != 0 || f.folders.len() != 0 || f.assets.len() != 0 || f.ads.len() != 0 {
		t.Error("rows left behind after hard delete")
	}

	want := map[string]bool{
		"workspaces/acme/img-1.png":  true,
		"workspaces/acme/shot-1.png": true,
		"workspaces/acme/shot-2.png": true,
		"assets/clip/vid-1.mp4":      true,
		"assets/clip/vid-2.mp4":      true,
	}
	got := f.store.deletedKeys()
	if len(got) != len(want) {
		t.Fatalf("deleted keys %v, want %d keys", got, len(want))
	}
	for _, key := range got {
		if !want[key] {
			t.Errorf("unexpected key deleted: %s", key)
		}
	}
}

func TestHardDeleteCascadeSurvivesStorageFailure(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(bson.M{"image_key": "workspaces/acme/img-1.png"})
	fo := f.addFolder(ws, nil)
	f.addAsset(ws, fo, bson.M{"source_link_key": "assets/clip/vid-1.mp4"})
	f.store.fail["assets/clip/vid-1.mp4"] = true

	_, err := f.engine.HardDeleteCascade(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace))
	if err != nil {
		t.Fatalf("storage failure aborted the cascade: %v", err)
	}
	if f.workspaces.len() != 0 || f.assets.len() != 0 {
		t.Error("rows left behind")
	}
}

func TestHardDeleteCascadeMissingParent(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(nil)
	f.addFolder(ws, nil)

	_, err := f.engine.HardDeleteCascade(context.Background(), f.workspaces, primitive.NewObjectID(), f.config.RelationsFor(ParentWorkspace))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.folders.len() != 1 {
		t.Error("children deleted despite missing parent")
	}
}

func TestGetCascadePreviewCountsActiveChildrenOnly(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(nil)
	fo := f.addFolder(ws, nil)
	f.addFolder(ws, bson.M{"is_deleted": true, "deleted_at": time.Now().UTC()})
	f.addAsset(ws, fo, nil)

	preview, err := f.engine.GetCascadePreview(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace))
	if err != nil {
		t.Fatalf("GetCascadePreview: %v", err)
	}
	if preview.Counts["folders"] != 1 {
		t.Errorf("expected 1 active folder, got %d", preview.Counts["folders"])
	}
	if preview.Counts["assets"] != 1 || preview.Counts["ads"] != 0 {
		t.Errorf("unexpected counts: %v", preview.Counts)
	}
	if preview.TotalAffected != 2 {
		t.Errorf("expected total 2, got %d", preview.TotalAffected)
	}
	// Preview never mutates.
	if f.folders.get(fo)["is_deleted"] != false {
		t.Error("preview mutated a row")
	}

	if _, err := f.engine.GetCascadePreview(context.Background(), f.workspaces, primitive.NewObjectID(), nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBulkCleanupDeletedHonorsRetentionWindow(t *testing.T) {
	f := newFixture()
	old := time.Now().UTC().AddDate(0, 0, -40).Truncate(time.Millisecond)
	recent := time.Now().UTC().AddDate(0, 0, -5).Truncate(time.Millisecond)

	f.addWorkspace(bson.M{"is_deleted": true, "deleted_at": old})
	keepWs := f.addWorkspace(bson.M{"is_deleted": true, "deleted_at": recent})
	activeWs := f.addWorkspace(nil)
	f.addFolder(activeWs, bson.M{"is_deleted": true, "deleted_at": old})
	f.addAsset(activeWs, primitive.NewObjectID(), bson.M{"is_deleted": true, "deleted_at": old, "source_link_key": "assets/x/y.mp4"})

	counts, err := f.engine.BulkCleanupDeleted(context.Background(), f.config.CleanupTargets(), 30)
	if err != nil {
		t.Fatalf("BulkCleanupDeleted: %v", err)
	}
	if counts["workspaces"] != 1 || counts["folders"] != 1 || counts["assets"] != 1 || counts["ads"] != 0 {
		t.Errorf("unexpected purge counts: %v", counts)
	}
	if f.workspaces.get(keepWs) == nil {
		t.Error("recently trashed workspace purged")
	}
	if f.workspaces.get(activeWs) == nil {
		t.Error("active workspace purged")
	}
	// The purge is row-only; storage objects are untouched.
	if len(f.store.deletedKeys()) != 0 {
		t.Errorf("purge touched storage: %v", f.store.deletedKeys())
	}
	if f.txn.calls != 1 {
		t.Errorf("expected one transaction, got %d", f.txn.calls)
	}
}

func TestLeafSoftDeleteAndRestore(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(nil)
	fo := f.addFolder(ws, nil)
	as := f.addAsset(ws, fo, bson.M{"source_link_key": "assets/clip/vid-1.mp4"})

	outcome, err := f.engine.SoftDeleteCascade(context.Background(), f.assets, as, f.config.RelationsFor(ParentAsset))
	if err != nil {
		t.Fatalf("leaf soft delete: %v", err)
	}
	if !outcome.ParentAffected || len(outcome.Counts) != 0 {
		t.Errorf("unexpected leaf outcome: %+v", outcome)
	}

	if _, err := f.engine.RestoreCascade(context.Background(), f.assets, as, f.config.RelationsFor(ParentAsset)); err != nil {
		t.Fatalf("leaf restore: %v", err)
	}
	if f.assets.get(as)["is_deleted"] != false {
		t.Error("leaf not restored")
	}
}

func TestExtractStorageKeys(t *testing.T) {
	tests := []struct {
		name   string
		doc    bson.M
		fields []string
		want   []string
	}{
		{
			name: "string field",
			doc:  bson.M{"image_key": "a/b/c.png"},
			want: []string{"a/b/c.png"},
		},
		{
			name: "bson array",
			doc:  bson.M{"app_screenshot_keys": bson.A{"a.png", "b.png"}},
			want: []string{"a.png", "b.png"},
		},
		{
			name: "string slice",
			doc:  bson.M{"app_screenshot_keys": []string{"a.png", "b.png"}},
			want: []string{"a.png", "b.png"},
		},
		{
			name: "interface slice with junk",
			doc:  bson.M{"app_screenshot_keys": []interface{}{"a.png", 42, nil, ""}},
			want: []string{"a.png"},
		},
		{
			name: "absent and empty fields skipped",
			doc:  bson.M{"image_key": "", "name": "x"},
			want: nil,
		},
		{
			name:   "declared fields override defaults",
			doc:    bson.M{"image_key": "ignored.png", "source_link_key": "kept.mp4"},
			fields: []string{"source_link_key"},
			want:   []string{"kept.mp4"},
		},
		{
			name: "non-string value skipped",
			doc:  bson.M{"image_key": 7},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractStorageKeys(tt.doc, tt.fields)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDoubleSoftDeleteKeepsFirstStamp(t *testing.T) {
	f := newFixture()
	ws := f.addWorkspace(nil)
	f.addFolder(ws, nil)

	if _, err := f.engine.SoftDeleteCascade(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace)); err != nil {
		t.Fatalf("first soft delete: %v", err)
	}
	first, _ := toTime(f.workspaces.get(ws)["deleted_at"])

	if _, err := f.engine.SoftDeleteCascade(context.Background(), f.workspaces, ws, f.config.RelationsFor(ParentWorkspace)); !errors.Is(err, ErrAlreadyDeleted) {
		t.Fatalf("expected ErrAlreadyDeleted, got %v", err)
	}

	after, _ := toTime(f.workspaces.get(ws)["deleted_at"])
	if !after.Equal(first) {
		t.Error("second soft delete restamped the parent")
	}
}

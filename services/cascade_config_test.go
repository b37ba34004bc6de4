package services

import "testing"

func TestRelationsForWorkspace(t *testing.T) {
	f := newFixture()

	rels := f.config.RelationsFor(ParentWorkspace)
	if len(rels) != 3 {
		t.Fatalf("expected 3 relations, got %d", len(rels))
	}
	byName := map[string]CascadeRelation{}
	for _, rel := range rels {
		byName[rel.Name] = rel
		if rel.ForeignKey != "workspace_id" {
			t.Errorf("%s foreign key = %s", rel.Name, rel.ForeignKey)
		}
	}
	if _, ok := byName["folders"]; !ok {
		t.Error("folders relation missing")
	}
	assets, ok := byName["assets"]
	if !ok {
		t.Fatal("assets relation missing")
	}
	if len(assets.StorageKeyFields) != 1 || assets.StorageKeyFields[0] != "source_link_key" {
		t.Errorf("assets storage key fields = %v", assets.StorageKeyFields)
	}
	if _, ok := byName["ads"]; !ok {
		t.Error("ads relation missing")
	}
}

func TestRelationsForFolder(t *testing.T) {
	f := newFixture()

	rels := f.config.RelationsFor(ParentFolder)
	if len(rels) != 2 {
		t.Fatalf("expected 2 relations, got %d", len(rels))
	}
	for _, rel := range rels {
		if rel.ForeignKey != "folder_id" {
			t.Errorf("%s foreign key = %s", rel.Name, rel.ForeignKey)
		}
	}
}

func TestRelationsForLeaves(t *testing.T) {
	f := newFixture()

	for _, parentType := range []string{ParentAsset, ParentAd, "unknown"} {
		if rels := f.config.RelationsFor(parentType); rels != nil {
			t.Errorf("%s: expected no relations, got %v", parentType, rels)
		}
	}
}

func TestCleanupTargetsCoverAllCollections(t *testing.T) {
	f := newFixture()

	targets := f.config.CleanupTargets()
	if len(targets) != 4 {
		t.Fatalf("expected 4 targets, got %d", len(targets))
	}
	names := map[string]bool{}
	for _, target := range targets {
		names[target.Name] = true
	}
	for _, want := range []string{"workspaces", "folders", "assets", "ads"} {
		if !names[want] {
			t.Errorf("target %s missing", want)
		}
	}
}

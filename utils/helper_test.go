package utils

import (
	"strings"
	"testing"
)

func TestStringToObjectID(t *testing.T) {
	if _, err := StringToObjectID("507f1f77bcf86cd799439011"); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	if _, err := StringToObjectID("nope"); err == nil {
		t.Error("invalid id accepted")
	}
	if IsValidObjectID("nope") {
		t.Error("IsValidObjectID accepted garbage")
	}
	if !IsValidObjectID("507f1f77bcf86cd799439011") {
		t.Error("IsValidObjectID rejected a valid id")
	}
}

func TestGenerateStorageKey(t *testing.T) {
	key := GenerateStorageKey("workspaces", "My Brand  Kit", ".png")
	if !strings.HasPrefix(key, "workspaces/my-brand-kit/") {
		t.Errorf("unexpected key prefix: %s", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("extension lost: %s", key)
	}

	// Same inputs must still give distinct keys.
	other := GenerateStorageKey("workspaces", "My Brand  Kit", "png")
	if key == other {
		t.Error("keys are not unique")
	}
	if !strings.HasSuffix(other, ".png") {
		t.Errorf("bare extension not dotted: %s", other)
	}

	empty := GenerateStorageKey("assets", "   ", "")
	if !strings.HasPrefix(empty, "assets/item/") {
		t.Errorf("blank identifier not defaulted: %s", empty)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		page, limit int
		wantSkip    int64
		wantLimit   int64
	}{
		{1, 20, 0, 20},
		{3, 10, 20, 10},
		{0, 0, 0, 20},
		{-5, 500, 0, 100},
	}
	for _, tt := range tests {
		skip, limit := Paginate(tt.page, tt.limit)
		if skip != tt.wantSkip || limit != tt.wantLimit {
			t.Errorf("Paginate(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.limit, skip, limit, tt.wantSkip, tt.wantLimit)
		}
	}
}

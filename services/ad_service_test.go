package services

import (
	"testing"

	"adcraft/models"
)

func TestAdStatusTransitions(t *testing.T) {
	s := &AdService{}

	tests := []struct {
		from, to string
		want     bool
	}{
		{models.AdStatusDraft, models.AdStatusQueued, true},
		{models.AdStatusQueued, models.AdStatusProcessing, true},
		{models.AdStatusQueued, models.AdStatusFailed, true},
		{models.AdStatusProcessing, models.AdStatusCompleted, true},
		{models.AdStatusProcessing, models.AdStatusFailed, true},
		{models.AdStatusFailed, models.AdStatusQueued, true},
		{models.AdStatusDraft, models.AdStatusDraft, true},

		{models.AdStatusDraft, models.AdStatusCompleted, false},
		{models.AdStatusDraft, models.AdStatusProcessing, false},
		{models.AdStatusCompleted, models.AdStatusQueued, false},
		{models.AdStatusCompleted, models.AdStatusDraft, false},
		{models.AdStatusQueued, models.AdStatusDraft, false},
	}

	for _, tt := range tests {
		if got := s.canTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

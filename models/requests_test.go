package models

import "testing"

func validCreateAdRequest() CreateAdRequest {
	return CreateAdRequest{
		Name:               "Spring launch",
		FolderID:           "507f1f77bcf86cd799439011",
		Duration:           30,
		AdStyle:            AdStyleCinematic,
		NumberOfVariations: 3,
		TargetDemographic:  DemographicGeneral,
		AgeRange:           "25-34",
	}
}

func TestCreateAdRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateAdRequest)
		wantErr bool
	}{
		{"valid", func(r *CreateAdRequest) {}, false},
		{"missing name", func(r *CreateAdRequest) { r.Name = "" }, true},
		{"bad folder id", func(r *CreateAdRequest) { r.FolderID = "not-hex" }, true},
		{"duration not in set", func(r *CreateAdRequest) { r.Duration = 20 }, true},
		{"duration 75 allowed", func(r *CreateAdRequest) { r.Duration = 75 }, false},
		{"unknown style", func(r *CreateAdRequest) { r.AdStyle = "LOUD" }, true},
		{"zero variations", func(r *CreateAdRequest) { r.NumberOfVariations = 0 }, true},
		{"eleven variations", func(r *CreateAdRequest) { r.NumberOfVariations = 11 }, true},
		{"ten variations allowed", func(r *CreateAdRequest) { r.NumberOfVariations = 10 }, false},
		{"unknown demographic", func(r *CreateAdRequest) { r.TargetDemographic = "ROBOTS" }, true},
		{"unknown age range", func(r *CreateAdRequest) { r.AgeRange = "0-5" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateAdRequest()
			tt.mutate(&req)
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateWorkspaceRequestValidation(t *testing.T) {
	valid := CreateWorkspaceRequest{
		Name:     "Acme",
		Category: CategoryTechnology,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	tooManyShots := valid
	tooManyShots.AppScreenshotKeys = []string{"a", "b", "c", "d"}
	if err := tooManyShots.Validate(); err == nil {
		t.Error("four screenshots accepted")
	}

	badCategory := valid
	badCategory.Category = "MAGIC"
	if err := badCategory.Validate(); err == nil {
		t.Error("unknown category accepted")
	}

	noName := valid
	noName.Name = ""
	if err := noName.Validate(); err == nil {
		t.Error("empty name accepted")
	}
}

func TestCreateFolderRequestValidation(t *testing.T) {
	valid := CreateFolderRequest{
		Name:        "Brand assets",
		WorkspaceID: "507f1f77bcf86cd799439011",
		FolderType:  FolderTypeAssets,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	badType := valid
	badType.FolderType = "MISC"
	if err := badType.Validate(); err == nil {
		t.Error("unknown folder type accepted")
	}
}

func TestEstimateCredits(t *testing.T) {
	tests := []struct {
		duration, variations, want int
	}{
		{10, 1, 2},
		{30, 3, 18},
		{75, 10, 150},
	}
	for _, tt := range tests {
		if got := EstimateCredits(tt.duration, tt.variations); got != tt.want {
			t.Errorf("EstimateCredits(%d, %d) = %d, want %d", tt.duration, tt.variations, got, tt.want)
		}
	}
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ad styles.
const (
	AdStyleCinematic   = "CINEMATIC"
	AdStyleMinimal     = "MINIMAL"
	AdStyleEnergetic   = "ENERGETIC"
	AdStyleTestimonial = "TESTIMONIAL"
	AdStyleProductDemo = "PRODUCT_DEMO"
)

// Target demographics.
const (
	DemographicGeneral       = "GENERAL"
	DemographicProfessionals = "PROFESSIONALS"
	DemographicStudents      = "STUDENTS"
	DemographicParents       = "PARENTS"
	DemographicGamers        = "GAMERS"
)

// Ad generation statuses.
const (
	AdStatusDraft      = "DRAFT"
	AdStatusQueued     = "QUEUED"
	AdStatusProcessing = "PROCESSING"
	AdStatusCompleted  = "COMPLETED"
	AdStatusFailed     = "FAILED"
)

var (
	// AdStyles lists the allowed style values.
	AdStyles = []string{AdStyleCinematic, AdStyleMinimal, AdStyleEnergetic, AdStyleTestimonial, AdStyleProductDemo}

	// TargetDemographics lists the allowed demographic values.
	TargetDemographics = []string{DemographicGeneral, DemographicProfessionals, DemographicStudents, DemographicParents, DemographicGamers}

	// AgeRanges lists the allowed age range values.
	AgeRanges = []string{"13-17", "18-24", "25-34", "35-44", "45-54", "55_PLUS"}

	// AdDurations lists the allowed durations in seconds.
	AdDurations = []int{10, 15, 30, 45, 60, 75}

	// AdStatuses lists the generation pipeline states.
	AdStatuses = []string{AdStatusDraft, AdStatusQueued, AdStatusProcessing, AdStatusCompleted, AdStatusFailed}
)

// Ad is a generated-content record. The generation parameters are fixed at
// creation; Status tracks progress through the pipeline.
type Ad struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	FolderID            primitive.ObjectID `bson:"folder_id" json:"folder_id"`
	WorkspaceID         primitive.ObjectID `bson:"workspace_id" json:"workspace_id"`
	Duration            int                `bson:"duration" json:"duration"`
	AdStyle             string             `bson:"ad_style" json:"ad_style"`
	NumberOfVariations  int                `bson:"number_of_variations" json:"number_of_variations"`
	TargetDemographic   string             `bson:"target_demographic" json:"target_demographic"`
	AgeRange            string             `bson:"age_range" json:"age_range"`
	FeaturesToHighlight []string           `bson:"features_to_highlight,omitempty" json:"features_to_highlight,omitempty"`
	Status              string             `bson:"status" json:"status"`
	EstimatedCredits    int                `bson:"estimated_credits" json:"estimated_credits"`
	IsDeleted           bool               `bson:"is_deleted" json:"is_deleted"`
	DeletedAt           *time.Time         `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

// EstimateCredits prices an ad: one credit per 5 seconds of footage, per
// variation.
func EstimateCredits(duration, variations int) int {
	return (duration / 5) * variations
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace categories.
const (
	CategoryTechnology    = "TECHNOLOGY"
	CategoryBusiness      = "BUSINESS"
	CategoryEducation     = "EDUCATION"
	CategoryHealth        = "HEALTH"
	CategoryEntertainment = "ENTERTAINMENT"
	CategorySports        = "SPORTS"
)

// WorkspaceCategories lists the allowed category values.
var WorkspaceCategories = []string{
	CategoryTechnology,
	CategoryBusiness,
	CategoryEducation,
	CategoryHealth,
	CategoryEntertainment,
	CategorySports,
}

// MaxAppScreenshots caps the screenshots attached to a workspace.
const MaxAppScreenshots = 3

// Workspace is the top-level tenant container. Folders, assets and ads all
// hang off a workspace.
type Workspace struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Category          string             `bson:"category" json:"category"`
	Email             string             `bson:"email,omitempty" json:"email,omitempty"`
	CreatorID         primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Image             string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageKey          string             `bson:"image_key,omitempty" json:"image_key,omitempty"`
	AppScreenshots    []string           `bson:"app_screenshots,omitempty" json:"app_screenshots,omitempty"`
	AppScreenshotKeys []string           `bson:"app_screenshot_keys,omitempty" json:"app_screenshot_keys,omitempty"`
	IsDeleted         bool               `bson:"is_deleted" json:"is_deleted"`
	DeletedAt         *time.Time         `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

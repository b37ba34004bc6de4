package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Folder types.
const (
	FolderTypeAssets  = "ASSETS"
	FolderTypeAds     = "ADS"
	FolderTypeGeneral = "GENERAL"
)

// FolderTypes lists the allowed folder type values.
var FolderTypes = []string{FolderTypeAssets, FolderTypeAds, FolderTypeGeneral}

// Folder groups assets and ads inside a workspace.
type Folder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	WorkspaceID primitive.ObjectID `bson:"workspace_id" json:"workspace_id"`
	FolderType  string             `bson:"folder_type" json:"folder_type"`
	IsDeleted   bool               `bson:"is_deleted" json:"is_deleted"`
	DeletedAt   *time.Time         `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

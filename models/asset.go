package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset types.
const (
	AssetTypeImage    = "IMAGE"
	AssetTypeVideo    = "VIDEO"
	AssetTypeAudio    = "AUDIO"
	AssetTypeDocument = "DOCUMENT"
)

// AssetTypes lists the allowed asset type values.
var AssetTypes = []string{AssetTypeImage, AssetTypeVideo, AssetTypeAudio, AssetTypeDocument}

// Asset is an uploaded media file living in a folder. SourceLink is the
// public URL, SourceLinkKey the object-store key backing it.
type Asset struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	FolderID      primitive.ObjectID `bson:"folder_id" json:"folder_id"`
	WorkspaceID   primitive.ObjectID `bson:"workspace_id" json:"workspace_id"`
	AssetType     string             `bson:"asset_type" json:"asset_type"`
	SourceLink    string             `bson:"source_link,omitempty" json:"source_link,omitempty"`
	SourceLinkKey string             `bson:"source_link_key,omitempty" json:"source_link_key,omitempty"`
	IsDeleted     bool               `bson:"is_deleted" json:"is_deleted"`
	DeletedAt     *time.Time         `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

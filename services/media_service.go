package services

import (
	"context"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"adcraft/models"
	"adcraft/storage"
	"adcraft/utils"
)

const presignExpiry = 15 * time.Minute

// PresignedUpload is what a client needs to PUT a file and reference it
// afterwards.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int64  `json:"expires_in"`
}

// MediaService hands out presigned upload URLs and deletes orphaned
// objects.
type MediaService struct {
	store storage.StorageInterface
}

func NewMediaService(store storage.StorageInterface) *MediaService {
	return &MediaService{store: store}
}

// PresignUpload generates a presigned PUT URL under the requested scope.
// The key embeds the caller's id so objects are attributable.
func (s *MediaService) PresignUpload(ctx context.Context, userID primitive.ObjectID, req *models.PresignUploadRequest) (*PresignedUpload, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ext := filepath.Ext(req.FileName)
	key := utils.GenerateStorageKey(req.Scope, userID.Hex(), ext)

	uploadURL, err := s.store.GetPresignedUploadURL(ctx, key, req.ContentType, presignExpiry)
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: uploadURL,
		Key:       key,
		PublicURL: s.store.GetURL(key),
		ExpiresIn: int64(presignExpiry.Seconds()),
	}, nil
}

// DeleteObject removes an uploaded object that was never attached to a row.
func (s *MediaService) DeleteObject(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.store.DeleteObject(ctx, key)
}

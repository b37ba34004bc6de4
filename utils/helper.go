package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StringToObjectID converts a hex string to an ObjectID.
func StringToObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid object id %q: %w", id, err)
	}
	return objectID, nil
}

// IsValidObjectID reports whether id is a valid ObjectID hex string.
func IsValidObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// GenerateStorageKey builds an object key of the form
// <folder>/<identifier>/<uuid><ext>. The identifier is lowercased and
// whitespace is collapsed to hyphens so keys stay URL-safe.
func GenerateStorageKey(folder, identifier, extension string) string {
	slug := strings.ToLower(strings.TrimSpace(identifier))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "item"
	}
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return fmt.Sprintf("%s/%s/%s%s", folder, slug, uuid.NewString(), extension)
}

// Paginate normalizes page/limit query values. Page starts at 1, limit is
// clamped to [1, 100] with a default of 20.
func Paginate(page, limit int) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	skip := int64((page - 1) * limit)
	return skip, int64(limit)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account holder. Authentication is passwordless via magic links,
// so no credential fields live here.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	FirstName     string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName      string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	ProfilePic    string             `bson:"profile_pic,omitempty" json:"profile_pic,omitempty"`
	ProfilePicKey string             `bson:"profile_pic_key,omitempty" json:"profile_pic_key,omitempty"`
	IsDeleted     bool               `bson:"is_deleted" json:"is_deleted"`
	DeletedAt     *time.Time         `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// MagicLink is a one-time login token, stored hashed.
type MagicLink struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	TokenHash string             `bson:"token_hash" json:"-"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	Used      bool               `bson:"used" json:"used"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

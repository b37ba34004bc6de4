package database

import "go.mongodb.org/mongo-driver/mongo"

// Collection names.
const (
	UsersCollection      = "users"
	WorkspacesCollection = "workspaces"
	FoldersCollection    = "folders"
	AssetsCollection     = "assets"
	AdsCollection        = "ads"
	MagicLinksCollection = "magic_links"
)

func Users() *mongo.Collection {
	return GetManager().GetCollection(UsersCollection)
}

func Workspaces() *mongo.Collection {
	return GetManager().GetCollection(WorkspacesCollection)
}

func Folders() *mongo.Collection {
	return GetManager().GetCollection(FoldersCollection)
}

func Assets() *mongo.Collection {
	return GetManager().GetCollection(AssetsCollection)
}

func Ads() *mongo.Collection {
	return GetManager().GetCollection(AdsCollection)
}

func MagicLinks() *mongo.Collection {
	return GetManager().GetCollection(MagicLinksCollection)
}

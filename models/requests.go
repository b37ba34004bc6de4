package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func inStrings(values []string) validation.Rule {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return validation.In(args...)
}

func inInts(values []int) validation.Rule {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return validation.In(args...)
}

// MagicLinkRequest asks for a login link.
type MagicLinkRequest struct {
	Email string `json:"email"`
}

func (r MagicLinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// VerifyMagicLinkRequest exchanges a one-time token for a JWT pair.
type VerifyMagicLinkRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func (r VerifyMagicLinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Token, validation.Required),
	)
}

// RefreshTokenRequest trades a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// CreateWorkspaceRequest creates a workspace.
type CreateWorkspaceRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Email             string   `json:"email"`
	Image             string   `json:"image"`
	ImageKey          string   `json:"image_key"`
	AppScreenshots    []string `json:"app_screenshots"`
	AppScreenshotKeys []string `json:"app_screenshot_keys"`
}

func (r CreateWorkspaceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Category, validation.Required, inStrings(WorkspaceCategories)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.AppScreenshots, validation.Length(0, MaxAppScreenshots)),
		validation.Field(&r.AppScreenshotKeys, validation.Length(0, MaxAppScreenshots)),
	)
}

// UpdateWorkspaceRequest patches a workspace. Nil pointers leave fields as-is.
type UpdateWorkspaceRequest struct {
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	Category          *string   `json:"category"`
	Email             *string   `json:"email"`
	Image             *string   `json:"image"`
	ImageKey          *string   `json:"image_key"`
	AppScreenshots    *[]string `json:"app_screenshots"`
	AppScreenshotKeys *[]string `json:"app_screenshot_keys"`
}

func (r UpdateWorkspaceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Category, validation.NilOrNotEmpty, inStrings(WorkspaceCategories)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.AppScreenshots, validation.Length(0, MaxAppScreenshots)),
		validation.Field(&r.AppScreenshotKeys, validation.Length(0, MaxAppScreenshots)),
	)
}

// CreateFolderRequest creates a folder inside a workspace.
type CreateFolderRequest struct {
	Name        string `json:"name"`
	WorkspaceID string `json:"workspace_id"`
	FolderType  string `json:"folder_type"`
}

func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.WorkspaceID, validation.Required, is.MongoID),
		validation.Field(&r.FolderType, validation.Required, inStrings(FolderTypes)),
	)
}

// UpdateFolderRequest renames or retypes a folder.
type UpdateFolderRequest struct {
	Name       *string `json:"name"`
	FolderType *string `json:"folder_type"`
}

func (r UpdateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.FolderType, validation.NilOrNotEmpty, inStrings(FolderTypes)),
	)
}

// CreateAssetRequest registers an uploaded file as an asset.
type CreateAssetRequest struct {
	Name          string `json:"name"`
	FolderID      string `json:"folder_id"`
	AssetType     string `json:"asset_type"`
	SourceLink    string `json:"source_link"`
	SourceLinkKey string `json:"source_link_key"`
}

func (r CreateAssetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.FolderID, validation.Required, is.MongoID),
		validation.Field(&r.AssetType, validation.Required, inStrings(AssetTypes)),
		validation.Field(&r.SourceLink, is.URL),
	)
}

// UpdateAssetRequest patches an asset.
type UpdateAssetRequest struct {
	Name          *string `json:"name"`
	SourceLink    *string `json:"source_link"`
	SourceLinkKey *string `json:"source_link_key"`
}

func (r UpdateAssetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
	)
}

// CreateAdRequest creates an ad with its generation parameters.
type CreateAdRequest struct {
	Name                string   `json:"name"`
	FolderID            string   `json:"folder_id"`
	Duration            int      `json:"duration"`
	AdStyle             string   `json:"ad_style"`
	NumberOfVariations  int      `json:"number_of_variations"`
	TargetDemographic   string   `json:"target_demographic"`
	AgeRange            string   `json:"age_range"`
	FeaturesToHighlight []string `json:"features_to_highlight"`
}

func (r CreateAdRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.FolderID, validation.Required, is.MongoID),
		validation.Field(&r.Duration, validation.Required, inInts(AdDurations)),
		validation.Field(&r.AdStyle, validation.Required, inStrings(AdStyles)),
		validation.Field(&r.NumberOfVariations, validation.Required, validation.Min(1), validation.Max(10)),
		validation.Field(&r.TargetDemographic, validation.Required, inStrings(TargetDemographics)),
		validation.Field(&r.AgeRange, validation.Required, inStrings(AgeRanges)),
		validation.Field(&r.FeaturesToHighlight, validation.Length(0, 10)),
	)
}

// UpdateAdRequest patches an ad's mutable fields.
type UpdateAdRequest struct {
	Name                *string   `json:"name"`
	FeaturesToHighlight *[]string `json:"features_to_highlight"`
	Status              *string   `json:"status"`
}

func (r UpdateAdRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Status, validation.NilOrNotEmpty, inStrings(AdStatuses)),
	)
}

// UpdateUserRequest patches the caller's profile.
type UpdateUserRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	ProfilePic    *string `json:"profile_pic"`
	ProfilePicKey *string `json:"profile_pic_key"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
	)
}

// PresignUploadRequest asks for a presigned PUT URL.
type PresignUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Scope       string `json:"scope"`
}

func (r PresignUploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FileName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ContentType, validation.Required),
		validation.Field(&r.Scope, validation.Required, validation.In("workspaces", "assets", "profiles")),
	)
}

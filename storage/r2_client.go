package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"adcraft/utils"
)

// R2Client implements StorageInterface for Cloudflare R2.
type R2Client struct {
	client    *s3.S3
	bucket    string
	accountID string
	publicURL string
}

type R2Config struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// NewR2Client creates a Cloudflare R2 client. R2 speaks the S3 protocol with
// an account-scoped endpoint and the fixed region "auto".
func NewR2Client(cfg R2Config) (*R2Client, error) {
	if cfg.AccountID == "" {
		return nil, fmt.Errorf("account id is required for Cloudflare R2")
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	config := &aws.Config{
		Region:           aws.String("auto"),
		Endpoint:         aws.String(endpoint),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		config.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create R2 session: %w", err)
	}

	return &R2Client{
		client:    s3.New(sess),
		bucket:    cfg.Bucket,
		accountID: cfg.AccountID,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// DeleteObject removes an object, reporting success as a bool. Failures are
// logged and swallowed.
func (r *R2Client) DeleteObject(ctx context.Context, key string) bool {
	_, err := r.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		utils.Logger().Warn("failed to delete object from R2",
			zap.String("key", key),
			zap.Error(err))
		return false
	}
	return true
}

// GetPresignedUploadURL generates a presigned PUT URL.
func (r *R2Client) GetPresignedUploadURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	req, _ := r.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	req.SetContext(ctx)

	url, err := req.Presign(expiry)
	if err != nil {
		return "", NewStorageError("r2", "PRESIGN_UPLOAD_FAILED", err.Error(), key)
	}
	return url, nil
}

// GetPresignedURL generates a presigned GET URL.
func (r *R2Client) GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, _ := r.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)

	url, err := req.Presign(expiry)
	if err != nil {
		return "", NewStorageError("r2", "PRESIGN_FAILED", err.Error(), key)
	}
	return url, nil
}

// GetURL composes the public URL for a key. R2 buckets need a custom public
// domain; fall back to the account endpoint when none is configured.
func (r *R2Client) GetURL(key string) string {
	if r.publicURL != "" {
		return fmt.Sprintf("%s/%s", r.publicURL, key)
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com/%s/%s", r.accountID, r.bucket, key)
}

// Exists checks whether an object is present.
func (r *R2Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") {
			return false, nil
		}
		return false, NewStorageError("r2", "HEAD_FAILED", err.Error(), key)
	}
	return true, nil
}

// HealthCheck verifies the bucket is reachable.
func (r *R2Client) HealthCheck() error {
	_, err := r.client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(r.bucket),
	})
	if err != nil {
		return NewStorageError("r2", "HEALTH_CHECK_FAILED", err.Error(), "")
	}
	return nil
}

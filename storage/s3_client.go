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

// S3Client implements StorageInterface for AWS S3.
type S3Client struct {
	client    *s3.S3
	bucket    string
	region    string
	publicURL string
}

type S3Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

func NewS3Client(cfg S3Config) (*S3Client, error) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	config := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		config.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &S3Client{
		client:    s3.New(sess),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// DeleteObject removes an object, reporting success as a bool. Failures are
// logged and swallowed.
func (s *S3Client) DeleteObject(ctx context.Context, key string) bool {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		utils.Logger().Warn("failed to delete object from S3",
			zap.String("key", key),
			zap.Error(err))
		return false
	}
	return true
}

// GetPresignedUploadURL generates a presigned PUT URL.
func (s *S3Client) GetPresignedUploadURL(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	req, _ := s.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	req.SetContext(ctx)

	url, err := req.Presign(expiry)
	if err != nil {
		return "", NewStorageError("s3", "PRESIGN_UPLOAD_FAILED", err.Error(), key)
	}
	return url, nil
}

// GetPresignedURL generates a presigned GET URL.
func (s *S3Client) GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)

	url, err := req.Presign(expiry)
	if err != nil {
		return "", NewStorageError("s3", "PRESIGN_FAILED", err.Error(), key)
	}
	return url, nil
}

// GetURL composes the public URL for a key.
func (s *S3Client) GetURL(key string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// Exists checks whether an object is present.
func (s *S3Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") {
			return false, nil
		}
		return false, NewStorageError("s3", "HEAD_FAILED", err.Error(), key)
	}
	return true, nil
}

// HealthCheck verifies the bucket is reachable.
func (s *S3Client) HealthCheck() error {
	_, err := s.client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return NewStorageError("s3", "HEALTH_CHECK_FAILED", err.Error(), "")
	}
	return nil
}

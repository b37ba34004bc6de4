package storage

import "fmt"

// Config selects and configures a storage provider.
type Config struct {
	Provider  string // "r2" or "s3"
	Region    string
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// NewClient builds the storage client for the configured provider.
func NewClient(cfg Config) (StorageInterface, error) {
	switch cfg.Provider {
	case "r2":
		return NewR2Client(R2Config{
			AccountID: cfg.AccountID,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			PublicURL: cfg.PublicURL,
		})
	case "s3":
		return NewS3Client(S3Config{
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			PublicURL: cfg.PublicURL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage provider: %q", cfg.Provider)
	}
}

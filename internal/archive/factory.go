package archive

import (
	"context"
	"fmt"

	"cmis-go/internal/config"
)

// NewArchiveFromConfig creates an Archive implementation based on the archive config type.
func NewArchiveFromConfig(ctx context.Context, cfg config.ArchiveConfig) (Archive, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryArchive(cfg.Name), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 archive requires s3_bucket to be set")
		}
		client, err := NewS3Client(ctx, S3Options{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		a, err := NewS3Archive(cfg.Name, cfg.S3Bucket, cfg.S3Prefix, client)
		if err != nil {
			return nil, err
		}
		return a, nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem archive requires fs_root to be set")
		}
		a, err := NewFileSystemArchive(cfg.Name, cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}

// FindConfig returns the archive config with the given name, or the first
// one when name is empty.
func FindConfig(archives []config.ArchiveConfig, name string) (config.ArchiveConfig, error) {
	if len(archives) == 0 {
		return config.ArchiveConfig{}, fmt.Errorf("no archives configured")
	}
	if name == "" {
		return archives[0], nil
	}
	for _, a := range archives {
		if a.Name == name {
			return a, nil
		}
	}
	return config.ArchiveConfig{}, fmt.Errorf("archive %q not configured", name)
}

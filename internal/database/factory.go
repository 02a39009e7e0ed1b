package database

import (
	"fmt"
	"os"
	"path/filepath"

	"cmis-go/internal/cmis"
	"cmis-go/internal/config"
)

// NewTypeStoreFromConfig creates a type store based on the store config type.
// A memory store is migrated right away; a sqlite store keeps whatever schema
// version the file has, so callers should run CheckMigrations.
func NewTypeStoreFromConfig(cfg config.TypeStoreConfig, repositoryID string, clock cmis.Clock) (*SQLiteStore, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite type store")
		}
		if repositoryID == "" {
			return nil, fmt.Errorf("repository id required for sqlite type store")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data_dir: %w", err)
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, repositoryID+".db"), clock)
	case "memory", "":
		s, err := NewSQLiteStore(":memory:", clock)
		if err != nil {
			return nil, err
		}
		if err := s.MigrateUp(); err != nil {
			s.Close()
			return nil, fmt.Errorf("migrating memory type store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown type store type: %s", cfg.Type)
	}
}

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for a cmis repository.
type Config struct {
	RepositoryID   string           `toml:"repository_id"`
	RepositoryName string           `toml:"repository_name"`
	CMISVersion    string           `toml:"cmis_version"`
	BaseDir        string           `toml:"base_dir"`
	LogDir         string           `toml:"log_dir"`
	TypeFiles      []string         `toml:"type_files"`
	Defaults       Defaults         `toml:"defaults"`
	Factory        FactoryConfig    `toml:"factory"`
	TypeStore      TypeStoreConfig  `toml:"type_store"`
	Archives       []ArchiveConfig  `toml:"archives"`
	Encryption     EncryptionConfig `toml:"encryption"`
}

// Defaults are the paging and depth values the service wrapper uses when a
// caller omits them.
type Defaults struct {
	TypesMaxItems int64 `toml:"types_max_items"`
	TypesDepth    int64 `toml:"types_depth"`
	MaxItems      int64 `toml:"max_items"`
	Depth         int64 `toml:"depth"`
}

// Validate applies the same bounds the wrapper applies to request values.
func (d Defaults) Validate() error {
	if d.TypesMaxItems < 0 {
		return fmt.Errorf("types_max_items must not be negative")
	}
	if d.MaxItems < 0 {
		return fmt.Errorf("max_items must not be negative")
	}
	if d.TypesDepth == 0 || d.TypesDepth < -1 {
		return fmt.Errorf("types_depth must be -1 or positive, got %d", d.TypesDepth)
	}
	if d.Depth == 0 || d.Depth < -1 {
		return fmt.Errorf("depth must be -1 or positive, got %d", d.Depth)
	}
	return nil
}

// FactoryConfig holds the attribute defaults for newly created type definitions.
type FactoryConfig struct {
	Namespace                string               `toml:"namespace"`
	ControllableACL          bool                 `toml:"controllable_acl"`
	ControllablePolicy       bool                 `toml:"controllable_policy"`
	Queryable                bool                 `toml:"queryable"`
	FulltextIndexed          bool                 `toml:"fulltext_indexed"`
	IncludedInSupertypeQuery bool                 `toml:"included_in_supertype_query"`
	TypeMutability           TypeMutabilityConfig `toml:"type_mutability"`
}

type TypeMutabilityConfig struct {
	CanCreate bool `toml:"can_create"`
	CanUpdate bool `toml:"can_update"`
	CanDelete bool `toml:"can_delete"`
}

// TypeStoreConfig represents configuration for custom type persistence.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type TypeStoreConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// ArchiveConfig represents configuration for a type snapshot archive.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type ArchiveConfig struct {
	Type string `toml:"type"` // "memory", "s3", or "filesystem"
	Name string `toml:"name"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"`

	// Static credentials; when empty the default AWS credential chain is used.
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`
}

// EncryptionConfig holds paths to the age key pair used to encrypt archived
// snapshots.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "none" (default), "age" or "test"
	PublicKeyPath  string `toml:"public_key_path,omitempty"`
	PrivateKeyPath string `toml:"private_key_path,omitempty"`
}

// NewConfig creates a new Config with the provided values and stock defaults.
func NewConfig(repositoryID, baseDir string) *Config {
	return &Config{
		RepositoryID:   repositoryID,
		RepositoryName: repositoryID,
		CMISVersion:    "1.1",
		BaseDir:        baseDir,
		LogDir:         filepath.Join(baseDir, "log"),
		TypeFiles:      []string{filepath.Join(baseDir, "types", "*.yaml")},
		Defaults: Defaults{
			TypesMaxItems: 1000,
			TypesDepth:    -1,
			MaxItems:      100000,
			Depth:         -1,
		},
		Factory: FactoryConfig{
			Queryable:                true,
			IncludedInSupertypeQuery: true,
			TypeMutability:           TypeMutabilityConfig{CanCreate: true},
		},
		TypeStore: TypeStoreConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Archives: []ArchiveConfig{
			{Type: "filesystem", Name: "local", FSRoot: filepath.Join(baseDir, "archive")},
		},
		Encryption: EncryptionConfig{
			Type:           "none",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "cmis.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "cmis.key"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

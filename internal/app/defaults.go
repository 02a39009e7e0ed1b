package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths locates a cmis installation. The config file lives on its own; all
// repository data sits below Home, in the layout config.NewConfig writes:
//
//	<Home>/
//	  log/cmis.log              one line per record, tagged with the operation id
//	  db/<repository>.db        SQLite type store
//	  types/*.yaml              type documents loaded at startup
//	  archive/<repository>/     snapshots of the default filesystem archive
//	  keys/cmis.pub, cmis.key   age keys when encryption is on
type Paths struct {
	ConfigPath string
	Home       string
}

// LogDir is where NewApp writes cmis.log.
func (p Paths) LogDir() string {
	return filepath.Join(p.Home, "log")
}

// DefaultPaths resolves CMIS_CONFIG_PATH (default ~/.config/cmis.toml) and
// CMIS_HOME (default ~/.local/share/cmis).
func DefaultPaths() (Paths, error) {
	configPath := os.Getenv("CMIS_CONFIG_PATH")
	home := os.Getenv("CMIS_HOME")
	if configPath != "" && home != "" {
		return Paths{ConfigPath: configPath, Home: home}, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	if configPath == "" {
		configPath = filepath.Join(userHome, ".config", "cmis.toml")
	}
	if home == "" {
		home = filepath.Join(userHome, ".local", "share", "cmis")
	}
	return Paths{ConfigPath: configPath, Home: home}, nil
}

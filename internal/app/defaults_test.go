package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cmis-go/internal/config"
)

func TestDefaultPaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name       string
		configPath string
		home       string
		want       Paths
	}{
		{
			name:       "env vars",
			configPath: "/custom/cmis.toml",
			home:       "/custom/cmis",
			want:       Paths{ConfigPath: "/custom/cmis.toml", Home: "/custom/cmis"},
		},
		{
			name: "home dir defaults",
			want: Paths{
				ConfigPath: filepath.Join(homeDir, ".config", "cmis.toml"),
				Home:       filepath.Join(homeDir, ".local", "share", "cmis"),
			},
		},
		{
			name: "only CMIS_HOME set",
			home: "/srv/cmis",
			want: Paths{ConfigPath: filepath.Join(homeDir, ".config", "cmis.toml"), Home: "/srv/cmis"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CMIS_CONFIG_PATH", tt.configPath)
			t.Setenv("CMIS_HOME", tt.home)

			got, err := DefaultPaths()
			if err != nil {
				t.Fatalf("DefaultPaths() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DefaultPaths() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPaths_MatchNewConfig(t *testing.T) {
	p := Paths{ConfigPath: "/etc/cmis.toml", Home: "/srv/cmis"}
	cfg := config.NewConfig("repo", p.Home)

	if cfg.LogDir != p.LogDir() {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, p.LogDir())
	}
	checks := map[string]string{
		"type files":  cfg.TypeFiles[0],
		"type store":  cfg.TypeStore.DataDir,
		"archive":     cfg.Archives[0].FSRoot,
		"public key":  cfg.Encryption.PublicKeyPath,
		"private key": cfg.Encryption.PrivateKeyPath,
	}
	for what, path := range checks {
		if !strings.HasPrefix(path, p.Home+string(filepath.Separator)) {
			t.Errorf("%s path %q is outside %s", what, path, p.Home)
		}
	}
}

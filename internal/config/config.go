package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/assetindex/internal/manifest/match"
	"github.com/kamusis/assetindex/internal/nameindex"
)

// Config is the in-memory representation of ~/.assetindex/assetindex.yaml.
type Config struct {
	// BuildPath is the platform build output scanned for manifests. The
	// index file is written here.
	BuildPath string `yaml:"build_path"`
	// DataPath is the runtime data directory the index is deployed into.
	DataPath       string   `yaml:"data_path"`
	Configurations []string `yaml:"configurations"`
	MatchMode      string   `yaml:"match_mode,omitempty"`
	Pattern        string   `yaml:"pattern,omitempty"`
	Derive         string   `yaml:"derive,omitempty"`
	Workers        int      `yaml:"workers,omitempty"`

	EncryptManifest bool     `yaml:"encrypt_manifest,omitempty"`
	Recipients      []string `yaml:"recipients,omitempty"`
	IdentityFile    string   `yaml:"identity_file,omitempty"`
}

// Dir returns the absolute path to ~/.assetindex/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".assetindex"), nil
}

// ConfigPath returns the absolute path to ~/.assetindex/assetindex.yaml.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "assetindex.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written by `assetindex init`.
func DefaultConfig() *Config {
	return &Config{
		BuildPath:      filepath.Join("Build", "Bundles"),
		DataPath:       filepath.Join("Assets", "StreamingAssets"),
		Configurations: []string{"Main"},
		MatchMode:      match.ModeSubstring,
		Pattern:        "*.json",
	}
}

// Load reads and parses the config at path; an empty path means the default
// location.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	// Expand ~ in paths at load time.
	for _, p := range []*string{&cfg.BuildPath, &cfg.DataPath, &cfg.IdentityFile} {
		if *p, err = ExpandPath(*p); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// Save marshals cfg and writes it to path; an empty path means the default
// location. Parent directories are created.
func Save(path string, cfg *Config) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the fields the builder and resolver depend on.
func (c *Config) Validate() error {
	if c.BuildPath == "" {
		return fmt.Errorf("build_path is not set")
	}
	if len(c.Configurations) == 0 {
		return fmt.Errorf("no configurations listed; nothing would be indexed")
	}
	if _, err := c.MatchSet(); err != nil {
		return err
	}
	if _, ok := nameindex.DeriveByName(c.Derive); !ok {
		return fmt.Errorf("unknown derive rule %q (want basename or lower)", c.Derive)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}

// MatchSet returns the configuration filter described by the config.
func (c *Config) MatchSet() (match.Set, error) {
	return match.NewSet(c.MatchMode, c.Configurations)
}

// EncryptionEnabled reports whether the index is sealed at rest.
// ASSETINDEX_ENCRYPT, when set, overrides encrypt_manifest.
func (c *Config) EncryptionEnabled() (bool, error) {
	v, err := GetConfigValue("ASSETINDEX_ENCRYPT")
	if err != nil {
		return false, err
	}
	if v == "" {
		return c.EncryptManifest, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("invalid ASSETINDEX_ENCRYPT %q: %w", v, err)
	}
	return b, nil
}

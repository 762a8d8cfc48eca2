package config

import (
	"fmt"
	"strings"

	"github.com/kamusis/assetindex/internal/sealed"
)

// Identity returns the age private key used to open an encrypted index.
// ASSETINDEX_IDENTITY (environment, then .env) wins over identity_file.
func (c *Config) Identity() (string, error) {
	v, err := GetConfigValue("ASSETINDEX_IDENTITY")
	if err != nil {
		return "", err
	}
	if v = strings.TrimSpace(v); v != "" {
		return v, nil
	}
	if c.IdentityFile == "" {
		return "", fmt.Errorf("no identity configured (set ASSETINDEX_IDENTITY or identity_file)")
	}
	return sealed.LoadIdentityFile(c.IdentityFile)
}

// Encrypter returns the sealing function for builds, or nil when
// encryption is disabled.
func (c *Config) Encrypter() (func([]byte) ([]byte, error), error) {
	on, err := c.EncryptionEnabled()
	if err != nil || !on {
		return nil, err
	}
	if len(c.Recipients) == 0 {
		return nil, fmt.Errorf("encryption is enabled but no recipients are configured")
	}
	return sealed.NewEncrypter(c.Recipients)
}

// Decrypter returns the opening function for encrypted indexes, or nil when
// encryption is disabled.
func (c *Config) Decrypter() (func([]byte) ([]byte, error), error) {
	on, err := c.EncryptionEnabled()
	if err != nil || !on {
		return nil, err
	}
	key, err := c.Identity()
	if err != nil {
		return nil, err
	}
	return sealed.NewDecrypter(key)
}

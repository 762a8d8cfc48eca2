package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/assetindex/internal/config"
	"github.com/kamusis/assetindex/internal/nameindex"
)

// selectIndexPath picks the index file a read-only command should use.
// An explicit path wins; otherwise the deployed copy is preferred over the
// one in the build directory.
func selectIndexPath(cfg *config.Config, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	var checked []string
	for _, dir := range []string{cfg.DataPath, cfg.BuildPath} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, nameindex.FileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		checked = append(checked, p)
	}
	return "", fmt.Errorf("no name index found (checked %v)\nRun 'assetindex build' first.", checked)
}

// newResolver returns a resolver for path honoring the encryption settings.
func newResolver(cfg *config.Config, path string) (*nameindex.Resolver, error) {
	encrypted, err := cfg.EncryptionEnabled()
	if err != nil {
		return nil, err
	}
	opts := nameindex.ResolverOptions{Path: path, Encrypted: encrypted}
	if encrypted {
		dec, err := cfg.Decrypter()
		if err != nil {
			return nil, fmt.Errorf("cannot open encrypted index: %w", err)
		}
		opts.Decrypt = dec
	}
	return nameindex.NewResolver(opts), nil
}

// loadIndex reads the whole index at path honoring the encryption settings.
func loadIndex(cfg *config.Config, path string) (nameindex.Index, error) {
	dec, err := cfg.Decrypter()
	if err != nil {
		return nil, fmt.Errorf("cannot open encrypted index: %w", err)
	}
	return nameindex.LoadFile(path, dec)
}

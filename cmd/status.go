package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/assetindex/internal/config"
	"github.com/kamusis/assetindex/internal/nameindex"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show config, built index and deployed index state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printSection("Config")
	printInfo("build_path", cfg.BuildPath)
	printInfo("data_path", emptyAsNA(cfg.DataPath))
	mode := cfg.MatchMode
	if mode == "" {
		mode = "substring"
	}
	printInfo("configurations", fmt.Sprintf("%s (%s)", strings.Join(cfg.Configurations, ", "), mode))
	encrypted, err := cfg.EncryptionEnabled()
	if err != nil {
		printErr("encryption", err.Error())
	} else if encrypted {
		printInfo("encryption", fmt.Sprintf("on (%d recipient(s))", len(cfg.Recipients)))
	} else {
		printInfo("encryption", "off")
	}

	printSection("Index")
	built := indexState(cfg, "built", filepath.Join(cfg.BuildPath, nameindex.FileName))
	if cfg.DataPath == "" {
		return nil
	}
	deployed := indexState(cfg, "deployed", filepath.Join(cfg.DataPath, nameindex.FileName))
	if built != nil && deployed != nil && !sameIndex(built, deployed) {
		printWarn("", "deployed index differs from the build; run 'assetindex deploy'")
	}
	return nil
}

// indexState prints one line describing the index at path and returns it
// when it could be loaded.
func indexState(cfg *config.Config, label, path string) nameindex.Index {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		printMiss(label, fmt.Sprintf("%s (not found)", path))
		return nil
	}
	idx, err := loadIndex(cfg, path)
	if err != nil {
		printErr(label, err.Error())
		return nil
	}
	printOK(label, fmt.Sprintf("%s (%d names)", path, idx.Len()))
	return idx
}

func sameIndex(a, b nameindex.Index) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kamusis/assetindex/internal/config"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "assetindex",
	Short:        "assetindex — flat asset-name index for bundle builds",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `assetindex scans the bundle manifests of an asset build, writes a flat
short-name → full-path index next to them, stages it into the runtime data
directory and resolves names back to paths.`,
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
}

// addGlobalFlags registers the flags shared by every command.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Config file (default ~/.assetindex/assetindex.yaml)")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every processed manifest to stderr")
}

// loadConfig loads and validates the config selected by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'assetindex init' first.", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger returns the structured logger handed to library code. It is
// silent unless --verbose is set.
func newLogger(w io.Writer) *slog.Logger {
	if !flagVerbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

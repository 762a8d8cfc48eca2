package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/assetindex/internal/config"
)

var (
	flagInitBuildPath      string
	flagInitDataPath       string
	flagInitConfigurations []string
	flagInitForce          bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config and .env template",
	Long: `Create ~/.assetindex/assetindex.yaml (or the file given with --config)
and ~/.assetindex/.env. An existing config is left untouched unless --force
is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&flagInitBuildPath, "build-path", "", "Bundle build output directory")
	initCmd.Flags().StringVar(&flagInitDataPath, "data-path", "", "Runtime data directory the index is deployed into")
	initCmd.Flags().StringSliceVar(&flagInitConfigurations, "configurations", nil, "Manifest configuration names (comma-separated)")
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	cfgPath := flagConfig
	if cfgPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}

	if _, err := os.Stat(cfgPath); err == nil && !flagInitForce {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	} else {
		cfg := config.DefaultConfig()
		if flagInitBuildPath != "" {
			cfg.BuildPath = flagInitBuildPath
		}
		if flagInitDataPath != "" {
			cfg.DataPath = flagInitDataPath
		}
		if len(flagInitConfigurations) > 0 {
			cfg.Configurations = flagInitConfigurations
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	}

	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	p, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("Env file ready: %s", p))
	return nil
}

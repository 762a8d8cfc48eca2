package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamusis/assetindex/internal/deploy"
	"github.com/kamusis/assetindex/internal/nameindex"
)

var flagDeployDestName string

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Copy the built index into the runtime data directory",
	Long: `Copy <build_path>/` + nameindex.FileName + ` into data_path, creating
directories as needed. A missing index is reported as a warning so packaging
can continue without it.`,
	Args: cobra.NoArgs,
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().StringVar(&flagDeployDestName, "dest-name", "", "File name inside data_path (default: same as source)")
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DataPath == "" {
		return fmt.Errorf("data_path is not set in config")
	}

	res, err := deploy.CopyIndex(cfg.BuildPath, cfg.DataPath, nameindex.FileName, flagDeployDestName)
	if err != nil {
		return fmt.Errorf("deploy failed: %w", err)
	}

	switch res.Status {
	case deploy.StatusMissing:
		printWarn("", fmt.Sprintf("%s does not exist; was the bundle build run before packaging?", res.Source))
	case deploy.StatusUnchanged:
		printSkip("", fmt.Sprintf("already up to date: %s", res.Dest))
	case deploy.StatusCopied:
		printOK("", fmt.Sprintf("%s → %s", res.Source, res.Dest))
	}
	return nil
}

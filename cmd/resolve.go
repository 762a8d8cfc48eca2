package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagResolveIndex   string
	flagResolveLiteral bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>...",
	Short: "Resolve short asset names to their full paths",
	Long: `Look up each name in the index. Names the index does not know are
reported as not found; with --literal they are printed unchanged instead,
since they may already be valid paths. --literal prints one path per line
for use in scripts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&flagResolveIndex, "index", "", "Index file (default: deployed index, then built index)")
	resolveCmd.Flags().BoolVar(&flagResolveLiteral, "literal", false, "Print unknown names unchanged, one result per line")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := selectIndexPath(cfg, flagResolveIndex)
	if err != nil {
		return err
	}
	r, err := newResolver(cfg, path)
	if err != nil {
		return err
	}
	if err := r.Initialize(cmd.Context()); err != nil {
		return err
	}

	for _, name := range args {
		if flagResolveLiteral {
			fmt.Println(r.ResolveOrLiteral(name))
			continue
		}
		if p, ok := r.Resolve(name); ok {
			printOK(name, p)
		} else {
			printMiss(name, "not found")
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/assetindex/internal/search"
)

var (
	flagFindIndex string
	flagFindK     int
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search index entries by keyword",
	Long: `Case-insensitive keyword search over short names and full paths.
Every word of the query must match.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&flagFindIndex, "index", "", "Index file (default: deployed index, then built index)")
	findCmd.Flags().IntVar(&flagFindK, "k", 20, "Maximum number of results (0 = all)")
	rootCmd.AddCommand(findCmd)
}

func runFind(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := selectIndexPath(cfg, flagFindIndex)
	if err != nil {
		return err
	}
	idx, err := loadIndex(cfg, path)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	matches := search.Find(idx, query, flagFindK)

	fmt.Printf("\nassetindex find %q\n\n", query)
	fmt.Printf("Results (%d found):\n", len(matches))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, m := range matches {
		fmt.Fprintf(w, "  %d.\t%s\t%s\n", i+1, m.Name, m.Path)
	}
	return w.Flush()
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagListIndex string
	flagListTree  bool
	flagListPlain bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every name in the index",
	Long: `Print the index. On a terminal the full paths are drawn as a tree;
when piped, name and path are written tab-separated, one entry per line.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListIndex, "index", "", "Index file (default: deployed index, then built index)")
	listCmd.Flags().BoolVar(&flagListTree, "tree", false, "Always render as a tree")
	listCmd.Flags().BoolVar(&flagListPlain, "plain", false, "Always print name<TAB>path")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := selectIndexPath(cfg, flagListIndex)
	if err != nil {
		return err
	}
	idx, err := loadIndex(cfg, path)
	if err != nil {
		return err
	}

	asTree := flagListTree || (!flagListPlain && term.IsTerminal(int(os.Stdout.Fd())))
	if asTree {
		t := newPathTree(fmt.Sprintf("%s (%d names)", path, idx.Len()))
		for _, name := range idx.Names() {
			p, _ := idx.Lookup(name)
			t.insert(strings.ReplaceAll(p, `\`, "/"))
		}
		fmt.Print(t.render())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range idx.Names() {
		p, _ := idx.Lookup(name)
		fmt.Fprintf(w, "%s\t%s\n", name, p)
	}
	return w.Flush()
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/assetindex/internal/config"
	"github.com/kamusis/assetindex/internal/nameindex"
)

var (
	flagBuildRoot   string
	flagBuildDiff   bool
	flagBuildStrict bool
	flagBuildDryRun bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the asset-name index from the bundle manifests",
	Long: `Scan the build directory for manifest files of the configured
configurations and write a flat short-name → full-path index next to them.

Configuration names are matched against each manifest's path relative to
the scanned root, not the absolute path: with --root Build/Android a
configuration named "Android" matches nothing. Name the subdirectories below
the root instead.

Duplicate short names keep the first path found (manifests are processed in
sorted path order) and are reported, including the same path listed twice.
Unreadable manifests and asset paths without a file name are reported and
skipped.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flagBuildRoot, "root", "", "Directory to scan (default: build_path from config)")
	buildCmd.Flags().BoolVar(&flagBuildDiff, "diff", false, "Show a unified diff against the previous index")
	buildCmd.Flags().BoolVar(&flagBuildStrict, "strict", false, "Exit non-zero when collisions or unreadable manifests are reported")
	buildCmd.Flags().BoolVar(&flagBuildDryRun, "dry-run", false, "Report what would be indexed without writing the file")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root := cfg.BuildPath
	if flagBuildRoot != "" {
		root = flagBuildRoot
	}

	set, err := cfg.MatchSet()
	if err != nil {
		return err
	}
	derive, _ := nameindex.DeriveByName(cfg.Derive)
	encrypt, err := cfg.Encrypter()
	if err != nil {
		return err
	}

	outPath := filepath.Join(root, nameindex.FileName)
	var previous []byte
	if flagBuildDiff {
		previous = previousEncoding(cfg, outPath)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rep, err := nameindex.Build(ctx, nameindex.BuildOptions{
		Root:           root,
		Configurations: set,
		Pattern:        cfg.Pattern,
		Derive:         derive,
		Workers:        cfg.Workers,
		OutPath:        outPath,
		Encrypt:        encrypt,
		DryRun:         flagBuildDryRun,
		Logger:         newLogger(os.Stderr),
	})
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	printBuildReport(root, rep)

	if flagBuildDiff {
		d, err := nameindex.Diff(previous, rep.Encoded, "previous/"+nameindex.FileName, "new/"+nameindex.FileName)
		if err != nil {
			printWarn("", fmt.Sprintf("cannot diff: %v", err))
		} else if d == "" {
			printInfo("", "index unchanged")
		} else {
			fmt.Println()
			fmt.Println(d)
		}
	}

	if flagBuildStrict && (len(rep.Collisions) > 0 || len(rep.Failures) > 0 || len(rep.Unnamed) > 0) {
		return fmt.Errorf("%d duplicate name(s), %d unreadable manifest(s), %d unnamed asset(s)",
			len(rep.Collisions), len(rep.Failures), len(rep.Unnamed))
	}
	return nil
}

// previousEncoding returns the plaintext encoding of the index currently at
// path, or nil when there is none to compare against.
func previousEncoding(cfg *config.Config, path string) []byte {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	idx, err := loadIndex(cfg, path)
	if err != nil {
		printWarn("", fmt.Sprintf("previous index unreadable, diffing against empty: %v", err))
		return nil
	}
	b, err := nameindex.Encode(idx)
	if err != nil {
		return nil
	}
	return b
}

func printBuildReport(root string, rep *nameindex.Report) {
	rel := func(p string) string {
		if r, err := filepath.Rel(root, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}

	printSection("Build")
	if len(rep.Included) > 0 {
		printBullet("Processed:")
		for _, f := range rep.Included {
			printOK("", rel(f))
		}
	}
	if len(rep.Skipped) > 0 {
		printBullet("Not part of any configuration (skipped):")
		for _, f := range rep.Skipped {
			printSkip("", rel(f))
		}
	}
	if len(rep.Failures) > 0 {
		printBullet("Unreadable manifests:")
		for _, f := range rep.Failures {
			msg := f.Err.Error()
			if nameindex.IsEmptyManifest(f.Err) {
				msg = "no bundle list"
			}
			printErr(rel(f.Path), msg)
		}
	}
	if len(rep.Collisions) > 0 {
		printBullet("Duplicate names (first path kept):")
		for _, c := range rep.Collisions {
			if c.Repeat() {
				printWarn(c.Name, fmt.Sprintf("%s listed again in %s (first in %s)", c.Kept, rel(c.RejectedFile), rel(c.KeptFile)))
				continue
			}
			printWarn(c.Name, fmt.Sprintf("kept %s (%s), rejected %s (%s)", c.Kept, rel(c.KeptFile), c.Rejected, rel(c.RejectedFile)))
		}
	}
	if len(rep.Unnamed) > 0 {
		printBullet("Asset paths without a name (skipped):")
		for _, u := range rep.Unnamed {
			printWarn(rel(u.File), u.Path)
		}
	}

	fmt.Printf("\n  %d names / %d manifests / %d skipped / %d unreadable / %d duplicates / %d unnamed\n",
		rep.Index.Len(), len(rep.Included), len(rep.Skipped), len(rep.Failures), len(rep.Collisions), len(rep.Unnamed))
	if rep.Written {
		printOK("", fmt.Sprintf("index written: %s", rep.OutPath))
		printInfo("", fmt.Sprintf("blake3 %s", rep.Digest))
	} else {
		printSkip("", "dry run, nothing written")
	}
}

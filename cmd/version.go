package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/kamusis/assetindex/cmd.version=...".
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the assetindex version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// vcsInfo fills commit and build date from the binary's embedded VCS stamp
// when they were not set at link time (e.g. after `go install`).
func vcsInfo() (rev, when string) {
	rev, when = commit, buildDate
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return rev, when
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && rev == "":
			rev = s.Value
		case s.Key == "vcs.time" && when == "":
			when = s.Value
		}
	}
	return rev, when
}

func runVersion(_ *cobra.Command, _ []string) error {
	rev, when := vcsInfo()
	fmt.Printf("assetindex %s\n", version)
	fmt.Printf("  commit  %s\n", emptyAsNA(rev))
	fmt.Printf("  built   %s\n", emptyAsNA(when))
	fmt.Printf("  go      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}

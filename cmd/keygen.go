package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/assetindex/internal/sealed"
)

var flagKeygenOut string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an age keypair for encrypted indexes",
	Long: `Write a new age identity file and print its public key. Add the public
key to 'recipients' in the config and point 'identity_file' (or
ASSETINDEX_IDENTITY) at the private key wherever the index is read.`,
	Args: cobra.NoArgs,
	RunE: runKeygen,
}

func init() {
	keygenCmd.Flags().StringVarP(&flagKeygenOut, "out", "o", "", "Identity file to write (required)")
	_ = keygenCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(flagKeygenOut); err == nil {
		return fmt.Errorf("%s already exists; refusing to overwrite", flagKeygenOut)
	}
	kp, err := sealed.GenerateKeypair()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(flagKeygenOut), 0o700); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(flagKeygenOut), err)
	}
	if err := os.WriteFile(flagKeygenOut, []byte(sealed.FormatIdentityFile(kp)), 0o600); err != nil {
		return fmt.Errorf("cannot write identity file: %w", err)
	}
	printOK("", fmt.Sprintf("identity written: %s", flagKeygenOut))
	fmt.Printf("Public key: %s\n", kp.PublicKey)
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-fang/pkg/app/crypt"
)

var decryptFlags cryptFlags

var decryptCmd = &cobra.Command{
	Use:   "decrypt [asset-path...]",
	Short: "Decrypt filelist containers and script payloads",
	Long: `Decrypt one or more assets. Each output is written next to its input
with the decrypt suffix unless --out is given.

A filelist that is not tagged as encrypted is reported as skipped and
left untouched.

Examples:
  # Decrypt a filelist and check that re-encrypting reproduces it
  fang decrypt data/filelist.bin --verify

  # Decrypt every script in a directory, four at a time
  fang decrypt scripts/*.bin --kind script -p 4

  # Write only the plaintext body
  fang decrypt data/filelist.bin --body-only --out filelist.txt`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(cmd, crypt.OperationDecrypt, &decryptFlags, args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptFlags.bindKind(decryptCmd)
	decryptFlags.bindOutput(decryptCmd)
	decryptCmd.Flags().BoolVar(&decryptFlags.verify, "verify", false, "re-encrypt the result and compare with the input")
}

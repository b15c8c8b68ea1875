package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-fang/pkg/app/crypt"
)

var encryptFlags cryptFlags

var encryptCmd = &cobra.Command{
	Use:   "encrypt [asset-path...]",
	Short: "Encrypt decrypted filelist containers and script payloads",
	Long: `Encrypt one or more decrypted assets.

For filelists the key is derived from the A and B header fields, which are
then replaced by a 16-byte digest of the plaintext body, and the tag is set
back to the encrypted marker. Filelists already tagged as encrypted are
skipped.

Examples:
  fang encrypt data/filelist.bin.dec --out data/filelist.bin
  fang encrypt scripts/*.dec --kind script --digest blake2b`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(cmd, crypt.OperationEncrypt, &encryptFlags, args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptFlags.bindKind(encryptCmd)
	encryptFlags.bindOutput(encryptCmd)
	encryptCmd.Flags().StringVar(&encryptFlags.digest, "digest", "", "filelist head digest (md5, blake2b; default from config)")
}

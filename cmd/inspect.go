package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-fang/pkg/app/crypt"
)

var inspectFlags cryptFlags

var inspectCmd = &cobra.Command{
	Use:   "inspect [asset-path...]",
	Short: "Show header, seed and framing details of assets",
	Long: `Inspect assets without modifying them.

Examples:
  fang inspect data/filelist.bin
  fang inspect data/*.bin -o yaml`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(cmd, crypt.OperationInspect, &inspectFlags, args)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectFlags.bindKind(inspectCmd)
}

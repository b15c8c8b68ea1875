package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-fang/internal/config"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string
	logFormat    string
	configFile   string

	// Effective configuration, loaded before any sub-command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fang",
	Short: "Decrypt and re-encrypt obfuscated game engine filelists and scripts",
	Long: `fang reverses the engine's asset obfuscation cipher in both directions.

It understands two asset kinds:
  filelist    32-byte tagged header followed by the obfuscated body
  script      8-byte literal seed followed by the obfuscated body

Commands:
  decrypt     Decrypt one or more assets
  encrypt     Re-encrypt one or more decrypted assets
  inspect     Show header, seed and framing details
  config      Show the effective configuration`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		applyGlobalOverrides(cmd, loaded)
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: fang-config.yaml in ., ./config, $HOME/.fang)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// applyGlobalOverrides lets explicitly set flags win over config values
func applyGlobalOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		c.OutputFormat = outputFormat
	}
	if flags.Changed("log-format") {
		c.LogFormat = logFormat
	}
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-fang/internal/config"
	"github.com/deploymenttheory/go-fang/internal/types"
	"github.com/deploymenttheory/go-fang/pkg/app"
	"github.com/deploymenttheory/go-fang/pkg/app/crypt"
)

// cryptFlags are the per-command options shared by decrypt, encrypt and inspect
type cryptFlags struct {
	kind        string
	out         string
	suffix      string
	bodyOnly    bool
	verify      bool
	digest      string
	parallelism int
}

func (f *cryptFlags) bindKind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", string(types.AssetKindAuto), "asset kind (auto, filelist, script)")
}

func (f *cryptFlags) bindOutput(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.out, "out", "", "output path (single input only)")
	cmd.Flags().StringVar(&f.suffix, "suffix", "", "suffix appended to each input path (default from config)")
	cmd.Flags().BoolVar(&f.bodyOnly, "body-only", false, "write only the transformed body")
	cmd.Flags().IntVarP(&f.parallelism, "parallel", "p", 0, "number of assets processed concurrently (default from config)")
	cmd.MarkFlagsMutuallyExclusive("out", "suffix")
}

// newAppContext builds the application context from the effective configuration
func newAppContext(c *config.Config) *app.Context {
	ctx := app.NewContext()
	ctx.OutputFormat = c.OutputFormat
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	ctx.LogFormat = c.LogFormat
	ctx.DefaultTimeout = c.Timeout
	ctx.SetLogOutput(os.Stderr)
	return ctx
}

// newRunContext returns the application context bounded by the configured timeout
func newRunContext(c *config.Config) (*app.Context, context.CancelFunc) {
	ctx := newAppContext(c)
	return ctx.WithTimeout(ctx.DefaultTimeout)
}

// buildRequest merges command flags with configuration defaults
func buildRequest(op crypt.Operation, f *cryptFlags, c *config.Config, paths []string) *crypt.Request {
	req := &crypt.Request{
		Paths:       paths,
		Operation:   op,
		Kind:        types.AssetKind(f.kind),
		OutputPath:  f.out,
		Suffix:      f.suffix,
		BodyOnly:    f.bodyOnly,
		Verify:      f.verify,
		Digest:      f.digest,
		Parallelism: f.parallelism,
	}

	if req.Digest == "" {
		req.Digest = c.Digest
	}
	if req.Parallelism == 0 {
		req.Parallelism = c.Parallelism
	}
	if req.Suffix == "" && req.OutputPath == "" {
		switch op {
		case crypt.OperationDecrypt:
			req.Suffix = c.DecryptSuffix
		case crypt.OperationEncrypt:
			req.Suffix = c.EncryptSuffix
		}
	}
	return req
}

// runCrypt handles a request and prints the results. Any failed asset makes the command fail.
func runCrypt(cmd *cobra.Command, op crypt.Operation, f *cryptFlags, paths []string) error {
	ctx, cancel := newRunContext(cfg)
	defer cancel()

	response, err := crypt.Handle(ctx, buildRequest(op, f, cfg, paths))
	if err != nil {
		return err
	}

	if err := crypt.FormatOutput(cmd.OutOrStdout(), response, ctx.OutputFormat); err != nil {
		return err
	}

	if response.Failed > 0 {
		return fmt.Errorf("%d of %d assets failed", response.Failed, len(response.Results))
	}
	return nil
}

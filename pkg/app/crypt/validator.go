package crypt

import (
	"github.com/deploymenttheory/go-fang/internal/types"
	"github.com/deploymenttheory/go-fang/pkg/app"
)

const maxParallelism = 256

// Validate validates a request
func (r *Request) Validate() error {
	if len(r.Paths) == 0 {
		return app.NewError(app.ErrCodeInvalidInput, "at least one asset path is required", nil)
	}
	for _, p := range r.Paths {
		if p == "" {
			return app.NewError(app.ErrCodeInvalidInput, "asset path must not be empty", nil)
		}
	}

	switch r.Operation {
	case OperationDecrypt, OperationEncrypt, OperationInspect:
	default:
		return app.NewError(app.ErrCodeInvalidInput, "unsupported operation: "+string(r.Operation), nil)
	}

	if r.Kind == "" {
		r.Kind = types.AssetKindAuto
	}
	if !r.Kind.Valid() {
		return app.NewError(app.ErrCodeUnsupportedKind, "unsupported asset kind: "+string(r.Kind), nil)
	}

	if r.OutputPath != "" && len(r.Paths) > 1 {
		return app.NewError(app.ErrCodeInvalidInput, "an explicit output path requires a single input", nil)
	}
	if r.Verify && r.Operation != OperationDecrypt {
		return app.NewError(app.ErrCodeInvalidInput, "verification is only available when decrypting", nil)
	}

	if r.Parallelism == 0 {
		r.Parallelism = 1
	}
	if r.Parallelism < 1 || r.Parallelism > maxParallelism {
		return app.NewError(app.ErrCodeInvalidInput, "parallelism must be between 1 and 256", nil)
	}

	if r.Suffix == "" {
		r.Suffix = r.defaultSuffix()
	}
	return nil
}

func (r *Request) defaultSuffix() string {
	if r.Operation == OperationEncrypt {
		return ".enc"
	}
	return ".dec"
}

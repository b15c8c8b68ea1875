package crypt

import (
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/deploymenttheory/go-fang/internal/disk"
	"github.com/deploymenttheory/go-fang/internal/parsers/filelist"
	"github.com/deploymenttheory/go-fang/internal/parsers/script"
	"github.com/deploymenttheory/go-fang/internal/services"
	"github.com/deploymenttheory/go-fang/internal/types"
	"github.com/deploymenttheory/go-fang/pkg/app"
)

// Handle processes every asset in the request. Assets are independent: each
// one expands its own key, and a failure is recorded without stopping the rest.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	digester, err := services.NewDigestService(req.Digest)
	if err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid digest algorithm", err)
	}
	codec := services.NewCodecService(digester)

	runID := uuid.NewString()
	ctx.Log("starting run", "run_id", runID, "operation", req.Operation, "files", len(req.Paths), "parallelism", req.Parallelism)
	ctx.Progress("Processing assets...", 0)

	// 2. Process assets in parallel
	results := make([]FileResult, len(req.Paths))
	progress := &app.ProgressUpdate{Total: int64(len(req.Paths)), StartedAt: startTime}
	var progressMu sync.Mutex
	p := pool.New().WithMaxGoroutines(req.Parallelism)
	for i, path := range req.Paths {
		p.Go(func() {
			results[i] = processAsset(ctx, codec, req, path)

			// The callback sees one update at a time, in completion order.
			progressMu.Lock()
			defer progressMu.Unlock()
			progress.Message = path
			progress.Completed++
			progress.ElapsedTime = time.Since(progress.StartedAt)
			ctx.Log("asset finished", "path", path, "completed", progress.Completed, "total", progress.Total, "rate", progress.Rate())
			ctx.Progress(progress.Message, progress.Percent())
		})
	}
	p.Wait()

	// 3. Summarise
	response := &Response{
		RunID:     runID,
		Operation: req.Operation,
		Results:   results,
		Duration:  time.Since(startTime),
	}
	for i := range results {
		r := &results[i]
		switch r.Status {
		case StatusFailed:
			response.Failed++
			ctx.Error("asset failed", "path", r.Path, "code", r.ErrorCode, "error", r.Error)
		case StatusSkipped:
			response.Skipped++
			ctx.Log("asset skipped", "path", r.Path, "tag", r.Tag)
		default:
			response.Processed++
		}
	}

	ctx.Log("run completed", "run_id", runID, "processed", response.Processed, "skipped", response.Skipped, "failed", response.Failed, "duration", response.Duration)
	return response, nil
}

// processAsset handles a single asset and converts every failure into a result
func processAsset(ctx *app.Context, codec *services.CodecService, req *Request, path string) FileResult {
	result := FileResult{Path: path, Kind: string(req.Kind)}

	if err := ctx.Err(); err != nil {
		return failed(result, app.NewError(app.ErrCodeTimeout, "run cancelled before asset was processed", err))
	}

	asset, err := disk.OpenAsset(ctx.Fs, path)
	if err != nil {
		return failed(result, app.NewError(app.ErrCodeFileAccess, "failed to open asset", err))
	}

	kind := req.Kind
	if kind == types.AssetKindAuto {
		kind = services.DetectKind(asset.Data())
	}
	result.Kind = string(kind)
	ctx.Log("processing asset", "path", path, "kind", kind, "size", asset.Size())

	if req.Operation == OperationInspect {
		return inspectAsset(result, kind, asset.Data())
	}

	var original []byte
	if req.Verify {
		original = append([]byte(nil), asset.Data()...)
	}

	codecResult, err := transform(codec, req.Operation, kind, asset.Data())
	if err != nil {
		return failed(result, app.WrapCipherError(fmt.Sprintf("failed to %s asset", req.Operation), err))
	}
	result.Seed = FormatSeed(uint64(codecResult.Seed))
	result.BodySize = codecResult.BodySize
	if codecResult.Kind == types.AssetKindFilelist {
		result.Tag = types.TagName(codecResult.Tag)
	}
	if codecResult.Digest != nil {
		result.Digest = hex.EncodeToString(codecResult.Digest)
	}

	if codecResult.Outcome == services.OutcomeSkipped {
		result.Status = StatusSkipped
		return result
	}

	start, end := bodyBounds(kind, codecResult.BodySize)
	if req.Verify {
		if err := codec.VerifyRoundTrip(codecResult.Seed, original[start:end], asset.Data()[start:end]); err != nil {
			return failed(result, app.NewError(app.ErrCodeVerifyFailed, "round trip verification failed", err))
		}
		result.Verified = true
	}

	output := asset.Data()
	if req.BodyOnly {
		output = output[start:end]
	}

	outPath := disk.OutputPath(path, req.Suffix, req.OutputPath)
	if err := disk.WriteAtomic(ctx.Fs, outPath, output, asset.Mode()); err != nil {
		return failed(result, app.NewError(app.ErrCodeFileAccess, "failed to write output", err))
	}

	result.OutputPath = outPath
	result.Status = string(codecResult.Outcome)
	return result
}

func transform(codec *services.CodecService, op Operation, kind types.AssetKind, data []byte) (*services.CodecResult, error) {
	switch {
	case op == OperationDecrypt && kind == types.AssetKindFilelist:
		return codec.DecryptFilelist(data)
	case op == OperationEncrypt && kind == types.AssetKindFilelist:
		return codec.EncryptFilelist(data)
	case op == OperationDecrypt && kind == types.AssetKindScript:
		return codec.DecryptScript(data)
	case op == OperationEncrypt && kind == types.AssetKindScript:
		return codec.EncryptScript(data)
	default:
		return nil, fmt.Errorf("unsupported combination: %s %s", op, kind)
	}
}

// bodyBounds returns the byte range of the transformed body within the asset
func bodyBounds(kind types.AssetKind, bodySize int) (int, int) {
	if kind == types.AssetKindFilelist {
		return types.FilelistHeaderSize, types.FilelistHeaderSize + bodySize
	}
	return types.ScriptSeedSize, types.ScriptSeedSize + bodySize
}

// inspectAsset reports the framing of an asset without modifying it
func inspectAsset(result FileResult, kind types.AssetKind, data []byte) FileResult {
	if kind == types.AssetKindScript {
		reader, err := script.NewScriptPayloadReader(data)
		if err != nil {
			return failed(result, app.WrapCipherError("invalid script payload", err))
		}
		result.Seed = FormatSeed(uint64(reader.Seed()))
		result.BodySize = len(reader.Body())
		result.Status = StatusInspected
		return result
	}

	reader, err := filelist.NewFilelistHeaderReader(data)
	if err != nil {
		return failed(result, app.WrapCipherError("invalid filelist header", err))
	}

	h := reader.Header()
	result.Seed = FormatSeed(uint64(reader.Seed()))
	result.BodySize = reader.Size()
	result.Tag = types.TagName(reader.Tag())
	result.Header = &HeaderInfo{
		A:          fmt.Sprintf("0x%016x", h.A),
		B:          fmt.Sprintf("0x%016x", h.B),
		SizeField:  h.SizeField,
		TagValue:   fmt.Sprintf("0x%08x", h.Tag),
		BodyOffset: reader.BodyOffset(),
	}

	if _, err := reader.Body(); err != nil {
		result.Error = err.Error()
		result.ErrorCode = app.ErrCodeMalformedInput
	} else {
		result.Header.BodyValid = true
		result.Header.Trailing = len(data) - reader.BodyOffset() - reader.Size()
	}

	result.Status = StatusInspected
	return result
}

func failed(result FileResult, err *app.CommonError) FileResult {
	result.Status = StatusFailed
	result.Error = err.Error()
	result.ErrorCode = err.Code
	return result
}

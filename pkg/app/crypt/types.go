package crypt

import (
	"fmt"
	"time"

	"github.com/deploymenttheory/go-fang/internal/types"
)

// Operation selects what Handle does with each asset
type Operation string

const (
	OperationDecrypt Operation = "decrypt"
	OperationEncrypt Operation = "encrypt"
	OperationInspect Operation = "inspect"
)

// Status values reported per file
const (
	StatusDecrypted = "decrypted"
	StatusEncrypted = "encrypted"
	StatusSkipped   = "skipped"
	StatusInspected = "inspected"
	StatusFailed    = "failed"
)

// Request represents a batch decrypt, encrypt or inspect request
type Request struct {
	Paths     []string
	Operation Operation
	Kind      types.AssetKind

	// Output options
	OutputPath string
	Suffix     string
	BodyOnly   bool

	// Processing options
	Verify      bool
	Digest      string
	Parallelism int
}

// Response represents the outcome of a batch
type Response struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Operation Operation     `json:"operation" yaml:"operation"`
	Results   []FileResult  `json:"results" yaml:"results"`
	Processed int           `json:"processed" yaml:"processed"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	Failed    int           `json:"failed" yaml:"failed"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// FileResult represents the outcome for a single asset
type FileResult struct {
	Path       string      `json:"path" yaml:"path"`
	OutputPath string      `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Kind       string      `json:"kind" yaml:"kind"`
	Status     string      `json:"status" yaml:"status"`
	Seed       string      `json:"seed,omitempty" yaml:"seed,omitempty"`
	BodySize   int         `json:"body_size" yaml:"body_size"`
	Tag        string      `json:"tag,omitempty" yaml:"tag,omitempty"`
	Digest     string      `json:"digest,omitempty" yaml:"digest,omitempty"`
	Verified   bool        `json:"verified,omitempty" yaml:"verified,omitempty"`
	Header     *HeaderInfo `json:"header,omitempty" yaml:"header,omitempty"`
	Error      string      `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode  string      `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// HeaderInfo describes a filelist header for inspection
type HeaderInfo struct {
	A          string `json:"a" yaml:"a"`
	B          string `json:"b" yaml:"b"`
	SizeField  int32  `json:"size_field" yaml:"size_field"`
	TagValue   string `json:"tag_value" yaml:"tag_value"`
	BodyOffset int    `json:"body_offset" yaml:"body_offset"`
	BodyValid  bool   `json:"body_valid" yaml:"body_valid"`
	Trailing   int    `json:"trailing_bytes" yaml:"trailing_bytes"`
}

// Failed reports whether the file could not be processed
func (r *FileResult) Failed() bool {
	return r.Status == StatusFailed
}

// FormatSeed renders a seed the way results report it
func FormatSeed(seed uint64) string {
	return fmt.Sprintf("0x%016x", seed)
}

package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/deploymenttheory/go-fang/internal/cipher"
)

// ProgressUpdate represents progress information
type ProgressUpdate struct {
	Message     string
	Completed   int64
	Total       int64
	StartedAt   time.Time
	ElapsedTime time.Duration
}

// Percent calculates completion percentage
func (p *ProgressUpdate) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int((p.Completed * 100) / p.Total)
}

// Rate calculates items per second
func (p *ProgressUpdate) Rate() float64 {
	if p.ElapsedTime == 0 {
		return 0
	}
	return float64(p.Completed) / p.ElapsedTime.Seconds()
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeMalformedInput  = "MALFORMED_INPUT"
	ErrCodeFileAccess      = "FILE_ACCESS"
	ErrCodeUnsupportedKind = "UNSUPPORTED_KIND"
	ErrCodeVerifyFailed    = "VERIFY_FAILED"
	ErrCodeTimeout         = "TIMEOUT"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapCipherError classifies a codec failure, keeping malformed framing distinct
func WrapCipherError(message string, err error) *CommonError {
	if errors.Is(err, cipher.ErrMalformedInput) {
		return NewError(ErrCodeMalformedInput, message, err)
	}
	return NewError(ErrCodeInvalidInput, message, err)
}

// ErrorCode returns the code of the first CommonError in err's chain, or ""
func ErrorCode(err error) string {
	var ce *CommonError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// File: internal/interfaces/filelist.go
package interfaces

import (
	"github.com/deploymenttheory/go-fang/internal/cipher"
	"github.com/deploymenttheory/go-fang/internal/types"
)

// FilelistHeaderReader provides methods for reading a filelist container header
type FilelistHeaderReader interface {
	// Header returns the decoded header structure
	Header() *types.FilelistHeader

	// Head returns the raw 16 bytes holding the A and B fields
	Head() [types.FilelistHeadSize]byte

	// Tag returns the raw tag value
	Tag() uint32

	// IsEncrypted reports whether the tag marks an obfuscated body
	IsEncrypted() bool

	// IsDecrypted reports whether the tag marks a plaintext body
	IsDecrypted() bool

	// Size returns the body length declared by the header
	Size() int

	// BodyOffset returns the offset of the body within the record
	BodyOffset() int

	// Body returns the body region of the record, validated against the record length
	Body() ([]byte, error)

	// Seed returns the seed derived from the A and B fields
	Seed() cipher.Seed
}

// ScriptPayloadReader provides methods for reading a seed-prefixed script payload
type ScriptPayloadReader interface {
	// Seed returns the literal seed stored in the prefix
	Seed() cipher.Seed

	// Body returns the bytes following the seed prefix
	Body() []byte
}

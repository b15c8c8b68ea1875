package filelist

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-fang/internal/cipher"
	"github.com/deploymenttheory/go-fang/internal/interfaces"
	"github.com/deploymenttheory/go-fang/internal/types"
)

// filelistHeaderReader implements the FilelistHeaderReader interface
type filelistHeaderReader struct {
	header *types.FilelistHeader
	data   []byte
}

// NewFilelistHeaderReader creates a new FilelistHeaderReader over a whole record.
// The header is decoded eagerly; the body bounds are checked by Body.
func NewFilelistHeaderReader(data []byte) (interfaces.FilelistHeaderReader, error) {
	header, err := ParseFilelistHeader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filelist header: %w", err)
	}

	return &filelistHeaderReader{
		header: header,
		data:   data,
	}, nil
}

// ParseFilelistHeader decodes the first 32 bytes of data into a FilelistHeader
func ParseFilelistHeader(data []byte) (*types.FilelistHeader, error) {
	if len(data) < types.FilelistHeaderSize {
		return nil, fmt.Errorf("%w: data too small for filelist header: %d bytes", cipher.ErrMalformedInput, len(data))
	}

	h := &types.FilelistHeader{}
	h.A = binary.LittleEndian.Uint64(data[types.FilelistOffsetA : types.FilelistOffsetA+8])
	h.B = binary.LittleEndian.Uint64(data[types.FilelistOffsetB : types.FilelistOffsetB+8])

	// The size is the only big-endian field.
	h.SizeField = int32(binary.BigEndian.Uint32(data[types.FilelistOffsetSize : types.FilelistOffsetSize+4]))
	h.Tag = binary.LittleEndian.Uint32(data[types.FilelistOffsetTag : types.FilelistOffsetTag+4])
	copy(h.Reserved[:], data[types.FilelistOffsetReserved:types.FilelistHeaderSize])

	return h, nil
}

// EncodeFilelistHeader writes h into the first 32 bytes of dst
func EncodeFilelistHeader(dst []byte, h *types.FilelistHeader) error {
	if len(dst) < types.FilelistHeaderSize {
		return fmt.Errorf("%w: buffer too small for filelist header: %d bytes", cipher.ErrMalformedInput, len(dst))
	}

	binary.LittleEndian.PutUint64(dst[types.FilelistOffsetA:], h.A)
	binary.LittleEndian.PutUint64(dst[types.FilelistOffsetB:], h.B)
	binary.BigEndian.PutUint32(dst[types.FilelistOffsetSize:], uint32(h.SizeField))
	binary.LittleEndian.PutUint32(dst[types.FilelistOffsetTag:], h.Tag)
	copy(dst[types.FilelistOffsetReserved:types.FilelistHeaderSize], h.Reserved[:])
	return nil
}

// PutTag overwrites the tag field of the record in place
func PutTag(record []byte, tag uint32) error {
	if len(record) < types.FilelistHeaderSize {
		return fmt.Errorf("%w: record too small for filelist header: %d bytes", cipher.ErrMalformedInput, len(record))
	}
	binary.LittleEndian.PutUint32(record[types.FilelistOffsetTag:], tag)
	return nil
}

// Header returns the decoded header structure
func (fhr *filelistHeaderReader) Header() *types.FilelistHeader {
	return fhr.header
}

// Head returns the raw 16 bytes holding the A and B fields
func (fhr *filelistHeaderReader) Head() [types.FilelistHeadSize]byte {
	var head [types.FilelistHeadSize]byte
	copy(head[:], fhr.data[:types.FilelistHeadSize])
	return head
}

// Tag returns the raw tag value
func (fhr *filelistHeaderReader) Tag() uint32 {
	return fhr.header.Tag
}

// IsEncrypted reports whether the tag marks an obfuscated body
func (fhr *filelistHeaderReader) IsEncrypted() bool {
	return fhr.header.IsEncrypted()
}

// IsDecrypted reports whether the tag marks a plaintext body
func (fhr *filelistHeaderReader) IsDecrypted() bool {
	return fhr.header.IsDecrypted()
}

// Size returns the body length declared by the header
func (fhr *filelistHeaderReader) Size() int {
	return fhr.header.Size()
}

// BodyOffset returns the offset of the body within the record
func (fhr *filelistHeaderReader) BodyOffset() int {
	return types.FilelistHeaderSize
}

// Body returns the body region of the record. A negative size, a size that
// is not block aligned, or a body running past the record is malformed.
func (fhr *filelistHeaderReader) Body() ([]byte, error) {
	size := fhr.Size()
	if size < 0 {
		return nil, fmt.Errorf("%w: negative body size %d", cipher.ErrMalformedInput, size)
	}
	if size%cipher.BlockSize != 0 {
		return nil, fmt.Errorf("%w: body size %d is not a multiple of %d", cipher.ErrMalformedInput, size, cipher.BlockSize)
	}

	start := fhr.BodyOffset()
	end := start + size
	if end > len(fhr.data) {
		return nil, fmt.Errorf("%w: body [%d:%d] exceeds record length %d", cipher.ErrMalformedInput, start, end, len(fhr.data))
	}
	return fhr.data[start:end], nil
}

// Seed returns the seed derived from the A and B fields
func (fhr *filelistHeaderReader) Seed() cipher.Seed {
	return cipher.FilelistSeed(fhr.Head())
}

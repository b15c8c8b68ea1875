// Package types implements the on-disk structures of the engine's obfuscated assets.
package types

// Filelist containers
// A filelist is a 32-byte header followed by a body whose length is declared
// in the header. The tag field tells whether the body is currently obfuscated.

const (
	// FilelistHeaderSize is the size in bytes of the filelist header.
	FilelistHeaderSize = 32

	// FilelistHeadSize is the size of the A and B fields the seed is derived
	// from. On encrypted output these bytes hold the digest of the body.
	FilelistHeadSize = 16

	// FilelistSizeBias is added to the declared size field to obtain the body length.
	FilelistSizeBias = 16

	// FilelistTagEncrypted marks a filelist whose body is obfuscated.
	FilelistTagEncrypted uint32 = 0x1DE03478

	// FilelistTagDecrypted marks a filelist whose body is plaintext.
	FilelistTagDecrypted uint32 = 0xE21FCB87
)

// Field offsets within the filelist header.
const (
	FilelistOffsetA        = 0
	FilelistOffsetB        = 8
	FilelistOffsetSize     = 16
	FilelistOffsetTag      = 20
	FilelistOffsetReserved = 24
)

// FilelistHeader is the 32-byte header at the start of a filelist container.
type FilelistHeader struct {
	// First half of the seed material (little-endian).
	A uint64

	// Second half of the seed material (little-endian).
	B uint64

	// The declared size, stored big-endian as a signed 32-bit value.
	// The body is SizeField + FilelistSizeBias bytes long.
	SizeField int32

	// FilelistTagEncrypted or FilelistTagDecrypted (little-endian).
	Tag uint32

	// Padding to the 32-byte header size.
	Reserved [8]byte
}

// Size returns the length in bytes of the body that follows the header.
func (h *FilelistHeader) Size() int {
	return int(h.SizeField) + FilelistSizeBias
}

// IsEncrypted reports whether the tag marks an obfuscated body.
func (h *FilelistHeader) IsEncrypted() bool {
	return h.Tag == FilelistTagEncrypted
}

// IsDecrypted reports whether the tag marks a plaintext body.
func (h *FilelistHeader) IsDecrypted() bool {
	return h.Tag == FilelistTagDecrypted
}

// SizeFieldFor returns the size field value declaring a body of n bytes.
func SizeFieldFor(n int) int32 {
	return int32(n - FilelistSizeBias)
}

// TagName returns a human readable name for a filelist tag.
func TagName(tag uint32) string {
	switch tag {
	case FilelistTagEncrypted:
		return "encrypted"
	case FilelistTagDecrypted:
		return "decrypted"
	default:
		return "unknown"
	}
}

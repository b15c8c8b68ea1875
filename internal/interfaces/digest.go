// File: internal/interfaces/digest.go
package interfaces

// Digester computes the 16-byte integrity digest stored in the head of an encrypted filelist
type Digester interface {
	// Algorithm returns the configured digest algorithm name
	Algorithm() string

	// Sum16 returns the digest of data
	Sum16(data []byte) [16]byte
}

package services

import (
	"crypto/md5"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Supported digest algorithms for the head of an encrypted filelist
const (
	DigestMD5     = "md5"
	DigestBLAKE2b = "blake2b"
)

// DigestService computes the 16-byte integrity digest written over the
// A and B fields when a filelist is encrypted
type DigestService struct {
	algorithm string
}

// NewDigestService creates a digest service for the named algorithm.
// An empty name selects MD5.
func NewDigestService(algorithm string) (*DigestService, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	if algorithm == "" {
		algorithm = DigestMD5
	}

	switch algorithm {
	case DigestMD5, DigestBLAKE2b:
		return &DigestService{algorithm: algorithm}, nil
	default:
		return nil, fmt.Errorf("unsupported digest algorithm: %s", algorithm)
	}
}

// Algorithm returns the configured digest algorithm name
func (ds *DigestService) Algorithm() string {
	return ds.algorithm
}

// Sum16 returns the digest of data
func (ds *DigestService) Sum16(data []byte) [16]byte {
	switch ds.algorithm {
	case DigestBLAKE2b:
		return ds.blake2b128(data)
	default:
		return md5.Sum(data)
	}
}

// blake2b128 computes unkeyed BLAKE2b with a 16-byte output
func (ds *DigestService) blake2b128(data []byte) [16]byte {
	var sum [16]byte

	// New only fails for an oversized key or output size.
	h, err := blake2b.New(16, nil)
	if err != nil {
		panic(err)
	}
	h.Write(data)
	h.Sum(sum[:0])

	return sum
}

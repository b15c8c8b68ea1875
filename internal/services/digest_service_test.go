package services

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestService(t *testing.T) {
	body, err := hex.DecodeString("5f5f5f1e16bc7a3f")
	require.NoError(t, err)

	tests := []struct {
		name      string
		algorithm string
		wantAlg   string
		expected  string
	}{
		{
			name:      "default is md5",
			algorithm: "",
			wantAlg:   DigestMD5,
			expected:  "5ddd318d8b4e17add2eff3c6e569b14d",
		},
		{
			name:      "md5",
			algorithm: "MD5",
			wantAlg:   DigestMD5,
			expected:  "5ddd318d8b4e17add2eff3c6e569b14d",
		},
		{
			name:      "blake2b",
			algorithm: " blake2b ",
			wantAlg:   DigestBLAKE2b,
			expected:  "8839697d8f959d60aa5e29b2c3e997a5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDigestService(tt.algorithm)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAlg, ds.Algorithm())

			sum := ds.Sum16(body)
			assert.Equal(t, tt.expected, hex.EncodeToString(sum[:]))
		})
	}
}

func TestDigestServiceUnsupported(t *testing.T) {
	_, err := NewDigestService("sha1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sha1")
}

package services

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-fang/internal/cipher"
	"github.com/deploymenttheory/go-fang/internal/types"
)

// createTestFilelistRecord creates a filelist record with the given head fields, tag and body
func createTestFilelistRecord(a, b uint64, tag uint32, body []byte) []byte {
	record := make([]byte, types.FilelistHeaderSize+len(body))
	binary.LittleEndian.PutUint64(record[0:8], a)
	binary.LittleEndian.PutUint64(record[8:16], b)
	binary.BigEndian.PutUint32(record[16:20], uint32(types.SizeFieldFor(len(body))))
	binary.LittleEndian.PutUint32(record[20:24], tag)
	copy(record[32:], body)
	return record
}

func newTestCodec(t *testing.T, algorithm string) *CodecService {
	t.Helper()
	ds, err := NewDigestService(algorithm)
	require.NoError(t, err)
	return NewCodecService(ds)
}

func TestCodecFilelistEndToEnd(t *testing.T) {
	codec := newTestCodec(t, DigestMD5)
	record := createTestFilelistRecord(0x1122334455667788, 0x99AABBCCDDEEFF00, types.FilelistTagEncrypted, make([]byte, 8))
	assert.Equal(t,
		"887766554433221100ffeeddccbbaa99fffffff87834e01d0000000000000000"+"0000000000000000",
		hex.EncodeToString(record))

	result, err := codec.DecryptFilelist(record)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDecrypted, result.Outcome)
	assert.Equal(t, cipher.Seed(0xFFCC6688), result.Seed)
	assert.Equal(t, 8, result.BodySize)
	assert.Equal(t, types.FilelistTagDecrypted, result.Tag)

	assert.Equal(t, "5f5f5f1e16bc7a3f", hex.EncodeToString(record[32:]))
	assert.Equal(t, "887766554433221100ffeeddccbbaa99", hex.EncodeToString(record[:16]), "head is untouched on decrypt")
	assert.Equal(t, []byte{0x87, 0xCB, 0x1F, 0xE2}, record[20:24])

	result, err = codec.EncryptFilelist(record)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEncrypted, result.Outcome)
	assert.Equal(t, cipher.Seed(0xFFCC6688), result.Seed)
	assert.Equal(t, "5ddd318d8b4e17add2eff3c6e569b14d", hex.EncodeToString(result.Digest))

	assert.Equal(t, "5ddd318d8b4e17add2eff3c6e569b14d", hex.EncodeToString(record[:16]))
	assert.Equal(t, "fffffff87834e01d", hex.EncodeToString(record[16:24]))
	assert.Equal(t, make([]byte, 8), record[32:])
}

func TestCodecFilelistBlake2bHead(t *testing.T) {
	codec := newTestCodec(t, DigestBLAKE2b)
	body, err := hex.DecodeString("5f5f5f1e16bc7a3f")
	require.NoError(t, err)
	record := createTestFilelistRecord(0x1122334455667788, 0x99AABBCCDDEEFF00, types.FilelistTagDecrypted, body)

	result, err := codec.EncryptFilelist(record)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEncrypted, result.Outcome)
	assert.Equal(t, "8839697d8f959d60aa5e29b2c3e997a5", hex.EncodeToString(record[:16]))
	assert.Equal(t, make([]byte, 8), record[32:])
}

func TestCodecDecryptFilelistNoOp(t *testing.T) {
	codec := newTestCodec(t, DigestMD5)

	tests := []struct {
		name string
		tag  uint32
	}{
		{name: "already decrypted", tag: types.FilelistTagDecrypted},
		{name: "unknown tag", tag: 0x12345678},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte("plaintext body!!")
			record := createTestFilelistRecord(1, 2, tt.tag, body)
			orig := append([]byte(nil), record...)

			result, err := codec.DecryptFilelist(record)
			require.NoError(t, err)
			assert.Equal(t, OutcomeSkipped, result.Outcome)
			assert.Equal(t, tt.tag, result.Tag)
			assert.Equal(t, orig, record)
		})
	}
}

func TestCodecEncryptFilelistNoOpWhenEncrypted(t *testing.T) {
	codec := newTestCodec(t, DigestMD5)
	record := createTestFilelistRecord(1, 2, types.FilelistTagEncrypted, make([]byte, 16))
	orig := append([]byte(nil), record...)

	result, err := codec.EncryptFilelist(record)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.Equal(t, orig, record)
}

func TestCodecFilelistPreservesTrailingBytes(t *testing.T) {
	codec := newTestCodec(t, DigestMD5)
	record := createTestFilelistRecord(0xAABB, 0xCCDD, types.FilelistTagEncrypted, make([]byte, 16))
	record = append(record, 0xDE, 0xAD, 0xBE, 0xEF)

	_, err := codec.DecryptFilelist(record)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, record[len(record)-4:])
}

func TestCodecFilelistMalformed(t *testing.T) {
	codec := newTestCodec(t, DigestMD5)

	tests := []struct {
		name   string
		record func() []byte
	}{
		{
			name:   "short header",
			record: func() []byte { return make([]byte, 20) },
		},
		{
			name: "size past end",
			record: func() []byte {
				r := createTestFilelistRecord(0, 0, types.FilelistTagEncrypted, make([]byte, 16))
				return r[:len(r)-8]
			},
		},
		{
			name: "unaligned size",
			record: func() []byte {
				return createTestFilelistRecord(0, 0, types.FilelistTagEncrypted, make([]byte, 10))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tt.record()
			orig := append([]byte(nil), record...)

			_, err := codec.DecryptFilelist(record)
			require.Error(t, err)
			assert.True(t, errors.Is(err, cipher.ErrMalformedInput))
			assert.Equal(t, orig, record)
		})
	}

	// Encrypt must not stamp the digest before the framing is validated.
	record := createTestFilelistRecord(0, 0, types.FilelistTagDecrypted, make([]byte, 10))
	orig := append([]byte(nil), record...)
	_, err := codec.EncryptFilelist(record)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cipher.ErrMalformedInput))
	assert.Equal(t, orig, record)
}

func TestCodecScript(t *testing.T) {
	codec := newTestCodec(t, DigestMD5)
	encrypted, err := hex.DecodeString("efcdab8967452301231f1ca3f19fd4806fc94a3dfb1bd4d3")
	require.NoError(t, err)

	payload := append([]byte(nil), encrypted...)
	result, err := codec.DecryptScript(payload)
	require.NoError(t, err)
	assert.Equal(t, types.AssetKindScript, result.Kind)
	assert.Equal(t, OutcomeDecrypted, result.Outcome)
	assert.Equal(t, cipher.Seed(0x0123456789ABCDEF), result.Seed)
	assert.Equal(t, 16, result.BodySize)
	assert.Equal(t, encrypted[:8], payload[:8], "seed prefix is untouched")
	assert.Equal(t, "fang-script-body", string(payload[8:]))

	result, err = codec.EncryptScript(payload)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEncrypted, result.Outcome)
	assert.Equal(t, encrypted, payload)
}

func TestCodecScriptMalformed(t *testing.T) {
	codec := newTestCodec(t, DigestMD5)

	for _, n := range []int{0, 7, 9, 23} {
		payload := make([]byte, n)
		_, err := codec.DecryptScript(payload)
		require.Error(t, err, "length %d", n)
		assert.True(t, errors.Is(err, cipher.ErrMalformedInput))

		_, err = codec.EncryptScript(payload)
		assert.True(t, errors.Is(err, cipher.ErrMalformedInput))
	}
}

func TestCodecVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t, DigestMD5)
	plain, err := hex.DecodeString("5f5f5f1e16bc7a3f")
	require.NoError(t, err)

	require.NoError(t, codec.VerifyRoundTrip(0xFFCC6688, make([]byte, 8), plain))
	require.Error(t, codec.VerifyRoundTrip(0xFFCC6689, make([]byte, 8), plain))
	assert.Equal(t, "5f5f5f1e16bc7a3f", hex.EncodeToString(plain), "plaintext is not modified")
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected types.AssetKind
	}{
		{
			name:     "encrypted filelist",
			data:     createTestFilelistRecord(0, 0, types.FilelistTagEncrypted, nil),
			expected: types.AssetKindFilelist,
		},
		{
			name:     "decrypted filelist",
			data:     createTestFilelistRecord(0, 0, types.FilelistTagDecrypted, nil),
			expected: types.AssetKindFilelist,
		},
		{
			name:     "untagged data",
			data:     make([]byte, 64),
			expected: types.AssetKindScript,
		},
		{
			name:     "shorter than a header",
			data:     make([]byte, 16),
			expected: types.AssetKindScript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectKind(tt.data))
		})
	}
}

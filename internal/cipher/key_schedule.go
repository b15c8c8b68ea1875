package cipher

import (
	"encoding/binary"
	"math/bits"
)

const (
	// ExpandedKeySize is the size in bytes of an expanded key state.
	ExpandedKeySize = 256

	// The last expansion iteration writes one word pair past the key state.
	scheduleScratchSize = ExpandedKeySize + 8

	expansionRounds = 32
)

// ExpandedKey is the 256-byte state derived from a seed. It is addressed as
// 64 little-endian 32-bit words or 32 little-endian 64-bit words over the
// same bytes.
type ExpandedKey [ExpandedKeySize]byte

// Word32 returns the i-th 32-bit word of the key state.
func (k *ExpandedKey) Word32(i int) uint32 {
	return binary.LittleEndian.Uint32(k[i*4:])
}

// Word64 returns the i-th 64-bit word of the key state.
func (k *ExpandedKey) Word64(i int) uint64 {
	return binary.LittleEndian.Uint64(k[i*8:])
}

// keyState is the working buffer the schedule is expanded in.
type keyState [scheduleScratchSize]byte

func (s *keyState) word32(i int) uint32 {
	return binary.LittleEndian.Uint32(s[i*4:])
}

func (s *keyState) putWord32(i int, v uint32) {
	binary.LittleEndian.PutUint32(s[i*4:], v)
}

func (s *keyState) word64(i int) uint64 {
	return binary.LittleEndian.Uint64(s[i*8:])
}

// ExpandKey expands seed into a fresh key state.
func ExpandKey(seed Seed) *ExpandedKey {
	var state keyState

	loSeed := uint32(seed)
	hiSeed := uint32(seed >> 32)
	state.putWord32(0, bits.RotateLeft32(bits.ReverseBytes32(loSeed), -16))
	state.putWord32(1, bits.RotateLeft32(bits.ReverseBytes32(hiSeed), 8))

	mixSeedBytes(&state)
	expandWords(&state)

	key := new(ExpandedKey)
	copy(key[:], state[:ExpandedKeySize])
	return key
}

// mixSeedBytes chains bytes 0..7; each step reads the byte updated just before it.
func mixSeedBytes(state *keyState) {
	state[0] += 0x45
	for i := 1; i < 8; i++ {
		tmp := state[i-1] - 0x2C + state[i]
		state[i] = tmp ^ (state[i-1] << 2) ^ 0x45
	}
}

// expandWords fills words 2..65 in pairs from the words written before them.
func expandWords(state *keyState) {
	kidx := 2
	for i := 0; i < expansionRounds; i++ {
		a := 5 * state.word64(kidx/2-1)
		a ^= uint64(state.word32(kidx-1)) << 32
		state.putWord32(kidx, state.word32(kidx-2)^uint32(a))
		state.putWord32(kidx+1, uint32(a>>32))
		a = uint64(state.word32(kidx-2)) | (a & 0xFFFFFFFF00000000)

		b := state.word32(kidx)
		kidx += 2
		state.putWord32(kidx-2, uint32(a)^b)
		state.putWord32(kidx-1, state.word32(kidx-1)^state.word32(kidx-3))
	}
}

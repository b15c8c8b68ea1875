package cipher

import (
	"encoding/binary"
	"fmt"
)

// BlockSize is the size in bytes of one cipher block.
const BlockSize = 8

const (
	roundXorSeed   = 0x45
	roundDecBias   = 0x78
	roundEncBias   = 0x88 // -roundDecBias mod 256
	roundKeyBytes  = 8
	finalKeyOffset = 0xA1652347
	keyWords64     = ExpandedKeySize / 8
)

// Decrypt decrypts buf in place. len(buf) must be a multiple of BlockSize.
func Decrypt(key *ExpandedKey, buf []byte) error {
	if err := checkAligned(buf); err != nil {
		return err
	}

	for blk := 0; blk < len(buf)/BlockSize; blk++ {
		block := buf[blk*BlockSize : (blk+1)*BlockSize]
		decryptRound(key, block, uint32(blk))
		decryptFinal(key, block, uint32(blk))
	}
	return nil
}

// Encrypt encrypts buf in place. It is the inverse of Decrypt for the same key.
func Encrypt(key *ExpandedKey, buf []byte) error {
	if err := checkAligned(buf); err != nil {
		return err
	}

	for blk := 0; blk < len(buf)/BlockSize; blk++ {
		block := buf[blk*BlockSize : (blk+1)*BlockSize]
		encryptFinal(key, block, uint32(blk))
		encryptRound(key, block, uint32(blk))
	}
	return nil
}

func checkAligned(buf []byte) error {
	if len(buf)%BlockSize != 0 {
		return fmt.Errorf("%w: buffer length %d is not a multiple of %d", ErrMalformedInput, len(buf), BlockSize)
	}
	return nil
}

// roundKey returns the i-th key byte used by the round of block blk.
func roundKey(key *ExpandedKey, blk uint32, i int) byte {
	return key[(int(blk)*BlockSize+i)%ExpandedKeySize]
}

// decryptRound undoes the byte chaining of one block. Each output byte is
// keyed by the ciphertext byte before it.
func decryptRound(key *ExpandedKey, block []byte, blk uint32) {
	xorState := byte(roundXorSeed) ^ byte(blk)
	for offset := 0; offset < BlockSize; offset++ {
		tmp := xorState ^ block[offset]
		xorState = block[offset]
		block[offset] = tmp

		for i := 0; i < roundKeyBytes; i++ {
			block[offset] = roundDecBias + block[offset] - roundKey(key, blk, i)
		}
	}
}

func encryptRound(key *ExpandedKey, block []byte, blk uint32) {
	xorState := byte(roundXorSeed) ^ byte(blk)
	for offset := 0; offset < BlockSize; offset++ {
		for i := 0; i < roundKeyBytes; i++ {
			block[offset] = roundEncBias + (block[offset] + roundKey(key, blk, i))
		}

		xorState ^= block[offset]
		block[offset] = xorState
	}
}

// blockKey is the per-block constant mixed in by the final step.
func blockKey(blk uint32) uint64 {
	index := blk * BlockSize
	state := uint64(blk) << 23
	return (state | uint64(index<<10) | uint64(index) | uint64(blk)<<33) + finalKeyOffset
}

func decryptFinal(key *ExpandedKey, block []byte, blk uint32) {
	ekey := key.Word64(int(blk) % keyWords64)
	v := binary.LittleEndian.Uint64(block)
	v = ekey ^ blockKey(blk) ^ (v - ekey)
	swapHalves(block, v)
}

func encryptFinal(key *ExpandedKey, block []byte, blk uint32) {
	ekey := key.Word64(int(blk) % keyWords64)
	lo := binary.LittleEndian.Uint32(block[0:4])
	hi := binary.LittleEndian.Uint32(block[4:8])
	v := uint64(hi) | uint64(lo)<<32
	v = (ekey ^ blockKey(blk) ^ v) + ekey
	binary.LittleEndian.PutUint64(block, v)
}

// swapHalves stores v into block with its two 32-bit halves exchanged.
func swapHalves(block []byte, v uint64) {
	binary.LittleEndian.PutUint32(block[0:4], uint32(v>>32))
	binary.LittleEndian.PutUint32(block[4:8], uint32(v))
}

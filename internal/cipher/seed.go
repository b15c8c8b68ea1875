package cipher

import "encoding/binary"

// Seed is the 64-bit value a key schedule is expanded from.
type Seed uint64

// FilelistSeed derives the seed of a filelist container from the 16 bytes
// holding its A and B header fields.
func FilelistSeed(head [16]byte) Seed {
	return Seed(uint64(head[9])<<24 | uint64(head[12])<<16 | uint64(head[2])<<8 | uint64(head[0]))
}

// FilelistSeedFromFields derives the seed from the decoded little-endian A and B fields.
func FilelistSeedFromFields(a, b uint64) Seed {
	var head [16]byte
	binary.LittleEndian.PutUint64(head[0:8], a)
	binary.LittleEndian.PutUint64(head[8:16], b)
	return FilelistSeed(head)
}

// ScriptSeed returns the literal seed stored in a script payload prefix.
func ScriptSeed(prefix [8]byte) Seed {
	return Seed(binary.LittleEndian.Uint64(prefix[:]))
}

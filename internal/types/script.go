package types

// Script payloads
// A script payload is an 8-byte literal seed followed by the body.

const (
	// ScriptSeedSize is the size of the literal seed prefix.
	ScriptSeedSize = 8
)

// AssetKind identifies which framing an asset uses.
type AssetKind string

const (
	AssetKindAuto     AssetKind = "auto"
	AssetKindFilelist AssetKind = "filelist"
	AssetKindScript   AssetKind = "script"
)

// Valid reports whether k is a known asset kind.
func (k AssetKind) Valid() bool {
	switch k {
	case AssetKindAuto, AssetKindFilelist, AssetKindScript:
		return true
	}
	return false
}

package script

import (
	"fmt"

	"github.com/deploymenttheory/go-fang/internal/cipher"
	"github.com/deploymenttheory/go-fang/internal/interfaces"
	"github.com/deploymenttheory/go-fang/internal/types"
)

// scriptPayloadReader implements the ScriptPayloadReader interface
type scriptPayloadReader struct {
	seed cipher.Seed
	body []byte
}

// NewScriptPayloadReader creates a new ScriptPayloadReader. The payload must
// hold the seed prefix and a block aligned body.
func NewScriptPayloadReader(data []byte) (interfaces.ScriptPayloadReader, error) {
	if len(data) < types.ScriptSeedSize {
		return nil, fmt.Errorf("%w: data too small for script seed: %d bytes", cipher.ErrMalformedInput, len(data))
	}

	body := data[types.ScriptSeedSize:]
	if len(body)%cipher.BlockSize != 0 {
		return nil, fmt.Errorf("%w: script body length %d is not a multiple of %d", cipher.ErrMalformedInput, len(body), cipher.BlockSize)
	}

	var prefix [types.ScriptSeedSize]byte
	copy(prefix[:], data[:types.ScriptSeedSize])

	return &scriptPayloadReader{
		seed: cipher.ScriptSeed(prefix),
		body: body,
	}, nil
}

// Seed returns the literal seed stored in the prefix
func (spr *scriptPayloadReader) Seed() cipher.Seed {
	return spr.seed
}

// Body returns the bytes following the seed prefix
func (spr *scriptPayloadReader) Body() []byte {
	return spr.body
}

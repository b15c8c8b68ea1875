package services

import (
	"bytes"
	"fmt"

	"github.com/deploymenttheory/go-fang/internal/cipher"
	"github.com/deploymenttheory/go-fang/internal/interfaces"
	"github.com/deploymenttheory/go-fang/internal/parsers/filelist"
	"github.com/deploymenttheory/go-fang/internal/parsers/script"
	"github.com/deploymenttheory/go-fang/internal/types"
)

// Outcome describes what a codec call did to its buffer
type Outcome string

const (
	OutcomeDecrypted Outcome = "decrypted"
	OutcomeEncrypted Outcome = "encrypted"
	OutcomeSkipped   Outcome = "skipped"
)

// CodecResult reports the framing details of a processed asset
type CodecResult struct {
	Kind     types.AssetKind
	Outcome  Outcome
	Seed     cipher.Seed
	BodySize int
	Tag      uint32
	Digest   []byte
}

// CodecService frames the block cipher for filelist containers and script payloads.
// All operations transform the caller's buffer in place and expand a fresh key per call.
type CodecService struct {
	digester interfaces.Digester
}

// NewCodecService creates a codec that stamps encrypted filelists with digester
func NewCodecService(digester interfaces.Digester) *CodecService {
	return &CodecService{digester: digester}
}

// DecryptFilelist decrypts the body of a filelist record in place and marks it decrypted.
// A record that is not tagged encrypted is left untouched.
func (cs *CodecService) DecryptFilelist(record []byte) (*CodecResult, error) {
	reader, err := filelist.NewFilelistHeaderReader(record)
	if err != nil {
		return nil, err
	}

	result := &CodecResult{
		Kind:     types.AssetKindFilelist,
		Outcome:  OutcomeSkipped,
		Seed:     reader.Seed(),
		BodySize: reader.Size(),
		Tag:      reader.Tag(),
	}
	if !reader.IsEncrypted() {
		return result, nil
	}

	body, err := reader.Body()
	if err != nil {
		return nil, err
	}

	key := cipher.ExpandKey(result.Seed)
	if err := cipher.Decrypt(key, body); err != nil {
		return nil, fmt.Errorf("failed to decrypt filelist body: %w", err)
	}
	if err := filelist.PutTag(record, types.FilelistTagDecrypted); err != nil {
		return nil, err
	}

	result.Outcome = OutcomeDecrypted
	result.Tag = types.FilelistTagDecrypted
	return result, nil
}

// EncryptFilelist encrypts the body of a filelist record in place. The key is
// derived from the current A and B fields, which are then replaced by the
// digest of the plaintext body. A record already tagged encrypted is left untouched.
func (cs *CodecService) EncryptFilelist(record []byte) (*CodecResult, error) {
	reader, err := filelist.NewFilelistHeaderReader(record)
	if err != nil {
		return nil, err
	}

	result := &CodecResult{
		Kind:     types.AssetKindFilelist,
		Outcome:  OutcomeSkipped,
		Seed:     reader.Seed(),
		BodySize: reader.Size(),
		Tag:      reader.Tag(),
	}
	if reader.IsEncrypted() {
		return result, nil
	}

	body, err := reader.Body()
	if err != nil {
		return nil, err
	}

	digest := cs.digester.Sum16(body)
	key := cipher.ExpandKey(result.Seed)

	copy(record[:types.FilelistHeadSize], digest[:])
	if err := cipher.Encrypt(key, body); err != nil {
		return nil, fmt.Errorf("failed to encrypt filelist body: %w", err)
	}
	if err := filelist.PutTag(record, types.FilelistTagEncrypted); err != nil {
		return nil, err
	}

	result.Outcome = OutcomeEncrypted
	result.Tag = types.FilelistTagEncrypted
	result.Digest = digest[:]
	return result, nil
}

// DecryptScript decrypts the body of a seed-prefixed script payload in place
func (cs *CodecService) DecryptScript(payload []byte) (*CodecResult, error) {
	return cs.transformScript(payload, cipher.Decrypt, OutcomeDecrypted)
}

// EncryptScript encrypts the body of a seed-prefixed script payload in place
func (cs *CodecService) EncryptScript(payload []byte) (*CodecResult, error) {
	return cs.transformScript(payload, cipher.Encrypt, OutcomeEncrypted)
}

func (cs *CodecService) transformScript(payload []byte, transform func(*cipher.ExpandedKey, []byte) error, outcome Outcome) (*CodecResult, error) {
	reader, err := script.NewScriptPayloadReader(payload)
	if err != nil {
		return nil, err
	}

	key := cipher.ExpandKey(reader.Seed())
	if err := transform(key, reader.Body()); err != nil {
		return nil, fmt.Errorf("failed to %s script body: %w", verbFor(outcome), err)
	}

	return &CodecResult{
		Kind:     types.AssetKindScript,
		Outcome:  outcome,
		Seed:     reader.Seed(),
		BodySize: len(reader.Body()),
	}, nil
}

// VerifyRoundTrip re-encrypts a copy of plaintext with seed and checks that
// it reproduces ciphertext
func (cs *CodecService) VerifyRoundTrip(seed cipher.Seed, ciphertext, plaintext []byte) error {
	buf := append([]byte(nil), plaintext...)
	if err := cipher.Encrypt(cipher.ExpandKey(seed), buf); err != nil {
		return fmt.Errorf("failed to re-encrypt body: %w", err)
	}
	if !bytes.Equal(buf, ciphertext) {
		return fmt.Errorf("re-encrypted body does not match the original ciphertext")
	}
	return nil
}

// DetectKind reports whether data looks like a filelist container. Anything
// without a filelist tag is treated as a script payload.
func DetectKind(data []byte) types.AssetKind {
	header, err := filelist.ParseFilelistHeader(data)
	if err != nil {
		return types.AssetKindScript
	}
	if header.IsEncrypted() || header.IsDecrypted() {
		return types.AssetKindFilelist
	}
	return types.AssetKindScript
}

func verbFor(outcome Outcome) string {
	if outcome == OutcomeEncrypted {
		return "encrypt"
	}
	return "decrypt"
}

// Package cipher implements the asset obfuscation cipher: seed extraction,
// the 256-byte key schedule and the in-place 8-byte block transform.
//
// The transform is bit-exact with the deployed engine. It is obfuscation,
// not cryptography.
package cipher

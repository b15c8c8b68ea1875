package cipher

import "errors"

// ErrMalformedInput is returned when a buffer or frame violates the layout
// the cipher requires. No bytes are transformed when it is returned.
var ErrMalformedInput = errors.New("malformed input")

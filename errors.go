package maxigo

import "errors"

var (
	// ErrNotFound is returned when no symbol region could be established in
	// the image.
	ErrNotFound = errors.New("maxicode not found")

	// ErrChecksum is returned when Reed-Solomon correction of a codeword block
	// exceeds the block's correction capacity.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a symbol parses geometrically but does not
	// conform to a known payload layout.
	ErrFormat = errors.New("format error")
)

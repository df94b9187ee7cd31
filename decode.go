package maxigo

import "github.com/ericlevine/maxigo/bitutil"

// DecodeOptions configures decoding behavior.
type DecodeOptions struct {
	// PureBarcode hints that the image contains only the symbol with a clean
	// margin and no rotation. MaxiCode is read this way unless a Detector is
	// configured.
	PureBarcode bool

	// Detector locates and samples the symbol when the image is not pure.
	// It is consulted only when PureBarcode is false.
	Detector Detector

	// AlsoInverted retries on the inverted image when the first attempt
	// fails.
	AlsoInverted bool
}

// Reader decodes symbols from a BinaryBitmap.
type Reader interface {
	// Decode attempts to decode a symbol from the image.
	Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error)

	// Reset resets any internal state.
	Reset()
}

// Detector finds a symbol in a binarized image and samples it into the
// canonical module grid.
type Detector interface {
	Detect(image *bitutil.BitMatrix) (*DetectorResult, error)
}

// DetectorResult is a sampled module grid together with the image points
// that located it.
type DetectorResult struct {
	Bits   *bitutil.BitMatrix
	Points []ResultPoint
}

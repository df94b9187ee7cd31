// Package maxigo decodes MaxiCode symbols, the fixed-size hexagonal
// two-dimensional barcode used on parcel labels.
//
// The root package holds the types shared by every stage: the binary image
// abstraction, decode options, results and the error kinds. Package
// maxicode implements the reader itself.
package maxigo

import (
	"time"

	"github.com/ericlevine/maxigo/bitutil"
)

// ResultMetadataKey identifies a type of metadata about a decode result.
type ResultMetadataKey int

const (
	MetadataOther ResultMetadataKey = iota
	MetadataErrorCorrectionLevel
	MetadataErrorsCorrected
	MetadataPostalCode
	MetadataCountryCode
	MetadataServiceClass
)

// String returns the name of the metadata key.
func (k ResultMetadataKey) String() string {
	switch k {
	case MetadataErrorCorrectionLevel:
		return "ERROR_CORRECTION_LEVEL"
	case MetadataErrorsCorrected:
		return "ERRORS_CORRECTED"
	case MetadataPostalCode:
		return "POSTAL_CODE"
	case MetadataCountryCode:
		return "COUNTRY_CODE"
	case MetadataServiceClass:
		return "SERVICE_CLASS"
	default:
		return "OTHER"
	}
}

// ResultPoint represents a point of interest in an image.
type ResultPoint struct {
	X, Y float64
}

// Result encapsulates the result of decoding a symbol.
type Result struct {
	Text      string
	RawBytes  []byte
	NumBits   int
	Points    []ResultPoint
	Metadata  map[ResultMetadataKey]interface{}
	Timestamp time.Time
}

// NewResult creates a new Result with the given text, raw bytes and points.
func NewResult(text string, rawBytes []byte, points []ResultPoint) *Result {
	return &Result{
		Text:      text,
		RawBytes:  rawBytes,
		NumBits:   8 * len(rawBytes),
		Points:    points,
		Metadata:  make(map[ResultMetadataKey]interface{}),
		Timestamp: time.Now(),
	}
}

// PutMetadata adds a metadata key/value pair.
func (r *Result) PutMetadata(key ResultMetadataKey, value interface{}) {
	r.Metadata[key] = value
}

// MetadataString returns the metadata value for key if it is a string.
func (r *Result) MetadataString(key ResultMetadataKey) (string, bool) {
	s, ok := r.Metadata[key].(string)
	return s, ok
}

// BinaryBitmap represents a bitmap of binary (black/white) values.
type BinaryBitmap struct {
	binarizer Binarizer
	matrix    *bitutil.BitMatrix
}

// NewBinaryBitmap creates a new BinaryBitmap from the given Binarizer.
func NewBinaryBitmap(binarizer Binarizer) *BinaryBitmap {
	return &BinaryBitmap{binarizer: binarizer}
}

// Width returns the width of the bitmap.
func (b *BinaryBitmap) Width() int {
	return b.binarizer.Width()
}

// Height returns the height of the bitmap.
func (b *BinaryBitmap) Height() int {
	return b.binarizer.Height()
}

// BlackMatrix returns the 2D matrix of black/white values. The matrix is
// computed once and cached; callers must not modify it.
func (b *BinaryBitmap) BlackMatrix() (*bitutil.BitMatrix, error) {
	if b.matrix != nil {
		return b.matrix, nil
	}
	m, err := b.binarizer.BlackMatrix()
	if err != nil {
		return nil, err
	}
	b.matrix = m
	return m, nil
}

// Package maxicode reads MaxiCode symbols from binarized images.
package maxicode

import (
	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/bitutil"
	"github.com/ericlevine/maxigo/maxicode/decoder"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'maxicode'
func tracer() tracing.Trace {
	return tracing.Select("maxicode")
}

// Reader decodes MaxiCode symbols. Symbols are extracted as pure barcodes
// unless DecodeOptions names a Detector.
type Reader struct {
	decoder *decoder.Decoder
}

// NewReader creates a new MaxiCode Reader.
func NewReader() *Reader {
	return &Reader{decoder: decoder.NewDecoder()}
}

// Decode locates and decodes a symbol in image. With AlsoInverted set, a
// failed attempt is repeated on a negative of the image; the error of the
// first attempt is reported if both fail.
func (r *Reader) Decode(image *maxigo.BinaryBitmap, opts *maxigo.DecodeOptions) (*maxigo.Result, error) {
	if opts == nil {
		opts = &maxigo.DecodeOptions{}
	}
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}
	result, err := r.decodeImage(matrix, opts)
	if err == nil || !opts.AlsoInverted {
		return result, err
	}
	tracer().Debugf("retrying inverted after: %v", err)
	inverted := matrix.Clone()
	inverted.FlipAll()
	if result, ierr := r.decodeImage(inverted, opts); ierr == nil {
		return result, nil
	}
	return nil, err
}

func (r *Reader) decodeImage(matrix *bitutil.BitMatrix, opts *maxigo.DecodeOptions) (*maxigo.Result, error) {
	if opts.Detector != nil && !opts.PureBarcode {
		det, err := opts.Detector.Detect(matrix)
		if err != nil {
			return nil, err
		}
		return r.decodeGrid(det.Bits, det.Points)
	}
	grid, err := ExtractGrid(matrix)
	if err != nil {
		return nil, err
	}
	return r.decodeGrid(grid, nil)
}

// DecodeMatrix decodes an already sampled 30x33 module grid.
func (r *Reader) DecodeMatrix(grid *bitutil.BitMatrix) (*maxigo.Result, error) {
	return r.decodeGrid(grid, nil)
}

func (r *Reader) decodeGrid(grid *bitutil.BitMatrix, points []maxigo.ResultPoint) (*maxigo.Result, error) {
	dr, err := r.decoder.Decode(grid)
	if err != nil {
		return nil, err
	}
	result := maxigo.NewResult(dr.Text, dr.RawBytes, points)
	result.PutMetadata(maxigo.MetadataErrorsCorrected, dr.ErrorsCorrected)
	if dr.ECLevel != "" {
		result.PutMetadata(maxigo.MetadataErrorCorrectionLevel, dr.ECLevel)
	}
	if c, ok := dr.Other.(*decoder.Carrier); ok {
		result.PutMetadata(maxigo.MetadataPostalCode, c.PostalCode)
		result.PutMetadata(maxigo.MetadataCountryCode, c.Country)
		result.PutMetadata(maxigo.MetadataServiceClass, c.ServiceClass)
	}
	return result, nil
}

// Reset does nothing; a Reader keeps no state between symbols.
func (r *Reader) Reset() {}

var _ maxigo.Reader = (*Reader)(nil)

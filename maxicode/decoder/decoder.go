package decoder

import (
	"fmt"
	"strconv"

	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/bitutil"
	"github.com/ericlevine/maxigo/internal"
	"github.com/ericlevine/maxigo/reedsolomon"
)

// Decoder decodes sampled MaxiCode grids. It holds no per-symbol state and
// may be shared between goroutines.
type Decoder struct {
	rs *reedsolomon.Decoder
}

// NewDecoder creates a Decoder working over GF(64).
func NewDecoder() *Decoder {
	return &Decoder{rs: reedsolomon.NewDecoder(reedsolomon.MaxiCodeField64)}
}

// Decode reads, corrects and demodulates the codewords of a 30x33 grid.
func (d *Decoder) Decode(grid *bitutil.BitMatrix) (*internal.DecoderResult, error) {
	if grid == nil || grid.Width() != GridWidth || grid.Height() != GridHeight {
		return nil, fmt.Errorf("maxicode: grid is not %dx%d: %w", GridWidth, GridHeight, maxigo.ErrFormat)
	}
	return d.DecodeCodewords(readCodewords(grid))
}

// DecodeCodewords decodes the 144 codewords of a symbol in codeword order.
// The slice is not modified.
func (d *Decoder) DecodeCodewords(codewords []byte) (*internal.DecoderResult, error) {
	if len(codewords) != NumCodewords {
		return nil, fmt.Errorf("maxicode: %d codewords: %w", len(codewords), maxigo.ErrFormat)
	}
	corrected, total, err := correctErrors(d.rs, codewords, primaryBlock)
	if err != nil {
		return nil, err
	}

	mode := int(corrected[0] & 0x0f)
	halves, words, ok := secondaryBlocks(mode)
	if !ok {
		return nil, fmt.Errorf("maxicode: unsupported mode %d: %w", mode, maxigo.ErrFormat)
	}
	for _, b := range halves {
		var n int
		if corrected, n, err = correctErrors(d.rs, corrected, b); err != nil {
			return nil, err
		}
		total += n
	}
	tracer().Debugf("mode %d, %d codewords corrected", mode, total)

	datawords := make([]byte, words)
	copy(datawords, corrected[:primaryBlock.data])
	copy(datawords[primaryBlock.data:], corrected[20:20+words-primaryBlock.data])

	text, carrier, err := decodeBitStream(datawords, mode)
	if err != nil {
		return nil, err
	}
	result := internal.NewDecoderResult(datawords, text, strconv.Itoa(mode))
	result.ErrorsCorrected = total
	if carrier != nil {
		result.Other = carrier
	}
	return result, nil
}

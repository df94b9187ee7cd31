// Package internal holds result types passed between the MaxiCode decoding
// stages.
package internal

// DecoderResult is the outcome of decoding a sampled module grid.
type DecoderResult struct {
	// RawBytes holds the data codewords in reading order, error-corrected,
	// one 6-bit value per byte.
	RawBytes        []byte
	NumBits         int
	Text            string
	ECLevel         string
	ErrorsCorrected int

	// Other carries format-specific details, such as the structured carrier
	// message of modes 2 and 3.
	Other interface{}
}

// NewDecoderResult creates a DecoderResult. NumBits counts eight bits per
// raw byte.
func NewDecoderResult(rawBytes []byte, text, ecLevel string) *DecoderResult {
	return &DecoderResult{
		RawBytes: rawBytes,
		NumBits:  8 * len(rawBytes),
		Text:     text,
		ECLevel:  ecLevel,
	}
}

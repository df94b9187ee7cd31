/*
Package decoder turns a sampled 30x33 MaxiCode module grid into text.

Decoding runs in three steps. The codeword map reads the 144 six-bit
codewords from the grid. Reed-Solomon correction over GF(64) repairs the
primary block (codewords 0-19) and the two interleaved halves of the
secondary block. The bitstream demodulator then walks the corrected data
words through the five MaxiCode character sets, honouring latches, shifts
and locks. For the structured carrier modes 2 and 3 it also extracts the
postal code, country code and service class from the primary message.

	mode 2   numeric postal code, structured carrier message
	mode 3   alphanumeric postal code, structured carrier message
	mode 4   standard symbol, 93 data characters
	mode 5   full error correction, 77 data characters
*/
package decoder

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'maxicode'
func tracer() tracing.Trace {
	return tracing.Select("maxicode")
}

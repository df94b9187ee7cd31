package decoder

import (
	"fmt"

	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/reedsolomon"
)

// interleave selects which codewords of a block form one Reed-Solomon word.
type interleave int

const (
	interleaveAll interleave = iota
	interleaveEven
	interleaveOdd
)

func (m interleave) String() string {
	switch m {
	case interleaveEven:
		return "even"
	case interleaveOdd:
		return "odd"
	}
	return "all"
}

// block is a region of codewords protected by error correction: data data
// codewords followed by ec check codewords, starting at start. In even and
// odd mode only every other codeword takes part, so the Reed-Solomon word
// holds half of each.
type block struct {
	start, data, ec int
	mode            interleave
}

var primaryBlock = block{start: 0, data: 10, ec: 10, mode: interleaveAll}

func (b block) String() string {
	return fmt.Sprintf("%s block %d+%d at %d", b.mode, b.data, b.ec, b.start)
}

func (b block) takesPart(i int) bool {
	return b.mode == interleaveAll || i%2 == int(b.mode)-1
}

func (b block) divisor() int {
	if b.mode == interleaveAll {
		return 1
	}
	return 2
}

// secondaryBlocks returns the two interleaved halves of the secondary
// block and the number of data words the symbol carries for mode.
func secondaryBlocks(mode int) ([2]block, int, bool) {
	var data, ec, words int
	switch mode {
	case 2, 3, 4:
		data, ec, words = 84, 40, 94
	case 5:
		data, ec, words = 68, 56, 78
	default:
		return [2]block{}, 0, false
	}
	return [2]block{
		{start: 20, data: data, ec: ec, mode: interleaveEven},
		{start: 20, data: data, ec: ec, mode: interleaveOdd},
	}, words, true
}

// correctErrors runs Reed-Solomon decoding over the codewords of b. It
// returns a copy of codewords in which the data positions of b carry the
// corrected values. codewords itself is never modified.
func correctErrors(rs *reedsolomon.Decoder, codewords []byte, b block) ([]byte, int, error) {
	total := b.data + b.ec
	if b.start+total > len(codewords) {
		return nil, 0, fmt.Errorf("maxicode: %s exceeds %d codewords: %w", b, len(codewords), maxigo.ErrFormat)
	}
	div := b.divisor()
	word := make([]int, total/div)
	for i := 0; i < total; i++ {
		if b.takesPart(i) {
			word[i/div] = int(codewords[b.start+i])
		}
	}
	n, err := rs.Decode(word, b.ec/div)
	if err != nil {
		return nil, 0, fmt.Errorf("maxicode: %s: %w: %w", b, maxigo.ErrChecksum, err)
	}
	corrected := append([]byte(nil), codewords...)
	for i := 0; i < b.data; i++ {
		if b.takesPart(i) {
			corrected[b.start+i] = byte(word[i/div])
		}
	}
	return corrected, n, nil
}

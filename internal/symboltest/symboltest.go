// Package symboltest builds valid MaxiCode symbols for tests: data words
// from text, Reed-Solomon protected codewords, module grids and rendered
// images.
package symboltest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/ericlevine/maxigo/bitutil"
	"github.com/ericlevine/maxigo/maxicode/decoder"
	"github.com/ericlevine/maxigo/reedsolomon"
)

// Printable parts of code sets A and B, keyed by codeword value.
var (
	setA = map[rune]byte{'\n': 0, '\x1c': 28, '\x1d': 29, '\x1e': 30, ' ': 32}
	setB = map[rune]byte{'`': 0, '\x1c': 28, '\x1d': 29, '\x1e': 30, '{': 32}
)

const (
	padValue   = 33
	latchValue = 63 // latch B in set A, latch A in set B
)

func init() {
	for i := 0; i < 26; i++ {
		setA[rune('A'+i)] = byte(1 + i)
		setB[rune('a'+i)] = byte(1 + i)
	}
	for i, r := range "\"#$%&'()*+,-./0123456789:" {
		setA[r] = byte(34 + i)
	}
	for i, r := range "}~\x7f;<=>?[\\]^_ ,./:@!|" {
		if _, ok := setB[r]; !ok {
			setB[r] = byte(34 + i)
		}
	}
}

// DataLength returns the number of data words of a mode 2-5 symbol.
func DataLength(mode int) int {
	if mode == 5 {
		return 78
	}
	return 94
}

// Datawords encodes text for mode using code sets A and B, latching
// between them as needed, and pads the rest of the message. For modes 2
// and 3 the message starts at data word 10 and the carrier fields are left
// zero. It panics on characters outside sets A and B or on overflow.
func Datawords(mode int, text string) []byte {
	n := DataLength(mode)
	words := make([]byte, n)
	words[0] = byte(mode)
	i := 1
	if mode == 2 || mode == 3 {
		i = 10
	}
	emit := func(v byte) {
		if i >= n {
			panic(fmt.Sprintf("symboltest: %q does not fit a mode %d symbol", text, mode))
		}
		words[i] = v
		i++
	}
	sets := [2]map[rune]byte{setA, setB}
	cur := 0
	for _, r := range text {
		if v, ok := sets[cur][r]; ok {
			emit(v)
			continue
		}
		v, ok := sets[1-cur][r]
		if !ok {
			panic(fmt.Sprintf("symboltest: %q is not in code set A or B", r))
		}
		emit(latchValue)
		cur = 1 - cur
		emit(v)
	}
	for ; i < n; i++ {
		words[i] = padValue
	}
	return words
}

// Carrier bit positions, counted from 1 at the top bit of data word 0.
var (
	countryBits      = []int{53, 54, 43, 44, 45, 46, 47, 48, 37, 38}
	serviceClassBits = []int{55, 56, 57, 58, 59, 60, 49, 50, 51, 52}
	postalLengthBits = []int{39, 40, 41, 42, 31, 32}
	postalBits       = []int{33, 34, 35, 36, 25, 26, 27, 28, 29, 30, 19, 20, 21, 22, 23, 24,
		13, 14, 15, 16, 17, 18, 7, 8, 9, 10, 11, 12, 1, 2}
)

func putBits(words []byte, positions []int, value int) {
	for i, p := range positions {
		p--
		mask := byte(1 << uint(5-p%6))
		if value>>uint(len(positions)-1-i)&1 != 0 {
			words[p/6] |= mask
		} else {
			words[p/6] &^= mask
		}
	}
}

// SetNumericCarrier writes the mode 2 carrier fields into words.
func SetNumericCarrier(words []byte, postal, postalLength, country, service int) {
	putBits(words, postalBits, postal)
	putBits(words, postalLengthBits, postalLength)
	putBits(words, countryBits, country)
	putBits(words, serviceClassBits, service)
}

// SetAlphaCarrier writes the mode 3 carrier fields into words. postal is
// padded with spaces to six characters of code set A.
func SetAlphaCarrier(words []byte, postal string, country, service int) {
	postal += strings.Repeat(" ", 6-len(postal))
	for i, r := range postal {
		v, ok := setA[r]
		if !ok {
			panic(fmt.Sprintf("symboltest: postal code character %q not in code set A", r))
		}
		// The six characters occupy the 36 postal bits in reading order.
		putBits(words, alphaFieldBits(i), int(v))
	}
	putBits(words, countryBits, country)
	putBits(words, serviceClassBits, service)
}

func alphaFieldBits(i int) []int {
	all := append(append([]int(nil), postalLengthBits...), postalBits...)
	return all[6*i : 6*i+6]
}

// Codewords lays out data words as the 144 codewords of a symbol and
// computes the error correction. The mode is taken from data word 0.
func Codewords(datawords []byte) []byte {
	mode := int(datawords[0] & 0x0f)
	data, ec := 84, 40
	if mode == 5 {
		data, ec = 68, 56
	}
	if len(datawords) != 10+data {
		panic(fmt.Sprintf("symboltest: mode %d needs %d data words, got %d", mode, 10+data, len(datawords)))
	}
	enc := reedsolomon.NewEncoder(reedsolomon.MaxiCodeField64)
	cw := make([]byte, decoder.NumCodewords)

	primary := make([]int, 20)
	for i := 0; i < 10; i++ {
		primary[i] = int(datawords[i])
	}
	enc.Encode(primary, 10)
	for i, v := range primary {
		cw[i] = byte(v)
	}

	for parity := 0; parity < 2; parity++ {
		half := make([]int, (data+ec)/2)
		for i := parity; i < data; i += 2 {
			half[i/2] = int(datawords[10+i])
		}
		enc.Encode(half, ec/2)
		for i := parity; i < data+ec; i += 2 {
			cw[20+i] = byte(half[i/2])
		}
	}
	return cw
}

// HiddenErrors returns error values for positions of an n-symbol word
// whose last twoS symbols check it, such that adding them leaves the upper
// twoS/2 syndromes zero. It needs exactly twoS/2+1 distinct positions.
// Such a word has nonzero syndromes yet a constant error locator.
func HiddenErrors(n, twoS int, positions []int) []int {
	f := reedsolomon.MaxiCodeField64
	m := twoS / 2
	if len(positions) != m+1 {
		panic(fmt.Sprintf("symboltest: %d positions, want %d", len(positions), m+1))
	}
	pow := func(x, e int) int {
		r := 1
		for ; e > 0; e-- {
			r = f.Multiply(r, x)
		}
		return r
	}
	locs := make([]int, len(positions))
	for i, p := range positions {
		locs[i] = f.Exp(n - 1 - p)
	}

	// The value at positions[0] is fixed to 1; solve for the others.
	a := make([][]int, m)
	for r := range a {
		e := m + r + f.GeneratorBase()
		a[r] = make([]int, m+1)
		for c := 0; c < m; c++ {
			a[r][c] = pow(locs[c+1], e)
		}
		a[r][m] = pow(locs[0], e)
	}
	for col := 0; col < m; col++ {
		piv := col
		for a[piv][col] == 0 {
			piv++
		}
		a[col], a[piv] = a[piv], a[col]
		inv := f.Inverse(a[col][col])
		for c := col; c <= m; c++ {
			a[col][c] = f.Multiply(a[col][c], inv)
		}
		for r := 0; r < m; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for c := col; c <= m; c++ {
				a[r][c] = reedsolomon.Add(a[r][c], f.Multiply(factor, a[col][c]))
			}
		}
	}
	values := []int{1}
	for r := 0; r < m; r++ {
		values = append(values, a[r][m])
	}
	return values
}

// Grid places codewords on the 30x33 module grid.
func Grid(codewords []byte) *bitutil.BitMatrix {
	grid := bitutil.NewBitMatrix(decoder.GridWidth, decoder.GridHeight)
	for y := 0; y < decoder.GridHeight; y++ {
		for x := 0; x < decoder.GridWidth; x++ {
			bit, ok := decoder.ModuleBit(x, y)
			if ok && codewords[bit/6]&(1<<uint(5-bit%6)) != 0 {
				grid.Set(x, y)
			}
		}
	}
	return grid
}

// Symbol encodes text in a grid of the given mode.
func Symbol(mode int, text string) *bitutil.BitMatrix {
	return Grid(Codewords(Datawords(mode, text)))
}

// Render draws grid with square modules of scale pixels, shifting odd rows
// right by half a module, inside a white margin. The corner modules (0,0),
// (29,0) and (0,32) are always drawn so that the symbol's bounding box
// spans the full grid; error correction absorbs the change.
func Render(grid *bitutil.BitMatrix, scale, margin int) *image.Gray {
	w := decoder.GridWidth*scale + 2*margin
	h := decoder.GridHeight*scale + 2*margin
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	module := func(x, y int) {
		left := margin + x*scale + (y&1)*scale/2
		top := margin + y*scale
		for py := top; py < top+scale; py++ {
			for px := left; px < left+scale; px++ {
				img.SetGray(px, py, color.Gray{})
			}
		}
	}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.Get(x, y) {
				module(x, y)
			}
		}
	}
	module(0, 0)
	module(decoder.GridWidth-1, 0)
	module(0, decoder.GridHeight-1)
	return img
}

// Invert returns a negative of img.
func Invert(img *image.Gray) *image.Gray {
	out := image.NewGray(img.Bounds())
	for i, v := range img.Pix {
		out.Pix[i] = 0xff - v
	}
	return out
}

// PNG encodes img.
func PNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Package bitutil provides the bit containers shared by the binarizers, the
// grid extractor and the codeword reader.
package bitutil

import (
	"math/bits"
	"strings"
)

// BitMatrix represents a 2D matrix of bits.
// x is the column position, y is the row position. The origin is at the top-left.
// Each row is packed into 32-bit words, least significant bit first.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// Rect is an axis-aligned rectangle in matrix coordinates.
type Rect struct {
	Left, Top, Width, Height int
}

// NewBitMatrix creates a new BitMatrix with the given width and height.
func NewBitMatrix(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// ParseStringMatrix creates a BitMatrix from rows of text where each module
// is spelled with setStr or unsetStr. Rows are separated by newlines and must
// all have the same length. It panics on malformed input; it exists for
// fixtures.
func ParseStringMatrix(repr, setStr, unsetStr string) *BitMatrix {
	var rows [][]bool
	for _, line := range strings.FieldsFunc(repr, func(r rune) bool { return r == '\n' || r == '\r' }) {
		var row []bool
		for len(line) > 0 {
			switch {
			case strings.HasPrefix(line, setStr):
				row = append(row, true)
				line = line[len(setStr):]
			case strings.HasPrefix(line, unsetStr):
				row = append(row, false)
				line = line[len(unsetStr):]
			default:
				panic("bitmatrix: illegal character encountered")
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			panic("bitmatrix: row lengths do not match")
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		panic("bitmatrix: empty matrix")
	}
	m := NewBitMatrix(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, set := range row {
			if set {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Get returns true if the bit at (x, y) is set.
func (bm *BitMatrix) Get(x, y int) bool {
	offset := y*bm.rowSize + x/32
	return (bm.data[offset]>>uint(x&0x1f))&1 != 0
}

// Set sets the bit at (x, y).
func (bm *BitMatrix) Set(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] |= 1 << uint(x&0x1f)
}

// Unset clears the bit at (x, y).
func (bm *BitMatrix) Unset(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] &^= 1 << uint(x&0x1f)
}

// Flip flips the bit at (x, y).
func (bm *BitMatrix) Flip(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] ^= 1 << uint(x&0x1f)
}

// FlipAll inverts every module inside the matrix bounds. Padding bits past
// the last column stay clear so EnclosingRectangle is unaffected by them.
func (bm *BitMatrix) FlipAll() {
	tail := uint32(0xFFFFFFFF)
	if r := bm.width % 32; r != 0 {
		tail = 1<<uint(r) - 1
	}
	for y := 0; y < bm.height; y++ {
		row := bm.data[y*bm.rowSize : (y+1)*bm.rowSize]
		for i := range row {
			row[i] = ^row[i]
		}
		row[len(row)-1] &= tail
	}
}

// SetRegion sets a rectangular region of bits.
func (bm *BitMatrix) SetRegion(left, top, width, height int) {
	if top < 0 || left < 0 {
		panic("bitmatrix: left and top must be nonnegative")
	}
	if height < 1 || width < 1 {
		panic("bitmatrix: height and width must be at least 1")
	}
	if top+height > bm.height || left+width > bm.width {
		panic("bitmatrix: region must fit inside the matrix")
	}
	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			bm.Set(x, y)
		}
	}
}

// EnclosingRectangle returns the smallest rectangle containing every set bit.
// ok is false when no bit is set.
func (bm *BitMatrix) EnclosingRectangle() (rect Rect, ok bool) {
	left, top := bm.width, bm.height
	right, bottom := -1, -1

	for y := 0; y < bm.height; y++ {
		for x32 := 0; x32 < bm.rowSize; x32++ {
			word := bm.data[y*bm.rowSize+x32]
			if word == 0 {
				continue
			}
			if y < top {
				top = y
			}
			if y > bottom {
				bottom = y
			}
			if lo := x32*32 + bits.TrailingZeros32(word); lo < left {
				left = lo
			}
			if hi := x32*32 + 31 - bits.LeadingZeros32(word); hi > right {
				right = hi
			}
		}
	}

	if right < left || bottom < top {
		return Rect{}, false
	}
	return Rect{Left: left, Top: top, Width: right - left + 1, Height: bottom - top + 1}, true
}

// Width returns the width.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the height.
func (bm *BitMatrix) Height() int { return bm.height }

// Clone returns a deep copy of the BitMatrix.
func (bm *BitMatrix) Clone() *BitMatrix {
	d := make([]uint32, len(bm.data))
	copy(d, bm.data)
	return &BitMatrix{width: bm.width, height: bm.height, rowSize: bm.rowSize, data: d}
}

// String returns a string representation using "X " for set and "  " for unset.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("X ", "  ")
}

// StringWithChars returns a string representation using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width*len(setString) + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals returns true if two BitMatrices are equal.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if other == nil || bm.width != other.width || bm.height != other.height {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

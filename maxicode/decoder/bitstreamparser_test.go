package decoder

import (
	"errors"
	"testing"

	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/reedsolomon"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// window fills a mode 4 data-word sequence with values from offset 1 and
// pads the rest.
func window(values ...byte) []byte {
	words := make([]byte, 94)
	words[0] = 4
	for i := 1; i < len(words); i++ {
		words[i] = 33
	}
	copy(words[1:], values)
	return words
}

func TestGetMessage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "maxicode")
	defer teardown()

	tests := []struct {
		name   string
		values []byte
		want   string
	}{
		{"plain set A", []byte{1, 2, 3}, "ABC"},
		{"set A line feed", []byte{1, 0, 2}, "A\nB"},
		{"digits and space", []byte{8, 9, 32, 48, 49}, "HI 01"},
		{"shift B for one character", []byte{59, 1, 1}, "aA"},
		{"latch B", []byte{63, 1, 2, 3}, "abc"},
		{"latch B then latch A", []byte{63, 1, 63, 1}, "aA"},
		{"two shift A from B", []byte{63, 56, 1, 2, 1}, "ABa"},
		{"three shift A from B", []byte{63, 57, 1, 2, 3, 1}, "ABCa"},
		{"shift C", []byte{60, 0, 0}, "À\n"},
		{"shift D", []byte{61, 0, 1}, "àA"},
		{"shift E", []byte{62, 13, 1}, "\rA"},
		{"lock C", []byte{60, 60, 0, 1, 58, 1}, "ÀÁA"},
		{"lock D", []byte{61, 61, 0, 1, 58, 1}, "àáA"},
		{"numeric shift", []byte{31, 1, 2}, "17043521B"},
		{"eci", []byte{27, 0, 3}, "0C"},
		{"separators", []byte{28, 29, 30}, "\x1c\x1d\x1e"},
		{"interior pad is kept", []byte{1, 33, 2}, "A\ufffcB"},
		{"empty message", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getMessage(window(tt.values...), 1, 93)
			if got != tt.want {
				t.Errorf("getMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetMessageShiftFromShiftedSet(t *testing.T) {
	// shift D inside shift C returns to C, which then stays selected
	words := []byte{4, 60, 61, 0, 1, 33, 2}
	if got := getMessage(words, 1, 6); got != "àÁÜÂ" {
		t.Errorf("getMessage = %q, want %q", got, "àÁÜÂ")
	}
}

func TestGetMessageNumericShiftAtWindowEnd(t *testing.T) {
	words := []byte{4, 1, 31}
	if got := getMessage(words, 1, 2); got != "A" {
		t.Errorf("getMessage = %q, want %q", got, "A")
	}
}

func TestGetMessageClampsWindow(t *testing.T) {
	words := []byte{4, 1, 2}
	if got := getMessage(words, 1, 93); got != "AB" {
		t.Errorf("getMessage = %q, want %q", got, "AB")
	}
}

func TestGetMessageWindowsPerMode(t *testing.T) {
	words := window(1, 2, 3)
	words[93] = 26 // only inside the mode 4 window
	text, carrier, err := decodeBitStream(words, 4)
	if err != nil {
		t.Fatal(err)
	}
	if carrier != nil {
		t.Error("mode 4 must not report carrier fields")
	}
	if want := "ABC" + string(repeatPad(89)) + "Z"; text != want {
		t.Errorf("mode 4 text = %q, want %q", text, want)
	}

	five := window(1, 2, 3)[:78]
	five[0] = 5
	five[77] = 26
	if text, _, _ = decodeBitStream(five, 5); text != "ABC"+string(repeatPad(73))+"Z" {
		t.Errorf("mode 5 text = %q", text)
	}
}

func repeatPad(n int) []rune {
	r := make([]rune, n)
	for i := range r {
		r[i] = pad
	}
	return r
}

func TestDecodeBitStreamUnknownMode(t *testing.T) {
	for _, mode := range []int{0, 1, 6, 15} {
		if _, _, err := decodeBitStream(window(), mode); !errors.Is(err, maxigo.ErrFormat) {
			t.Errorf("mode %d: err = %v, want ErrFormat", mode, err)
		}
	}
}

func TestCarrierSplice(t *testing.T) {
	c := &Carrier{PostalCode: "123", Country: "840", ServiceClass: "1"}
	fields := "123\x1d840\x1d1\x1d"
	tests := []struct {
		msg, want string
	}{
		{"[)>\x1e01\x1d96XYZ", "[)>\x1e01\x1d96" + fields + "XYZ"},
		{"[)>\x1e01\x1d9", "[)>\x1e01\x1d9" + fields},
		{"[)>\x1e01\x1d", "[)>\x1e01\x1d" + fields},
		{"HELLO", fields + "HELLO"},
		{"", fields},
	}
	for _, tt := range tests {
		if got := c.splice(tt.msg); got != tt.want {
			t.Errorf("splice(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestNumericCarrierFields(t *testing.T) {
	lengthBits := []int{39, 40, 41, 42, 31, 32}
	tests := []struct {
		code, length, country, service int
		want                           Carrier
	}{
		{12345, 7, 76, 3, Carrier{"12345", "76", "3"}},
		{12345, 5, 840, 1, Carrier{"12345", "840", "1"}},
		{0, 10, 0, 0, Carrier{"0", "0", "0"}},
		{100000000, 9, 999, 999, Carrier{"100000000", "999", "999"}},
		{1<<30 - 1, 0, 1023, 1023, Carrier{"1073741823", "1023", "1023"}},
	}
	for _, tt := range tests {
		words := make([]byte, 10)
		words[0] = 2
		setBits(words, numericPostalBits, tt.code)
		setBits(words, lengthBits, tt.length)
		setBits(words, countryBits, tt.country)
		setBits(words, serviceClassBits, tt.service)
		if got := readCarrier(words, 2); *got != tt.want {
			t.Errorf("carrier %d/%d/%d/%d = %+v, want %+v", tt.code, tt.length, tt.country, tt.service, *got, tt.want)
		}
	}
}

func TestReadCarrierFields(t *testing.T) {
	words := make([]byte, 10)
	words[0] = 3
	setBits(words, countryBits, 56)
	setBits(words, serviceClassBits, 999)
	for i, v := range []int{2, 49, 48, 53, 48, 32} { // "B1050 " in set A
		setBits(words, alphaPostalBits[i], v)
	}
	c := readCarrier(words, 3)
	if c.Country != "56" || c.ServiceClass != "999" {
		t.Errorf("country/service = %q/%q", c.Country, c.ServiceClass)
	}
	if c.PostalCode != "B1050 " {
		t.Errorf("postal code = %q", c.PostalCode)
	}
	if words[0]&0x0f != 3 {
		t.Error("carrier bits overlap the mode")
	}
}

func setBits(words []byte, positions []int, value int) {
	for i, p := range positions {
		if value>>uint(len(positions)-1-i)&1 != 0 {
			words[(p-1)/6] |= 1 << uint(5-(p-1)%6)
		}
	}
}

func TestCorrectErrorsLeavesInputAlone(t *testing.T) {
	enc := reedsolomon.NewEncoder(reedsolomon.MaxiCodeField64)
	word := []int{4, 1, 2, 3, 33, 33, 33, 33, 33, 33, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	enc.Encode(word, 10)
	codewords := make([]byte, NumCodewords)
	for i, v := range word {
		codewords[i] = byte(v)
	}
	codewords[2] ^= 0x15
	codewords[15] ^= 0x01
	before := append([]byte(nil), codewords...)

	rs := reedsolomon.NewDecoder(reedsolomon.MaxiCodeField64)
	corrected, n, err := correctErrors(rs, codewords, primaryBlock)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("corrected %d codewords, want 2", n)
	}
	if corrected[2] != 2 {
		t.Errorf("data codeword 2 = %d, want 2", corrected[2])
	}
	if corrected[15] != before[15] {
		t.Error("check codewords must not be written back")
	}
	for i := range before {
		if codewords[i] != before[i] {
			t.Fatalf("input codeword %d modified", i)
		}
	}
}

func TestCorrectErrorsBlockOutOfRange(t *testing.T) {
	rs := reedsolomon.NewDecoder(reedsolomon.MaxiCodeField64)
	_, _, err := correctErrors(rs, make([]byte, 30), block{start: 20, data: 84, ec: 40, mode: interleaveEven})
	if !errors.Is(err, maxigo.ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
}

func TestSecondaryBlocks(t *testing.T) {
	tests := []struct {
		mode, data, ec, words int
		ok                    bool
	}{
		{2, 84, 40, 94, true},
		{3, 84, 40, 94, true},
		{4, 84, 40, 94, true},
		{5, 68, 56, 78, true},
		{6, 0, 0, 0, false},
		{1, 0, 0, 0, false},
	}
	for _, tt := range tests {
		halves, words, ok := secondaryBlocks(tt.mode)
		if ok != tt.ok || words != tt.words {
			t.Errorf("mode %d: words=%d ok=%v", tt.mode, words, ok)
			continue
		}
		if !ok {
			continue
		}
		if halves[0].mode != interleaveEven || halves[1].mode != interleaveOdd {
			t.Errorf("mode %d: halves must be even then odd", tt.mode)
		}
		for _, b := range halves {
			if b.start != 20 || b.data != tt.data || b.ec != tt.ec {
				t.Errorf("mode %d: block %v", tt.mode, b)
			}
		}
	}
}

func TestModuleBit(t *testing.T) {
	if bit, ok := ModuleBit(0, 0); !ok || bit != 121 {
		t.Errorf("ModuleBit(0,0) = %d,%v", bit, ok)
	}
	if _, ok := ModuleBit(29, 1); ok {
		t.Error("odd rows have no module in the last column")
	}
	if _, ok := ModuleBit(30, 0); ok {
		t.Error("column 30 is outside the grid")
	}
	seen := make(map[int]bool)
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			if bit, ok := ModuleBit(x, y); ok {
				if seen[bit] {
					t.Fatalf("bit %d mapped twice", bit)
				}
				seen[bit] = true
			}
		}
	}
	if len(seen) != NumCodewords*6 {
		t.Errorf("%d bits mapped, want %d", len(seen), NumCodewords*6)
	}
}

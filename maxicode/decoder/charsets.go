package decoder

import "fmt"

// Control characters of the MaxiCode character sets. They live in a
// private range of the BMP so that they never collide with decoded text.
const (
	shiftA rune = 0xFFF0 + iota
	shiftB
	shiftC
	shiftD
	shiftE
	twoShiftA
	threeShiftA
	latchA
	latchB
	lockSet
	eci
	numericShift
	pad
)

const (
	fs = '\x1c'
	gs = '\x1d'
	rs = '\x1e'
)

const (
	setA = iota
	setB
	setC
	setD
	setE
)

// charsets holds code sets A through E, each indexed by codeword value.
var charsets = [5][64]rune{
	mustCharset("A", "\nABCDEFGHIJKLMNOPQRSTUVWXYZ"+
		string([]rune{eci, fs, gs, rs, numericShift})+" "+string(pad)+
		"\"#$%&'()*+,-./0123456789:"+
		string([]rune{shiftB, shiftC, shiftD, shiftE, latchB})),
	mustCharset("B", "`abcdefghijklmnopqrstuvwxyz"+
		string([]rune{eci, fs, gs, rs, numericShift})+"{"+string(pad)+
		"}~\x7f;<=>?[\\]^_ ,./:@!|"+
		string([]rune{pad, twoShiftA, threeShiftA, pad, shiftA, shiftC, shiftD, shiftE, latchA})),
	mustCharset("C", "ÀÁÂÃÄÅÆÇÈÉÊËÌÍ"+
		"ÎÏÐÑÒÓÔÕÖ×ØÙÚ"+
		string([]rune{eci, fs, gs, rs, numericShift})+
		"ÛÜÝÞßª¬±²³µ¹º¼½¾"+
		"\u0080\u0081\u0082\u0083\u0084\u0085\u0086\u0087\u0088\u0089"+
		string([]rune{latchA, ' ', lockSet, shiftD, shiftE, latchB})),
	mustCharset("D", "àáâãäåæçèéêëìí"+
		"îïðñòóôõö÷øùú"+
		string([]rune{eci, fs, gs, rs, numericShift})+
		"ûüýþÿ¡¨«¯°´·¸»¿"+
		"\u008a\u008b\u008c\u008d\u008e\u008f\u0090\u0091\u0092\u0093\u0094"+
		string([]rune{latchA, ' ', shiftC, lockSet, shiftE, latchB})),
	mustCharset("E", "\x00\x01\x02\x03\x04\x05\x06\x07\x08\x09\x0a\x0b\x0c\x0d\x0e\x0f"+
		"\x10\x11\x12\x13\x14\x15\x16\x17\x18\x19\x1a"+
		string([]rune{eci, pad, pad, '\x1b', numericShift, fs, gs, rs})+
		"\x1f\u009f\u00a0\u00a2\u00a3\u00a4\u00a5\u00a6\u00a7\u00a9\u00ad\u00ae\u00b6"+
		"\u0095\u0096\u0097\u0098\u0099\u009a\u009b\u009c\u009d\u009e"+
		string([]rune{latchA, ' ', shiftC, shiftD, lockSet, latchB})),
}

func mustCharset(name, s string) [64]rune {
	var set [64]rune
	r := []rune(s)
	if len(r) != len(set) {
		panic(fmt.Sprintf("maxicode: code set %s has %d entries", name, len(r)))
	}
	copy(set[:], r)
	return set
}

// isShift reports whether c switches the set for a limited number of
// characters, returning the target set and the count.
func isShift(c rune) (set, count int, ok bool) {
	switch c {
	case shiftA, shiftB, shiftC, shiftD, shiftE:
		return int(c - shiftA), 1, true
	case twoShiftA:
		return setA, 2, true
	case threeShiftA:
		return setA, 3, true
	}
	return 0, 0, false
}

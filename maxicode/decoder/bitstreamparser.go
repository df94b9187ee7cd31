package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ericlevine/maxigo"
)

// Message windows into the data words, per mode.
const (
	carrierMessageStart  = 10
	carrierMessageLength = 84
	standardMessageStart = 1
	mode4MessageLength   = 93
	mode5MessageLength   = 77
)

// decodeBitStream turns corrected data words into text. For modes 2 and 3
// the carrier fields are returned as well and spliced into the text.
func decodeBitStream(datawords []byte, mode int) (string, *Carrier, error) {
	switch mode {
	case 2, 3:
		if len(datawords) < carrierMessageStart {
			return "", nil, fmt.Errorf("maxicode: %d data words: %w", len(datawords), maxigo.ErrFormat)
		}
		c := readCarrier(datawords, mode)
		msg := getMessage(datawords, carrierMessageStart, carrierMessageLength)
		return c.splice(msg), c, nil
	case 4:
		return getMessage(datawords, standardMessageStart, mode4MessageLength), nil, nil
	case 5:
		return getMessage(datawords, standardMessageStart, mode5MessageLength), nil, nil
	}
	return "", nil, fmt.Errorf("maxicode: mode %d: %w", mode, maxigo.ErrFormat)
}

// codeSetState tracks the active code set. A shift switches to another set
// for the next pending characters and then falls back to prev.
type codeSetState struct {
	set     int
	prev    int
	pending int
}

func (s *codeSetState) shift(to, count int) {
	s.prev = s.set
	s.set = to
	s.pending = count
}

func (s *codeSetState) latch(to int) {
	s.set = to
	s.pending = 0
}

// consumed is called after every character that is not itself a shift.
func (s *codeSetState) consumed() {
	if s.pending == 0 {
		return
	}
	s.pending--
	if s.pending == 0 {
		s.set = s.prev
	}
}

// getMessage decodes length data words starting at start. The window is
// clamped to the data available. Trailing padding is dropped.
func getMessage(datawords []byte, start, length int) string {
	var sb strings.Builder
	var st codeSetState
	end := min(start+length, len(datawords))
	for i := start; i < end; i++ {
		c := charsets[st.set][datawords[i]&0x3f]
		if to, n, ok := isShift(c); ok {
			st.shift(to, n)
			continue
		}
		switch c {
		case latchA:
			st.latch(setA)
		case latchB:
			st.latch(setB)
		case lockSet:
			st.pending = 0
		case numericShift, eci:
			if i+1 < end {
				i++
				sb.WriteString(strconv.Itoa(expandByte(int(datawords[i]))))
			}
		default:
			sb.WriteRune(c)
		}
		st.consumed()
	}
	msg := strings.TrimRight(sb.String(), string(pad))
	tracer().Debugf("message window [%d,%d): %q", start, end, msg)
	return msg
}

// expandByte repeats a six-bit value across a 30-bit number.
func expandByte(b int) int {
	return b<<24 + b<<18 + b<<12 + b<<6 + b
}

package decoder

import (
	"strconv"
	"strings"
)

// Carrier is the structured carrier message of modes 2 and 3, read from
// fixed bit positions of the primary message.
type Carrier struct {
	PostalCode   string
	Country      string
	ServiceClass string
}

// Bit positions count from 1 at the most significant bit of data word 0.
var (
	countryBits       = []int{53, 54, 43, 44, 45, 46, 47, 48, 37, 38}
	serviceClassBits  = []int{55, 56, 57, 58, 59, 60, 49, 50, 51, 52}
	numericPostalBits = []int{
		33, 34, 35, 36, 25, 26, 27, 28, 29, 30,
		19, 20, 21, 22, 23, 24, 13, 14, 15, 16,
		17, 18, 7, 8, 9, 10, 11, 12, 1, 2,
	}
	alphaPostalBits = [6][]int{
		{39, 40, 41, 42, 31, 32},
		{33, 34, 35, 36, 25, 26},
		{27, 28, 29, 30, 19, 20},
		{21, 22, 23, 24, 13, 14},
		{15, 16, 17, 18, 7, 8},
		{9, 10, 11, 12, 1, 2},
	}
)

// structuredHeader opens an ISO 15434 message. When the secondary message
// starts with it, the carrier fields follow the two-digit format version.
const structuredHeader = "[)>" + string(rs) + "01" + string(gs)

const headerInsertAt = 9

func bitAt(datawords []byte, bit int) int {
	bit--
	if datawords[bit/6]&(1<<uint(5-bit%6)) != 0 {
		return 1
	}
	return 0
}

func bitsValue(datawords []byte, bits []int) int {
	v := 0
	for _, b := range bits {
		v = v<<1 | bitAt(datawords, b)
	}
	return v
}

func readCarrier(datawords []byte, mode int) *Carrier {
	c := &Carrier{
		Country:      strconv.Itoa(bitsValue(datawords, countryBits)),
		ServiceClass: strconv.Itoa(bitsValue(datawords, serviceClassBits)),
	}
	if mode == 2 {
		c.PostalCode = numericPostalCode(datawords)
	} else {
		c.PostalCode = alphaPostalCode(datawords)
	}
	return c
}

// numericPostalCode renders the 30-bit mode 2 postal code in decimal. The
// length field in bits 31-32 and 39-42 is not applied: leading zeros of
// the postal code are not restored.
func numericPostalCode(datawords []byte) string {
	return strconv.Itoa(bitsValue(datawords, numericPostalBits))
}

// alphaPostalCode reads the six code set A characters of a mode 3 postal
// code. Trailing spaces are part of the field and are kept.
func alphaPostalCode(datawords []byte) string {
	var sb strings.Builder
	for _, bits := range alphaPostalBits {
		sb.WriteRune(charsets[setA][bitsValue(datawords, bits)])
	}
	return sb.String()
}

func (c *Carrier) fields() string {
	return c.PostalCode + string(gs) + c.Country + string(gs) + c.ServiceClass + string(gs)
}

// splice places the carrier fields into the secondary message: after the
// format version of a structured header, otherwise in front.
func (c *Carrier) splice(msg string) string {
	if !strings.HasPrefix(msg, structuredHeader) {
		return c.fields() + msg
	}
	r := []rune(msg)
	at := min(headerInsertAt, len(r))
	return string(r[:at]) + c.fields() + string(r[at:])
}

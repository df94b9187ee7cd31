package charset

import (
	"fmt"

	"golang.org/x/text/encoding"
)

// Encode transcodes text into the charset named by nameOrValue. Characters
// the charset cannot represent are replaced by its substitution character.
func Encode(text, nameOrValue string) ([]byte, error) {
	eci, err := Lookup(nameOrValue)
	if err != nil {
		return nil, err
	}
	return eci.Encode(text)
}

// Encode transcodes text into the ECI's charset.
func (e *ECI) Encode(text string) ([]byte, error) {
	if e.enc == nil {
		return asciiBytes(text), nil
	}
	out, err := encoding.ReplaceUnsupported(e.enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("charset: encoding to %s: %w", e.Name, err)
	}
	return out, nil
}

// String returns the canonical name.
func (e *ECI) String() string {
	return e.Name
}

func asciiBytes(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if r >= 0x80 {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}

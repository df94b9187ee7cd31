package charset

import (
	"bytes"
	"errors"
	"testing"
)

func TestGetECIByValue(t *testing.T) {
	tests := []struct {
		value int
		want  *ECI
	}{
		{0, ECICp437},
		{2, ECICp437},
		{3, ECIISO8859_1},
		{26, ECIUTF8},
		{170, ECIASCII},
		{14, nil},
	}
	for _, tt := range tests {
		got, err := GetECIByValue(tt.value)
		if err != nil {
			t.Errorf("GetECIByValue(%d): %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("GetECIByValue(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
	for _, v := range []int{-1, 900} {
		if _, err := GetECIByValue(v); !errors.Is(err, ErrFormatECI) {
			t.Errorf("GetECIByValue(%d) err = %v", v, err)
		}
	}
}

func TestGetECIByName(t *testing.T) {
	for name, want := range map[string]*ECI{
		"ISO8859_1":  ECIISO8859_1,
		"iso-8859-1": ECIISO8859_1,
		"Shift_JIS":  ECISJIS,
		"UTF-16BE":   ECIUTF16BE,
		"gbk":        ECIGB18030,
		"EBCDIC":     nil,
	} {
		if got := GetECIByName(name); got != want {
			t.Errorf("GetECIByName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		text, charset string
		want          []byte
	}{
		{"ÀÉ", "ISO-8859-1", []byte{0xc0, 0xc9}},
		{"A€", "ISO8859_1", []byte{'A', 0x1a}},
		{"A€", "Cp1252", []byte{'A', 0x80}},
		{"A", "UTF-16BE", []byte{0x00, 'A'}},
		{"日本", "Shift_JIS", []byte{0x93, 0xfa, 0x96, 0x7b}},
		{"café", "US-ASCII", []byte("caf?")},
		{"café", "26", []byte("café")},
	}
	for _, tt := range tests {
		got, err := Encode(tt.text, tt.charset)
		if err != nil {
			t.Errorf("Encode(%q, %s): %v", tt.text, tt.charset, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Encode(%q, %s) = % x, want % x", tt.text, tt.charset, got, tt.want)
		}
	}
}

func TestEncodeUnknownCharset(t *testing.T) {
	for _, name := range []string{"klingon", "14"} {
		if _, err := Encode("x", name); !errors.Is(err, ErrUnknownCharset) {
			t.Errorf("Encode(_, %q) err = %v, want ErrUnknownCharset", name, err)
		}
	}
	if _, err := Encode("x", "1000"); !errors.Is(err, ErrFormatECI) {
		t.Errorf("err = %v, want ErrFormatECI", err)
	}
}

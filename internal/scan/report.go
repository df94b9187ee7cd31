package scan

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/charset"
)

// Report is the JSON view of a decoded symbol.
type Report struct {
	Path            string `json:"path,omitempty"`
	Text            string `json:"text"`
	ECLevel         string `json:"ec_level"`
	ErrorsCorrected int    `json:"errors_corrected"`
	RawBytes        string `json:"raw_bytes"`
	PostalCode      string `json:"postal_code,omitempty"`
	Country         string `json:"country,omitempty"`
	ServiceClass    string `json:"service_class,omitempty"`
	Charset         string `json:"charset,omitempty"`
	Encoded         string `json:"encoded,omitempty"`
}

// NewReport builds the report for result. When charsetName is not empty
// the text is also transcoded into that charset and included base64
// encoded.
func NewReport(path string, result *maxigo.Result, charsetName string) (Report, error) {
	r := Report{
		Path:     path,
		Text:     result.Text,
		RawBytes: hex.EncodeToString(result.RawBytes),
	}
	r.ECLevel, _ = result.MetadataString(maxigo.MetadataErrorCorrectionLevel)
	r.ErrorsCorrected, _ = result.Metadata[maxigo.MetadataErrorsCorrected].(int)
	r.PostalCode, _ = result.MetadataString(maxigo.MetadataPostalCode)
	r.Country, _ = result.MetadataString(maxigo.MetadataCountryCode)
	r.ServiceClass, _ = result.MetadataString(maxigo.MetadataServiceClass)

	if charsetName == "" {
		return r, nil
	}
	eci, err := charset.Lookup(charsetName)
	if err != nil {
		return Report{}, err
	}
	encoded, err := eci.Encode(result.Text)
	if err != nil {
		return Report{}, err
	}
	r.Charset = eci.Name
	r.Encoded = base64.StdEncoding.EncodeToString(encoded)
	return r, nil
}

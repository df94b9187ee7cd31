package webapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ericlevine/maxigo"
	"github.com/ericlevine/maxigo/charset"
	"github.com/ericlevine/maxigo/internal/scan"
	"github.com/npillmayer/schuko/tracing"
)

// MaxImageSize bounds the request body of the decode endpoint.
const MaxImageSize = 16 << 20

// tracer writes to trace with key 'maxiscan'
func tracer() tracing.Trace {
	return tracing.Select("maxiscan")
}

type decodeHandler struct {
	scanner *scan.Scanner
}

// NewDecodeHandler returns the handler which decodes the image sent as the
// request body and responds with its scan.Report. The optional "charset"
// query parameter selects a charset for the report's encoded text and
// defaults to the scanner's.
func NewDecodeHandler(s *scan.Scanner) http.Handler {
	return &decodeHandler{scanner: s}
}

func (h *decodeHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	cs := req.URL.Query().Get("charset")
	if cs == "" {
		cs = h.scanner.Config().Charset
	}
	if cs != "" {
		if _, err := charset.Lookup(cs); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	if req.ContentLength > MaxImageSize {
		writeError(w, http.StatusRequestEntityTooLarge, &http.MaxBytesError{Limit: MaxImageSize})
		return
	}
	body := http.MaxBytesReader(w, req.Body, MaxImageSize)
	result, err := h.scanner.DecodeImage(body)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	report, err := scan.NewReport("", result, cs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, scan.ErrImage):
		return http.StatusBadRequest
	case errors.Is(err, maxigo.ErrNotFound),
		errors.Is(err, maxigo.ErrChecksum),
		errors.Is(err, maxigo.ErrFormat):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	tracer().Infof("decode request: %d %v", status, err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		tracer().Errorf("writing response: %v", err)
	}
}

// Package webapi serves the scanner over HTTP.
package webapi

import (
	"net/http"

	"github.com/ericlevine/maxigo/internal/scan"
	"github.com/gorilla/mux"
)

// The following are URL Path endpoints of the API.
const (
	APIv1EndpointDecode = "/v1/decode"
	APIv1EndpointAbout  = "/v1/about"
)

// APIv1Methods defines on which HTTP methods APIv1 endpoints will respond to.
var APIv1Methods = map[string][]string{
	APIv1EndpointDecode: {http.MethodPost},
	APIv1EndpointAbout:  {http.MethodGet},
}

// NewRouter returns the API handler. Images posted to the decode endpoint
// are scanned with s.
func NewRouter(s *scan.Scanner, version string) http.Handler {
	handlers := map[string]http.Handler{
		APIv1EndpointDecode: NewDecodeHandler(s),
		APIv1EndpointAbout:  NewAboutHandler(version),
	}
	router := mux.NewRouter()
	for endpoint, h := range handlers {
		router.Handle(endpoint, h).Methods(APIv1Methods[endpoint]...)
	}
	return router
}

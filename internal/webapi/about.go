package webapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type aboutHandler struct {
	resp aboutResponse
}

// NewAboutHandler returns the handler which shows a JSON with information
// about the server.
func NewAboutHandler(version string) http.Handler {
	return &aboutHandler{resp: aboutResponse{ServerVersion: version}}
}

func (h *aboutHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(h.resp); err != nil {
		w.Header().Set("Content-Type", "plain/text; charset=utf-8")
		http.Error(w, fmt.Sprintf("Failed to encode JSON response: %s", err), http.StatusInternalServerError)
	}
}

type aboutResponse struct {
	ServerVersion string `json:"server_version"`
}

// Package handler implements the HTTP surface: one generation endpoint per
// illustration family, plus capabilities and health.
package handler

import (
	"encoding/json"
	"net/http"
)

// errorBody is the structured error envelope. Kind is machine-readable;
// Detail is for humans. Stack traces never leave the process.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// writeJSON encodes without HTML escaping so the html payload keeps its
// literal <strong> and <br> tags instead of < sequences.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body)
}

func writeError(w http.ResponseWriter, status int, kind, detail string) {
	writeJSON(w, status, errorBody{Error: kind, Detail: detail})
}

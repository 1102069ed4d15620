package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the only error shape the backend answers with.
type ErrorBody struct {
	Error string `json:"error"`
}

// Empty encodes as {} for endpoints that succeed without a payload.
type Empty struct{}

// WriteJSON writes v as application/json with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg}.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, ErrorBody{Error: msg})
}

// NoCache marks the response as not storable; most bodies carry credentials.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

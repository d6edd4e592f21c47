// Package httpjson has the small helpers every JSON handler in this app
// shares: response writing, error bodies, and request decoding.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. Forum posts and tissue records can
// carry base64 images, so the cap is generous.
const maxBodyBytes = 16 << 20 // 16 MiB

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard error body {"message": …}.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, map[string]string{"message": message})
}

// Decode reads the request body into dst, enforcing the size cap.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

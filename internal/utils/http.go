package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteBody writes body with the given content type and status code. When
// hasher is enabled the body digest is sent in [ContentHMACHeader] so the
// client can verify it.
func WriteBody(w http.ResponseWriter, body []byte, contentType string, statusCode int, hasher *Hasher) (int, error) {
	w.Header().Set("Content-Type", contentType)
	if hasher.Enabled() {
		w.Header().Set(ContentHMACHeader, hasher.Sum(body))
	}
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// WriteJSON serializes data to JSON and writes it through WriteBody.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	utils.WriteJSON(w, entries, http.StatusOK, hasher)
func WriteJSON(w http.ResponseWriter, data any, statusCode int, hasher *Hasher) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	return WriteBody(w, jsonData, "application/json", statusCode, hasher)
}

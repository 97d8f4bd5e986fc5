package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/keychain-vault/models"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := []models.FileInfo{{Name: "contents.js"}, {Name: "history", IsDir: true}}

	n, err := WriteJSON(w, data, http.StatusOK, nil)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}
	if h := w.Header().Get(ContentHMACHeader); h != "" {
		t.Errorf("expected no digest header without hasher, got %q", h)
	}

	expected, _ := json.Marshal(data)
	if w.Body.String() != string(expected) {
		t.Errorf("expected body %s, got %s", expected, w.Body.String())
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK, nil)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteBody_SetsDigest(t *testing.T) {
	w := httptest.NewRecorder()
	h := NewHasher(testHashKey)
	body := []byte("encrypted item bytes")

	_, err := WriteBody(w, body, "application/octet-stream", http.StatusOK, h)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got := w.Header().Get(ContentHMACHeader); got != h.Sum(body) {
		t.Errorf("expected digest %s, got %s", h.Sum(body), got)
	}
	if w.Body.String() != string(body) {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

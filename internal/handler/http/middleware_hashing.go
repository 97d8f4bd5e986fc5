package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/utils"
)

// checkHashing verifies the body digest of an upload against
// utils.ContentHMACHeader. It is a no-op when hashing is disabled.
func (h *Handler) checkHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.hasher.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFileSize))
		if err != nil {
			log.Err(err).Str("func", "*Handler.checkHashing").Msg("failed to read request body")
			http.Error(w, "cannot read request body", http.StatusRequestEntityTooLarge)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		sum := r.Header.Get(utils.ContentHMACHeader)
		if !h.hasher.Verify(body, sum) {
			log.Error().Str("func", "*Handler.checkHashing").
				Str("hash from request", sum).
				Str("path", r.URL.Path).
				Msg("hashes are not equal")
			http.Error(w, "integrity check failed", http.StatusUnprocessableEntity)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
)

var errorStatusMap = map[error]int{
	adapter.ErrNotFound:    http.StatusNotFound,
	adapter.ErrInvalidPath: http.StatusBadRequest,
	adapter.ErrIntegrity:   http.StatusUnprocessableEntity,
	adapter.ErrIO:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
)

// Init builds the router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get(adapter.FilesRoute+"*", h.readFile)
	router.With(h.checkHashing).Put(adapter.FilesRoute+"*", h.writeFile)
	router.Delete(adapter.FilesRoute+"*", h.removeFile)
	router.Get(adapter.ListRoute+"*", h.listDir)

	return router
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/utils"
)

// maxFileSize bounds a single PUT body.
const maxFileSize = 32 << 20

func (h *Handler) readFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	path, ok := h.pathParam(w, r)
	if !ok {
		return
	}

	data, err := h.storage.Read(r.Context(), path)
	if err != nil {
		h.fail(w, r, err, "read file")
		return
	}

	if _, err = utils.WriteBody(w, data, "application/octet-stream", http.StatusOK, h.hasher); err != nil {
		log.Err(err).Str("func", "*Handler.readFile").Str("path", path).Msg("failed to write response")
	}
}

func (h *Handler) writeFile(w http.ResponseWriter, r *http.Request) {
	path, ok := h.pathParam(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFileSize))
	if err != nil {
		status := http.StatusBadRequest
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, "cannot read request body", status)
		return
	}

	if err = h.storage.Write(r.Context(), path, data); err != nil {
		h.fail(w, r, err, "write file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeFile(w http.ResponseWriter, r *http.Request) {
	path, ok := h.pathParam(w, r)
	if !ok {
		return
	}

	if err := h.storage.Remove(r.Context(), path); err != nil {
		h.fail(w, r, err, "remove file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listDir(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	dir, err := wildcard(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.storage.List(r.Context(), dir)
	if err != nil {
		h.fail(w, r, err, "list directory")
		return
	}

	if _, err = utils.WriteJSON(w, entries, http.StatusOK, h.hasher); err != nil {
		log.Err(err).Str("func", "*Handler.listDir").Str("dir", dir).Msg("failed to write response")
	}
}

// pathParam extracts the file path of a /files/ route, answering 400 when
// it is missing or malformed.
func (h *Handler) pathParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	path, err := wildcard(r)
	if err == nil {
		_, err = adapter.CleanPath(path)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return path, true
}

// wildcard returns the decoded tail of the route.
func wildcard(r *http.Request) (string, error) {
	p := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return p, nil
	}
	return url.PathUnescape(p)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)
	event := logger.FromRequest(r).Warn()
	if status == http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Msg(msg)

	http.Error(w, err.Error(), status)
}

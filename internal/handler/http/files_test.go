// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/keychain-vault/internal/adapter"
	"github.com/MKhiriev/keychain-vault/internal/config"
	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/internal/utils"
	"github.com/MKhiriev/keychain-vault/internal/vault"
	"github.com/MKhiriev/keychain-vault/models"
)

const testHashKey = "server-hash-key"

func newFilesRouter(t *testing.T, hashKey string) (http.Handler, adapter.Storage) {
	t.Helper()
	storage := adapter.NewMemoryStorage()
	return NewHandler(storage, hashKey, logger.Nop()).Init(), storage
}

func serve(router http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestFiles_Routes(t *testing.T) {
	hasher := utils.NewHasher(testHashKey)
	signed := func(body string) http.Header {
		return http.Header{utils.ContentHMACHeader: []string{hasher.Sum([]byte(body))}}
	}

	tests := []struct {
		name       string
		seed       map[string]string
		method     string
		target     string
		body       string
		header     http.Header
		wantStatus int
		wantBody   string
	}{
		{
			name:       "read existing file",
			seed:       map[string]string{"data/default/contents.js": "[]"},
			method:     http.MethodGet,
			target:     "/files/data/default/contents.js",
			wantStatus: http.StatusOK,
			wantBody:   "[]",
		},
		{
			name:       "read missing file",
			method:     http.MethodGet,
			target:     "/files/data/default/nope.1password",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "read path with dot segments",
			method:     http.MethodGet,
			target:     "/files/data/%2E%2E/secret",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "read without path",
			method:     http.MethodGet,
			target:     "/files/",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "write signed body",
			method:     http.MethodPut,
			target:     "/files/data/default/A.1password",
			body:       `{"uuid":"A"}`,
			header:     signed(`{"uuid":"A"}`),
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "write with wrong digest",
			method:     http.MethodPut,
			target:     "/files/data/default/A.1password",
			body:       `{"uuid":"A"}`,
			header:     signed(`{"uuid":"B"}`),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "write without digest",
			method:     http.MethodPut,
			target:     "/files/data/default/A.1password",
			body:       `{"uuid":"A"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "remove existing file",
			seed:       map[string]string{"data/default/A.1password": "x"},
			method:     http.MethodDelete,
			target:     "/files/data/default/A.1password",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "remove missing file",
			method:     http.MethodDelete,
			target:     "/files/data/default/A.1password",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "list missing directory",
			method:     http.MethodGet,
			target:     "/list/data/default",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unsupported method",
			method:     http.MethodPost,
			target:     "/files/data/default/A.1password",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			target:     "/api/user/login",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, storage := newFilesRouter(t, testHashKey)
			for path, data := range tt.seed {
				require.NoError(t, storage.Write(context.Background(), path, []byte(data)))
			}

			rr := serve(router, tt.method, tt.target, tt.body, tt.header)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
				assert.True(t, hasher.Verify(rr.Body.Bytes(), rr.Header().Get(utils.ContentHMACHeader)))
			}
		})
	}
}

func TestFiles_WriteReadRemove(t *testing.T) {
	router, storage := newFilesRouter(t, "")
	ctx := context.Background()

	rr := serve(router, http.MethodPut, "/files/data/default/A.1password", "payload", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	got, err := storage.Read(ctx, "data/default/A.1password")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	rr = serve(router, http.MethodGet, "/files/data/default/A.1password", "", nil)
	assert.Equal(t, "payload", rr.Body.String())
	assert.Empty(t, rr.Header().Get(utils.ContentHMACHeader))

	rr = serve(router, http.MethodDelete, "/files/data/default/A.1password", "", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	_, err = storage.Read(ctx, "data/default/A.1password")
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestFiles_List(t *testing.T) {
	router, storage := newFilesRouter(t, "")
	ctx := context.Background()
	require.NoError(t, storage.Write(ctx, "data/default/A.1password", []byte("a")))
	require.NoError(t, storage.Write(ctx, "data/default/history/R.1password", []byte("r")))

	rr := serve(router, http.MethodGet, "/list/data/default", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []models.FileInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.ElementsMatch(t, []models.FileInfo{
		{Name: "A.1password"},
		{Name: "history", IsDir: true},
	}, entries)

	rr = serve(router, http.MethodGet, "/list/", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"name":"data","is_dir":true}]`, rr.Body.String())
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFromError(adapter.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFromError(adapter.ErrInvalidPath))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFromError(adapter.ErrIntegrity))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(assert.AnError))
}

// ── Through the http storage adapter ─────────────────────────────────────────

func newRemoteStorage(t *testing.T, serverKey, clientKey string) adapter.Storage {
	t.Helper()
	srv := httptest.NewServer(NewHandler(adapter.NewMemoryStorage(), serverKey, logger.Nop()).Init())
	t.Cleanup(srv.Close)

	storage, err := adapter.NewHTTPStorage(config.Storage{
		Kind:           config.StorageKindHTTP,
		Address:        srv.URL,
		RequestTimeout: 5 * time.Second,
	}, clientKey, logger.Nop())
	require.NoError(t, err)
	return storage
}

func TestHTTPStorage_VaultRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newRemoteStorage(t, testHashKey, testHashKey)

	v, err := vault.Create(ctx, storage, "logMEin", "usual one", 100, vault.Options{Logger: logger.Nop()})
	require.NoError(t, err)

	item := vault.NewItem(models.TypeLogin, "Facebook")
	item.SetContent(models.ItemContent{
		URLs: []models.ItemURL{{Label: "website", URL: "facebook.com"}},
	})
	require.NoError(t, v.SaveItem(ctx, item, models.SourceLocal))

	reopened := vault.Open(storage, vault.Options{Logger: logger.Nop()})
	require.NoError(t, reopened.Unlock(ctx, "logMEin"))

	items, err := reopened.ListItems(ctx, vault.ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.UUID(), items[0].UUID())

	content, err := reopened.GetContent(ctx, items[0])
	require.NoError(t, err)
	assert.Equal(t, "facebook.com", content.URLs[0].URL)

	hint, err := reopened.PasswordHint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "usual one", hint)
}

func TestHTTPStorage_MismatchedHashKeys(t *testing.T) {
	ctx := context.Background()
	storage := newRemoteStorage(t, testHashKey, "some other key")

	err := storage.Write(ctx, "data/default/A.1password", []byte("x"))
	assert.ErrorIs(t, err, adapter.ErrIntegrity)

	_, err = storage.Read(ctx, "data/default/A.1password")
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

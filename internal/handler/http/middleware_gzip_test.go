// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func gunzip(t *testing.T, data []byte) []byte {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return out
}

func TestGZip(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(append([]byte("got: "), body...))
	})

	tests := []struct {
		name            string
		acceptEncoding  string
		contentEncoding string
		body            []byte
		wantGzipped     bool
	}{
		{name: "plain request and response", body: []byte("hello")},
		{name: "compressed response", acceptEncoding: "gzip", body: []byte("hello"), wantGzipped: true},
		{name: "gzip among several encodings", acceptEncoding: "deflate, gzip;q=1.0, br", body: []byte("hello"), wantGzipped: true},
		{name: "compressed request", contentEncoding: "gzip", body: []byte("hello")},
		{name: "compressed both ways", acceptEncoding: "gzip", contentEncoding: "gzip", body: []byte("hello"), wantGzipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if tt.contentEncoding != "" {
				body = gzipBytes(t, body)
			}
			req := httptest.NewRequest(http.MethodPut, "/files/a", bytes.NewReader(body))
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			req.Header.Set("Content-Encoding", tt.contentEncoding)

			rr := httptest.NewRecorder()
			withGZip(echo).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			got := rr.Body.Bytes()
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				got = gunzip(t, got)
			} else {
				assert.Empty(t, rr.Header().Get("Content-Encoding"))
			}
			assert.Equal(t, "got: hello", string(got))
		})
	}
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/files/a", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")

	rr := httptest.NewRecorder()
	withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGZip_NoContentStaysEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/files/a", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := httptest.NewRecorder()
	withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

func TestGZip_LargeBodyCompresses(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"uuid":"A","revision":"B"}`), 500)
	req := httptest.NewRequest(http.MethodGet, "/files/a", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := httptest.NewRecorder()
	withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})).ServeHTTP(rr, req)

	assert.Less(t, rr.Body.Len(), len(payload))
	assert.Equal(t, payload, gunzip(t, rr.Body.Bytes()))
}

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipWriterPool = sync.Pool{
	New: func() any { return gzip.NewWriter(io.Discard) },
}

var gzipReaderPool = sync.Pool{
	New: func() any { return new(gzip.Reader) },
}

// withGZip decodes gzip request bodies and compresses responses for
// clients that accept gzip. Responses without a body are sent as is.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			zr := gzipReaderPool.Get().(*gzip.Reader)
			if err := zr.Reset(r.Body); err != nil {
				gzipReaderPool.Put(zr)
				http.Error(w, "invalid gzip data", http.StatusBadRequest)
				return
			}
			r.Body = &pooledReader{Reader: zr}
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.finish()
		next.ServeHTTP(gw, r)
	})
}

// pooledReader returns its gzip.Reader to the pool on Close.
type pooledReader struct {
	*gzip.Reader
	once sync.Once
}

func (p *pooledReader) Close() error {
	p.once.Do(func() {
		_ = p.Reader.Close()
		gzipReaderPool.Put(p.Reader)
	})
	return nil
}

// gzipResponseWriter starts compressing on the first body write.
type gzipResponseWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if bodyAllowed(statusCode) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		w.Header().Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if w.zw == nil {
		if w.Header().Get("Content-Encoding") == "" {
			w.WriteHeader(http.StatusOK)
		}
		w.zw = gzipWriterPool.Get().(*gzip.Writer)
		w.zw.Reset(w.ResponseWriter)
	}
	return w.zw.Write(data)
}

func (w *gzipResponseWriter) finish() {
	if w.zw == nil {
		return
	}
	_ = w.zw.Close()
	gzipWriterPool.Put(w.zw)
	w.zw = nil
}

func bodyAllowed(status int) bool {
	return status != http.StatusNoContent && status != http.StatusNotModified && status >= http.StatusOK
}

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// gzipMinSize is the smallest body worth compressing.
const gzipMinSize = 32

var compressibleTypes = []string{
	"application/json",
	"text/html",
	"text/plain",
}

// GzipMiddleware compresses eligible responses with gzip when accepted by the client.
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		buffered := &bufferedResponseWriter{
			header:     make(http.Header),
			statusCode: http.StatusOK,
		}

		next.ServeHTTP(buffered, r)

		dst := w.Header()
		for k, v := range buffered.header {
			dst[k] = v
		}
		dst.Add("Vary", "Accept-Encoding")

		if !shouldCompress(buffered) {
			w.WriteHeader(buffered.statusCode)
			w.Write(buffered.body)
			return
		}

		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			w.WriteHeader(buffered.statusCode)
			w.Write(buffered.body)
			return
		}
		defer gz.Close()

		dst.Set("Content-Encoding", "gzip")
		dst.Del("Content-Length")
		w.WriteHeader(buffered.statusCode)

		gz.Write(buffered.body)
	})
}

func shouldCompress(w *bufferedResponseWriter) bool {
	if w.header.Get("Content-Encoding") != "" || len(w.body) < gzipMinSize {
		return false
	}

	contentType := w.header.Get("Content-Type")
	for _, t := range compressibleTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

// bufferedResponseWriter holds the whole response so the compression
// decision can be made once the content type and size are known.
type bufferedResponseWriter struct {
	header     http.Header
	statusCode int
	body       []byte
}

func (w *bufferedResponseWriter) Header() http.Header {
	return w.header
}

func (w *bufferedResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
}

func (w *bufferedResponseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return len(b), nil
}

// GzipReader transparently decompresses gzipped request bodies.
func GzipReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") != "gzip" {
			next.ServeHTTP(w, r)
			return
		}

		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "Failed to read gzipped request", http.StatusBadRequest)
			return
		}
		defer gzReader.Close()

		r.Body = io.NopCloser(gzReader)
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}

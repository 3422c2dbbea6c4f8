package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// handler serves a request and returns an error instead of writing it
type handler func(w http.ResponseWriter, r *http.Request) error

type errorHandler struct {
	handler handler
	logger  *slog.Logger
}

// ServeHTTP runs the handler and writes a JSON error response if nothing was written yet
func (h *errorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := newRecorder(w)
	err := h.handler(rw, r)
	if err == nil {
		return
	}
	code := errorHTTPStatusCode(err)
	h.logger.Error("request failed", "requestId", RequestID(r.Context()), "uri", r.URL.RequestURI(), "status", code, "error", err)
	if rw.Code != 0 {
		return
	}
	body := &errorBody{Error: http.StatusText(code)}
	var httpErr *httpError
	if errors.As(err, &httpErr) {
		body = httpErr.body()
	}
	_ = writeJSON(w, code, body)
}

// responseRecorder is an implementation of http.ResponseWriter that
// records its HTTP status code and body length.
type responseRecorder struct {
	Code       int
	BodyLength int

	underlying http.ResponseWriter
}

func newRecorder(underlying http.ResponseWriter) *responseRecorder {
	if rw, ok := underlying.(*responseRecorder); ok {
		return rw
	}
	return &responseRecorder{underlying: underlying}
}

// Header returns the header map from the underlying ResponseWriter.
func (rw *responseRecorder) Header() http.Header {
	return rw.underlying.Header()
}

func (rw *responseRecorder) Write(buf []byte) (int, error) {
	if rw.Code == 0 {
		rw.Code = http.StatusOK
	}
	n, err := rw.underlying.Write(buf)
	rw.BodyLength += n
	return n, err
}

// WriteHeader sets rw.Code.
func (rw *responseRecorder) WriteHeader(code int) {
	if rw.Code == 0 {
		rw.Code = code
	}
	rw.underlying.WriteHeader(code)
}

// Unwrap returns the underlying ResponseWriter, used by http.ResponseController
func (rw *responseRecorder) Unwrap() http.ResponseWriter {
	return rw.underlying
}

// writeJSON writes a JSON Content-Type header and a JSON-encoded object to the
// http.ResponseWriter.
func writeJSON(w http.ResponseWriter, code int, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &httpError{statusCode: http.StatusInternalServerError, err: err}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, err = w.Write(data)
	return err
}

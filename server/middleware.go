package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request identifier
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID returns the identifier assigned to the request
func RequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

// withRequestID keeps a client supplied request id or assigns a new one
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// withAccessLog logs one line per served request
func withAccessLog(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := newRecorder(w)
		next.ServeHTTP(rw, r)
		code := rw.Code
		if code == 0 {
			code = http.StatusOK
		}
		logger.Info("request",
			"requestId", RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", code,
			"bytes", rw.BodyLength,
			"elapsed", time.Since(started))
	})
}

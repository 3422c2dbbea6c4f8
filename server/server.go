package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/viant/gitinsight/assistant"
	"github.com/viant/gitinsight/config"
	"github.com/viant/gitinsight/insight"
)

// Analyzer analyzes a remote repository
type Analyzer interface {
	Analyze(ctx context.Context, owner, name string) (*insight.Report, error)
}

// Assistant answers questions about a repository
type Assistant interface {
	Chat(ctx context.Context, request *assistant.ChatRequest) (string, error)
	Explain(ctx context.Context, request *assistant.ExplainRequest) (string, error)
}

// maxBodySize limits chat and explain request bodies
const maxBodySize = 2 << 20

// Server exposes repository analysis and assistant endpoints over HTTP
type Server struct {
	config    *config.Config
	analyzer  Analyzer
	assistant Assistant
	logger    *slog.Logger
	decoder   *schema.Decoder
}

// New creates a Server
func New(cfg *config.Config, analyzer Analyzer, assistant Assistant, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Server{config: cfg, analyzer: analyzer, assistant: assistant, logger: logger, decoder: decoder}
}

// Handler returns the HTTP handler with routes and middleware
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Handle("/repo", s.handle(s.serveRepo)).Methods(http.MethodGet)
	router.Handle("/api/github/repo", s.handle(s.serveRepo)).Methods(http.MethodGet)
	router.Handle("/api/openai/chat", s.handle(s.serveChat)).Methods(http.MethodPost)
	router.Handle("/api/openai/explain-file", s.handle(s.serveExplain)).Methods(http.MethodPost)
	router.HandleFunc("/health", serveHealth).Methods(http.MethodGet)
	if s.config.StaticDir != "" {
		router.PathPrefix("/").Handler(&staticHandler{dir: s.config.StaticDir})
	}
	var ret http.Handler = router
	ret = withAccessLog(s.logger, ret)
	ret = withRequestID(ret)
	ret = cors.AllowAll().Handler(ret)
	return gzhttp.GzipHandler(ret)
}

// HTTPServer returns http.Server listening on the configured port
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) handle(h handler) http.Handler {
	return &errorHandler{handler: h, logger: s.logger}
}

func serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

// isTimeout returns true if err or ctx indicate an expired deadline
func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

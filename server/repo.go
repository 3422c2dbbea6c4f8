package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/viant/gitinsight/insight"
	"github.com/viant/gitinsight/repository"
	"github.com/viant/gitinsight/tree"
)

type repoQuery struct {
	Owner string `schema:"owner"`
	Repo  string `schema:"repo"`
}

func (s *Server) serveRepo(w http.ResponseWriter, r *http.Request) error {
	query := &repoQuery{}
	if err := s.decoder.Decode(query, r.URL.Query()); err != nil {
		return &httpError{statusCode: http.StatusBadRequest, err: err, message: "Invalid query parameters"}
	}
	if strings.TrimSpace(query.Owner) == "" || strings.TrimSpace(query.Repo) == "" {
		return &httpError{statusCode: http.StatusBadRequest, message: "Owner and repo parameters are required"}
	}

	ctx, cancel := withTimeout(r.Context(), s.config.Timeouts.Analyze.Duration())
	defer cancel()
	report, err := s.analyzer.Analyze(ctx, query.Owner, query.Repo)
	if err != nil {
		return repoError(ctx, err)
	}

	data, err := json.Marshal(report)
	if err != nil {
		return &httpError{statusCode: http.StatusInternalServerError, err: err, message: "Failed to fetch repository data: " + err.Error()}
	}
	hash, err := tree.Hash(data)
	if err != nil {
		return &httpError{statusCode: http.StatusInternalServerError, err: err, message: "Failed to fetch repository data: " + err.Error()}
	}
	etag := fmt.Sprintf(`"%016x"`, hash)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && strings.Contains(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, err = w.Write(data)
	return err
}

func repoError(ctx context.Context, err error) error {
	if errors.Is(err, insight.ErrInvalidInput) {
		return &httpError{statusCode: http.StatusBadRequest, err: err, message: "Owner and repo parameters are required"}
	}
	if isTimeout(ctx, err) {
		return &httpError{statusCode: http.StatusGatewayTimeout, err: err, message: "Request timed out while fetching repository data"}
	}
	if upstream, ok := repository.AsError(err); ok {
		return &httpError{statusCode: upstream.StatusCode, err: err, message: "GitHub API error: " + upstream.Message, upstream: true}
	}
	return &httpError{statusCode: http.StatusInternalServerError, err: err, message: "Failed to fetch repository data: " + err.Error()}
}

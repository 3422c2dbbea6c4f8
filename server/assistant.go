package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viant/gitinsight/assistant"
)

func (s *Server) serveChat(w http.ResponseWriter, r *http.Request) error {
	request := &assistant.ChatRequest{}
	if err := decodeBody(w, r, request); err != nil {
		return err
	}
	ctx, cancel := withTimeout(r.Context(), s.config.Timeouts.Chat.Duration())
	defer cancel()
	response, err := s.assistant.Chat(ctx, request)
	if err != nil {
		return assistantError(ctx, err, "Message is required", "Request timed out while waiting for AI response", "Failed to get AI response")
	}
	return writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

func (s *Server) serveExplain(w http.ResponseWriter, r *http.Request) error {
	request := &assistant.ExplainRequest{}
	if err := decodeBody(w, r, request); err != nil {
		return err
	}
	ctx, cancel := withTimeout(r.Context(), s.config.Timeouts.Explain.Duration())
	defer cancel()
	explanation, err := s.assistant.Explain(ctx, request)
	if err != nil {
		return assistantError(ctx, err, "File path and content are required", "Request timed out while explaining file", "Failed to get file explanation")
	}
	return writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(target); err != nil {
		return &httpError{statusCode: http.StatusBadRequest, err: err, message: "Invalid JSON request body"}
	}
	return nil
}

func assistantError(ctx context.Context, err error, invalid, timeout, failure string) error {
	switch {
	case errors.Is(err, assistant.ErrInvalidRequest):
		return &httpError{statusCode: http.StatusBadRequest, err: err, message: invalid}
	case errors.Is(err, assistant.ErrNotConfigured):
		return &httpError{statusCode: http.StatusServiceUnavailable, err: err, message: "OpenAI API key is not configured"}
	case isTimeout(ctx, err):
		return &httpError{statusCode: http.StatusGatewayTimeout, err: err, message: timeout}
	}
	return &httpError{statusCode: http.StatusInternalServerError, err: err, message: failure}
}

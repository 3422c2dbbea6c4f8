package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/viant/gitinsight/outline"
	"github.com/viant/gitinsight/tree"
)

var (
	// ErrNotConfigured is returned when no API key was configured
	ErrNotConfigured = errors.New("language model API key is not configured")
	// ErrInvalidRequest is returned when a required request field is missing
	ErrInvalidRequest = errors.New("invalid request")
)

// Completer creates chat completions, implemented by *openai.Client
type Completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service answers questions about repositories with a language model
type Service struct {
	config    *Config
	completer Completer
	logger    *slog.Logger
}

// Option configures Service
type Option func(s *Service)

// WithCompleter sets completion client
func WithCompleter(completer Completer) Option {
	return func(s *Service) {
		s.completer = completer
	}
}

// WithLogger sets service logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service, an OpenAI client is created when config has an API key
func New(config *Config, options ...Option) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	ret := &Service{config: config}
	for _, option := range options {
		option(ret)
	}
	if ret.completer == nil && config.APIKey != "" {
		clientConfig := openai.DefaultConfig(config.APIKey)
		if config.BaseURL != "" {
			clientConfig.BaseURL = config.BaseURL
		}
		ret.completer = openai.NewClientWithConfig(clientConfig)
	}
	if ret.logger == nil {
		ret.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return ret
}

// Configured returns true if the service can call the language model
func (s *Service) Configured() bool {
	return s.completer != nil
}

// Chat answers a question about a repository
func (s *Service) Chat(ctx context.Context, request *ChatRequest) (string, error) {
	if request == nil || strings.TrimSpace(request.Message) == "" {
		return "", fmt.Errorf("%w: message is required", ErrInvalidRequest)
	}
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	messages := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: ChatPrompt(request)}}
	messages = append(messages, s.history(request.History)...)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: request.Message})
	return s.complete(ctx, openai.ChatCompletionRequest{
		Model:     s.config.ChatModel,
		MaxTokens: s.config.ChatMaxTokens,
		Messages:  messages,
	})
}

// Explain summarizes or explains line by line a source file
func (s *Service) Explain(ctx context.Context, request *ExplainRequest) (string, error) {
	if request == nil || strings.TrimSpace(request.FilePath) == "" || request.FileContent == "" {
		return "", fmt.Errorf("%w: file path and content are required", ErrInvalidRequest)
	}
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	symbols, err := outline.Extract(ctx, tree.Language(request.FilePath), []byte(request.FileContent))
	if err != nil {
		s.logger.Warn("failed to outline file", "path", request.FilePath, "error", err)
	}
	return s.complete(ctx, openai.ChatCompletionRequest{
		Model:     s.config.ExplainModel,
		MaxTokens: s.config.ExplainMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: ExplainPrompt(request, symbols)},
		},
	})
}

// history returns the most recent user and assistant turns
func (s *Service) history(turns []*Turn) []openai.ChatCompletionMessage {
	var result []openai.ChatCompletionMessage
	for _, turn := range turns {
		if turn == nil || turn.Content == "" {
			continue
		}
		switch turn.Role {
		case openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant:
			result = append(result, openai.ChatCompletionMessage{Role: turn.Role, Content: turn.Content})
		}
	}
	if limit := s.config.HistoryLimit; limit >= 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result
}

func (s *Service) complete(ctx context.Context, request openai.ChatCompletionRequest) (string, error) {
	response, err := s.completer.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to create %v completion: %w", request.Model, err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("failed to create %v completion: no choices returned", request.Model)
	}
	s.logger.Debug("completion created", "model", request.Model, "totalTokens", response.Usage.TotalTokens)
	return response.Choices[0].Message.Content, nil
}

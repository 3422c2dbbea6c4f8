package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
)

// DefaultTimeout is applied to every hosting API call
const DefaultTimeout = 30 * time.Second

// Options configures GitHub client
type Options struct {
	Token   string        // Optional access token, anonymous access has stricter rate limits
	BaseURL string        // Optional API base URL, i.e. GitHub Enterprise or test server
	Timeout time.Duration // Per call timeout
}

// GitHub implements Service with the GitHub REST API
type GitHub struct {
	client *github.Client
}

// NewGitHub creates a GitHub backed Service
func NewGitHub(options Options) (*GitHub, error) {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := github.NewClient(&http.Client{Timeout: timeout})
	if options.Token != "" {
		client = client.WithAuthToken(options.Token)
	}
	if options.BaseURL != "" {
		baseURL := options.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", options.BaseURL, err)
		}
		client.BaseURL = parsed
	}
	return &GitHub{client: client}, nil
}

// Repository returns repository metadata
func (g *GitHub) Repository(ctx context.Context, owner, name string) (*Metadata, error) {
	repo, _, err := g.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", owner, name, asUpstreamError(err))
	}
	return &Metadata{
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		UpdatedAt:     repo.GetUpdatedAt().Time,
		Size:          repo.GetSize(),
		DefaultBranch: repo.GetDefaultBranch(),
	}, nil
}

// List returns the directory listing at path
func (g *GitHub) List(ctx context.Context, owner, name, path string) ([]*Entry, error) {
	file, dir, _, err := g.client.Repositories.GetContents(ctx, owner, name, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s/%s/%s: %w", owner, name, path, asUpstreamError(err))
	}
	if file != nil {
		return nil, fmt.Errorf("failed to list %s/%s/%s: not a directory", owner, name, path)
	}
	entries := make([]*Entry, 0, len(dir))
	for _, item := range dir {
		entries = append(entries, &Entry{
			Name:        item.GetName(),
			Path:        item.GetPath(),
			Type:        item.GetType(),
			Size:        item.GetSize(),
			DownloadURL: item.GetDownloadURL(),
		})
	}
	return entries, nil
}

// Download returns raw file content
func (g *GitHub) Download(ctx context.Context, entry *Entry) ([]byte, error) {
	if entry.DownloadURL == "" {
		return nil, fmt.Errorf("no download URL for %s", entry.Path)
	}
	req, err := g.client.NewRequest(http.MethodGet, entry.DownloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request for %s: %w", entry.Path, err)
	}
	buffer := new(bytes.Buffer)
	if _, err = g.client.Do(ctx, req, buffer); err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", entry.Path, asUpstreamError(err))
	}
	return buffer.Bytes(), nil
}

// asUpstreamError converts go-github API errors into Error, other errors are returned as is
func asUpstreamError(err error) error {
	var rateLimit *github.RateLimitError
	if errors.As(err, &rateLimit) {
		return &Error{StatusCode: statusCode(rateLimit.Response, http.StatusForbidden), Message: rateLimit.Message, Err: err}
	}
	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		return &Error{StatusCode: statusCode(abuse.Response, http.StatusForbidden), Message: abuse.Message, Err: err}
	}
	var response *github.ErrorResponse
	if errors.As(err, &response) {
		return &Error{StatusCode: statusCode(response.Response, http.StatusBadGateway), Message: response.Message, Err: err}
	}
	return err
}

func statusCode(response *http.Response, fallback int) int {
	if response == nil || response.StatusCode == 0 {
		return fallback
	}
	return response.StatusCode
}

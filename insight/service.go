package insight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/viant/gitinsight/project"
	"github.com/viant/gitinsight/repository"
	"github.com/viant/gitinsight/tree"
)

// NoDescription is reported when a repository has no description
const NoDescription = "No description provided"

// ErrInvalidInput is returned when owner or repository name is missing
var ErrInvalidInput = errors.New("owner and repo parameters are required")

// Report represents analyzed repository
type Report struct {
	Name        string           `json:"name"`
	FullName    string           `json:"fullName"`
	Description string           `json:"description"`
	Stars       int              `json:"stars"`
	Forks       int              `json:"forks"`
	LastUpdated time.Time        `json:"lastUpdated"`
	Files       *tree.Tree       `json:"files"`
	Project     *project.Project `json:"project"`
}

// Service analyzes a remote repository
type Service struct {
	repository repository.Service
	fetcher    *tree.Fetcher
	detector   *project.Detector
	logger     *slog.Logger
	budget     func(size int) tree.Budget
	walk       []tree.Option
}

// Option configures Service
type Option func(s *Service)

// WithLogger sets service and tree fetcher logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBudget sets the repository size to traversal budget policy
func WithBudget(budget func(size int) tree.Budget) Option {
	return func(s *Service) {
		s.budget = budget
	}
}

// WithFetcherOptions sets tree fetcher options
func WithFetcherOptions(options ...tree.Option) Option {
	return func(s *Service) {
		s.walk = append(s.walk, options...)
	}
}

// New creates a Service
func New(service repository.Service, options ...Option) *Service {
	ret := &Service{repository: service, detector: project.New(), budget: tree.BudgetFor}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ret.fetcher = tree.New(service, append([]tree.Option{tree.WithLogger(ret.logger)}, ret.walk...)...)
	return ret
}

// Analyze fetches repository metadata and a bounded file tree
func (s *Service) Analyze(ctx context.Context, owner, name string) (*Report, error) {
	owner, name = strings.TrimSpace(owner), strings.TrimSpace(name)
	if owner == "" || name == "" {
		return nil, ErrInvalidInput
	}
	started := time.Now()
	metadata, err := s.repository.Repository(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %v/%v: %w", owner, name, err)
	}
	root, err := s.repository.List(ctx, owner, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list repository %v/%v: %w", owner, name, err)
	}
	budget := s.budget(metadata.Size)
	s.logger.Info("fetching repository tree", "repository", owner+"/"+name, "size", metadata.Size, "maxDepth", budget.MaxDepth, "maxFiles", budget.MaxFiles)
	files := s.fetcher.Walk(ctx, owner, name, root, budget)
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	report := &Report{
		Name:        metadata.Name,
		FullName:    metadata.FullName,
		Description: metadata.Description,
		Stars:       metadata.Stars,
		Forks:       metadata.Forks,
		LastUpdated: metadata.UpdatedAt,
		Files:       files,
		Project:     s.detector.Detect(files, metadata.Name),
	}
	if report.Description == "" {
		report.Description = NoDescription
	}
	s.logger.Info("repository analyzed", "repository", report.FullName, "files", files.FileCount(), "project", report.Project.Type, "elapsed", time.Since(started))
	return report, nil
}

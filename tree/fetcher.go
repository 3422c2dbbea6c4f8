package tree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/viant/gitinsight/repository"
)

// Fetcher builds a bounded repository tree by walking a hosting API directory by directory
type Fetcher struct {
	service     repository.Service
	logger      *slog.Logger
	maxFileSize int
}

// Option configures Fetcher
type Option func(f *Fetcher)

// WithLogger sets fetcher logger
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithMaxFileSize sets byte size above which content is not fetched
func WithMaxFileSize(size int) Option {
	return func(f *Fetcher) {
		f.maxFileSize = size
	}
}

// New creates a Fetcher
func New(service repository.Service, options ...Option) *Fetcher {
	ret := &Fetcher{service: service, maxFileSize: MaxFileSize}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return ret
}

// Walk builds a tree from the repository root listing. Subdirectory and file failures are
// recorded on the affected nodes; the walk itself never fails. Directories are visited
// sequentially so that the file budget is consumed in listing order.
func (f *Fetcher) Walk(ctx context.Context, owner, name string, root []*repository.Entry, budget Budget) *Tree {
	w := &walk{Fetcher: f, owner: owner, name: name, budget: budget}
	result, count := w.directory(ctx, root, "", 0, 0)
	f.logger.Debug("tree fetched", "repository", owner+"/"+name, "files", count)
	return result
}

type walk struct {
	*Fetcher
	owner  string
	name   string
	budget Budget
}

// directory processes one listing; count is the number of files emitted so far in the whole
// walk, the updated count is returned
func (w *walk) directory(ctx context.Context, entries []*repository.Entry, dirPath string, depth int, count int) (*Tree, int) {
	result := NewTree()
	if depth >= w.budget.MaxDepth {
		w.logger.Debug("max depth reached", "path", rootName(dirPath), "depth", depth)
		return result, count
	}
	if count >= w.budget.MaxFiles {
		w.logger.Debug("max file count reached", "path", rootName(dirPath), "files", count)
		return result, count
	}
	for _, entry := range dirsFirst(entries) {
		if ctx.Err() != nil {
			break
		}
		location := entryPath(entry, dirPath)
		if Skip(entry.Name, location) {
			w.logger.Debug("skipping", "path", location)
			continue
		}
		if count >= w.budget.MaxFiles {
			w.logger.Debug("file limit reached", "path", location, "files", count)
			break
		}
		switch entry.Type {
		case repository.TypeFile:
			count++
			result.Put(entry.Name, w.file(ctx, entry, location))
		case repository.TypeDir:
			var node *Node
			node, count = w.folder(ctx, location, depth, count)
			result.Put(entry.Name, node)
		}
	}
	return result, count
}

func (w *walk) folder(ctx context.Context, location string, depth int, count int) (*Node, int) {
	if depth >= w.budget.MaxDepth-1 {
		return NewFolderNode(nil, ""), count
	}
	entries, err := w.service.List(ctx, w.owner, w.name, location)
	if err != nil {
		w.logger.Warn("failed to fetch directory", "path", location, "error", err)
		return NewFolderNode(nil, err.Error()), count
	}
	var children *Tree
	children, count = w.directory(ctx, entries, location, depth+1, count)
	return NewFolderNode(children, ""), count
}

func (w *walk) file(ctx context.Context, entry *repository.Entry, location string) *Node {
	file := &File{
		Language: Language(entry.Name),
		Outdated: IsManifest(entry.Name),
		Size:     entry.Size,
	}
	if entry.Size > w.maxFileSize {
		w.logger.Debug("skipping large file content", "path", location, "size", entry.Size)
		file.Content = fmt.Sprintf("// File too large to display (%.2f KB)", float64(entry.Size)/1024)
		return NewFileNode(file)
	}
	content, err := w.service.Download(ctx, entry)
	if err != nil {
		w.logger.Warn("failed to fetch file", "path", location, "error", err)
		file.Content = "// Error fetching file content: " + err.Error()
		return NewFileNode(file)
	}
	file.Content = strings.ToValidUTF8(string(content), "\uFFFD")
	return NewFileNode(file)
}

// dirsFirst returns a copy of entries with directories ordered before other entries,
// listing order is preserved within each group
func dirsFirst(entries []*repository.Entry) []*repository.Entry {
	result := append([]*repository.Entry(nil), entries...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].IsDir() && !result[j].IsDir()
	})
	return result
}

func entryPath(entry *repository.Entry, dirPath string) string {
	if entry.Path != "" {
		return entry.Path
	}
	return path.Join(dirPath, entry.Name)
}

func rootName(dirPath string) string {
	if dirPath == "" {
		return "root"
	}
	return dirPath
}

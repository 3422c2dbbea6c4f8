package repository

import (
	"context"
	"time"
)

// Entry types reported by a directory listing
const (
	TypeFile      = "file"
	TypeDir       = "dir"
	TypeSymlink   = "symlink"
	TypeSubmodule = "submodule"
)

// Service provides read-only access to a remote code hosting API
type Service interface {
	// Repository returns repository metadata
	Repository(ctx context.Context, owner, name string) (*Metadata, error)

	// List returns the directory listing at path, "" being the repository root
	List(ctx context.Context, owner, name, path string) ([]*Entry, error)

	// Download returns raw content of a file entry
	Download(ctx context.Context, entry *Entry) ([]byte, error)
}

// Metadata represents repository level information
type Metadata struct {
	Name          string
	FullName      string
	Description   string
	Stars         int
	Forks         int
	UpdatedAt     time.Time
	Size          int // Size in KB as reported by the hosting API
	DefaultBranch string
}

// Entry represents a single directory listing item
type Entry struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Type        string `yaml:"type"`
	Size        int    `yaml:"size"`
	DownloadURL string `yaml:"downloadURL"`
}

// IsDir returns true if entry is a directory
func (e *Entry) IsDir() bool {
	return e.Type == TypeDir
}

// IsFile returns true if entry is a regular file
func (e *Entry) IsFile() bool {
	return e.Type == TypeFile
}

// Package repositorytest provides a fake GitHub REST API serving a repository described as a txtar archive.
package repositorytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"golang.org/x/tools/txtar"
)

// Repository describes a fake repository; Archive lists files in listing order
type Repository struct {
	Owner       string
	Name        string
	Description string
	Stars       int
	Forks       int
	Size        int
	UpdatedAt   time.Time
	Archive     string
	Failures    map[string]int // path to HTTP status returned instead of content, see MetadataPath
}

// MetadataPath is the Failures key of the repository metadata endpoint
const MetadataPath = ":metadata"

// Server is a fake GitHub API server
type Server struct {
	*httptest.Server
	repository *Repository
	files      []txtar.File
	mux        sync.Mutex
	requests   []string
}

// NewServer starts a fake GitHub API server
func NewServer(repository *Repository) *Server {
	ret := &Server{repository: repository, files: txtar.Parse([]byte(repository.Archive)).Files}
	ret.Server = httptest.NewServer(http.HandlerFunc(ret.serve))
	return ret
}

// Requests returns served request paths
func (s *Server) Requests() []string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mux.Lock()
	s.requests = append(s.requests, r.URL.Path)
	s.mux.Unlock()

	repoPrefix := "/repos/" + s.repository.Owner + "/" + s.repository.Name
	switch {
	case strings.HasPrefix(r.URL.Path, "/raw/"):
		s.serveRaw(w, strings.TrimPrefix(r.URL.Path, "/raw/"))
	case r.URL.Path == repoPrefix:
		s.serveMetadata(w)
	case strings.HasPrefix(r.URL.Path, repoPrefix+"/contents"):
		location := strings.Trim(strings.TrimPrefix(r.URL.Path, repoPrefix+"/contents"), "/")
		s.serveContents(w, r, location)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	}
}

func (s *Server) failed(w http.ResponseWriter, location string) bool {
	status, ok := s.repository.Failures[location]
	if !ok {
		return false
	}
	writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
	return true
}

func (s *Server) serveMetadata(w http.ResponseWriter) {
	if s.failed(w, MetadataPath) {
		return
	}
	repo := s.repository
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":             repo.Name,
		"full_name":        repo.Owner + "/" + repo.Name,
		"description":      repo.Description,
		"stargazers_count": repo.Stars,
		"forks_count":      repo.Forks,
		"size":             repo.Size,
		"updated_at":       repo.UpdatedAt.UTC().Format(time.RFC3339),
		"default_branch":   "main",
	})
}

func (s *Server) serveRaw(w http.ResponseWriter, location string) {
	if s.failed(w, location) {
		return
	}
	for _, file := range s.files {
		if file.Name == location {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write(file.Data)
			return
		}
	}
	http.NotFound(w, nil)
}

func (s *Server) serveContents(w http.ResponseWriter, r *http.Request, location string) {
	if s.failed(w, location) {
		return
	}
	baseURL := "http://" + r.Host
	for _, file := range s.files {
		if file.Name == location {
			writeJSON(w, http.StatusOK, s.fileEntry(baseURL, file.Name, len(file.Data)))
			return
		}
	}
	var entries []map[string]interface{}
	seen := map[string]bool{}
	prefix := ""
	if location != "" {
		prefix = location + "/"
	}
	for _, file := range s.files {
		if !strings.HasPrefix(file.Name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(file.Name, prefix)
		name, _, isDir := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		if isDir {
			entries = append(entries, map[string]interface{}{
				"type": "dir", "name": name, "path": prefix + name, "size": 0,
			})
			continue
		}
		entries = append(entries, s.fileEntry(baseURL, file.Name, len(file.Data)))
	}
	if len(entries) == 0 && location != "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	if entries == nil {
		entries = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) fileEntry(baseURL, location string, size int) map[string]interface{} {
	name := location[strings.LastIndex(location, "/")+1:]
	return map[string]interface{}{
		"type":         "file",
		"name":         name,
		"path":         location,
		"size":         size,
		"download_url": baseURL + "/raw/" + location,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

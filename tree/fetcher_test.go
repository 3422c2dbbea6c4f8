package tree_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gitinsight/repository"
	"github.com/viant/gitinsight/tree"
	"gopkg.in/yaml.v3"
)

// fakeService serves listings and contents described in YAML
type fakeService struct {
	Listings      map[string][]*repository.Entry `yaml:"listings"`
	Contents      map[string]string              `yaml:"contents"`
	Failures      map[string]string              `yaml:"failures"`
	listCalls     []string
	downloadCalls []string
}

func newFakeService(t *testing.T, fixture string) *fakeService {
	ret := &fakeService{}
	if err := yaml.Unmarshal([]byte(fixture), ret); err != nil {
		t.Fatalf("invalid fixture: %v", err)
	}
	return ret
}

func (s *fakeService) Repository(ctx context.Context, owner, name string) (*repository.Metadata, error) {
	return &repository.Metadata{Name: name, FullName: owner + "/" + name}, nil
}

func (s *fakeService) List(ctx context.Context, owner, name, location string) ([]*repository.Entry, error) {
	s.listCalls = append(s.listCalls, location)
	if message, ok := s.Failures[location]; ok {
		return nil, errors.New(message)
	}
	entries, ok := s.Listings[location]
	if !ok {
		return nil, &repository.Error{StatusCode: 404, Message: "Not Found"}
	}
	return entries, nil
}

func (s *fakeService) Download(ctx context.Context, entry *repository.Entry) ([]byte, error) {
	s.downloadCalls = append(s.downloadCalls, entry.Path)
	if message, ok := s.Failures[entry.Path]; ok {
		return nil, errors.New(message)
	}
	return []byte(s.Contents[entry.Path]), nil
}

func walkPaths(t *tree.Tree) []string {
	var result []string
	t.Walk(func(location string, _ int, _ *tree.Node) bool {
		result = append(result, location)
		return true
	})
	return result
}

func TestFetcher_Walk(t *testing.T) {
	tests := []struct {
		description   string
		fixture       string
		budget        tree.Budget
		expectPaths   []string
		expectListed  []string
		expectFetched []string
	}{
		{
			description: "directories expanded, dependency directory skipped",
			fixture: `
listings:
  "":
    - {name: dirA, path: dirA, type: dir}
    - {name: b.js, path: b.js, type: file, size: 50}
    - {name: node_modules, path: node_modules, type: dir}
  dirA:
    - {name: c.py, path: dirA/c.py, type: file, size: 10}
contents:
  b.js: console.log('b')
  dirA/c.py: print('c')
`,
			budget:        tree.Budget{MaxDepth: 3, MaxFiles: 500},
			expectPaths:   []string{"dirA", "dirA/c.py", "b.js"},
			expectListed:  []string{"dirA"},
			expectFetched: []string{"dirA/c.py", "b.js"},
		},
		{
			description: "skipped image does not consume file budget",
			fixture: `
listings:
  "":
    - {name: image.png, path: image.png, type: file, size: 10}
    - {name: app.js, path: app.js, type: file, size: 10}
`,
			budget:        tree.Budget{MaxDepth: 3, MaxFiles: 1},
			expectPaths:   []string{"app.js"},
			expectFetched: []string{"app.js"},
		},
		{
			description: "skipped image listed after budgeted file",
			fixture: `
listings:
  "":
    - {name: app.js, path: app.js, type: file, size: 10}
    - {name: image.png, path: image.png, type: file, size: 10}
`,
			budget:        tree.Budget{MaxDepth: 3, MaxFiles: 1},
			expectPaths:   []string{"app.js"},
			expectFetched: []string{"app.js"},
		},
		{
			description: "file budget cuts listing short",
			fixture: `
listings:
  "":
    - {name: a.js, path: a.js, type: file, size: 1}
    - {name: b.js, path: b.js, type: file, size: 1}
    - {name: c.js, path: c.js, type: file, size: 1}
`,
			budget:        tree.Budget{MaxDepth: 3, MaxFiles: 2},
			expectPaths:   []string{"a.js", "b.js"},
			expectFetched: []string{"a.js", "b.js"},
		},
		{
			description: "budget exhausted in subdirectory stops siblings",
			fixture: `
listings:
  "":
    - {name: x.js, path: x.js, type: file, size: 1}
    - {name: d1, path: d1, type: dir}
    - {name: d2, path: d2, type: dir}
  d1:
    - {name: 1.js, path: d1/1.js, type: file, size: 1}
    - {name: 2.js, path: d1/2.js, type: file, size: 1}
  d2:
    - {name: 3.js, path: d2/3.js, type: file, size: 1}
`,
			budget:        tree.Budget{MaxDepth: 3, MaxFiles: 2},
			expectPaths:   []string{"d1", "d1/1.js", "d1/2.js"},
			expectListed:  []string{"d1"},
			expectFetched: []string{"d1/1.js", "d1/2.js"},
		},
		{
			description: "folder at depth cap is not fetched",
			fixture: `
listings:
  "":
    - {name: a, path: a, type: dir}
  a:
    - {name: f.js, path: a/f.js, type: file, size: 1}
    - {name: b, path: a/b, type: dir}
  a/b:
    - {name: g.js, path: a/b/g.js, type: file, size: 1}
`,
			budget:        tree.Budget{MaxDepth: 2, MaxFiles: 500},
			expectPaths:   []string{"a", "a/b", "a/f.js"},
			expectListed:  []string{"a"},
			expectFetched: []string{"a/f.js"},
		},
		{
			description: "single level budget",
			fixture: `
listings:
  "":
    - {name: f.js, path: f.js, type: file, size: 1}
    - {name: a, path: a, type: dir}
`,
			budget:        tree.Budget{MaxDepth: 1, MaxFiles: 500},
			expectPaths:   []string{"a", "f.js"},
			expectFetched: []string{"f.js"},
		},
		{
			description: "zero file budget",
			fixture: `
listings:
  "":
    - {name: f.js, path: f.js, type: file, size: 1}
    - {name: a, path: a, type: dir}
`,
			budget: tree.Budget{MaxDepth: 3, MaxFiles: 0},
		},
		{
			description: "stable directories first ordering",
			fixture: `
listings:
  "":
    - {name: z.js, path: z.js, type: file, size: 1}
    - {name: b, path: b, type: dir}
    - {name: a.js, path: a.js, type: file, size: 1}
    - {name: a, path: a, type: dir}
  a: []
  b: []
`,
			budget:        tree.Budget{MaxDepth: 3, MaxFiles: 500},
			expectPaths:   []string{"b", "a", "z.js", "a.js"},
			expectListed:  []string{"b", "a"},
			expectFetched: []string{"z.js", "a.js"},
		},
		{
			description: "nested skip directory",
			fixture: `
listings:
  "":
    - {name: src, path: src, type: dir}
  src:
    - {name: lib, path: src/lib, type: dir}
    - {name: main.go, path: src/main.go, type: file, size: 1}
`,
			budget:        tree.Budget{MaxDepth: 3, MaxFiles: 500},
			expectPaths:   []string{"src", "src/main.go"},
			expectListed:  []string{"src"},
			expectFetched: []string{"src/main.go"},
		},
		{
			description: "symlinks and submodules ignored",
			fixture: `
listings:
  "":
    - {name: link, path: link, type: symlink, size: 1}
    - {name: module, path: module, type: submodule}
    - {name: f.js, path: f.js, type: file, size: 1}
`,
			budget:        tree.Budget{MaxDepth: 3, MaxFiles: 1},
			expectPaths:   []string{"f.js"},
			expectFetched: []string{"f.js"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			service := newFakeService(t, tc.fixture)
			fetcher := tree.New(service)
			actual := fetcher.Walk(context.Background(), "owner", "repo", service.Listings[""], tc.budget)
			assert.EqualValues(t, tc.expectPaths, walkPaths(actual), tc.description)
			assert.EqualValues(t, tc.expectListed, service.listCalls, tc.description)
			assert.EqualValues(t, tc.expectFetched, service.downloadCalls, tc.description)
		})
	}
}

func TestFetcher_Walk_Content(t *testing.T) {
	service := newFakeService(t, `
listings:
  "":
    - {name: broken, path: broken, type: dir}
    - {name: ok, path: ok, type: dir}
    - {name: big.js, path: big.js, type: file, size: 100001}
    - {name: edge.js, path: edge.js, type: file, size: 100000}
    - {name: missing.py, path: missing.py, type: file, size: 20}
    - {name: package.json, path: package.json, type: file, size: 15}
    - {name: Main.PY, path: Main.PY, type: file, size: 12}
  ok:
    - {name: readme.md, path: ok/readme.md, type: file, size: 7}
contents:
  edge.js: edge
  package.json: '{"name":"demo"}'
  Main.PY: print('hi')
  ok/readme.md: "# title"
failures:
  broken: listing denied
  missing.py: connection reset
`)
	fetcher := tree.New(service)
	actual := fetcher.Walk(context.Background(), "owner", "repo", service.Listings[""], tree.DefaultBudget)

	assert.EqualValues(t, []string{"broken", "ok", "ok/readme.md", "big.js", "edge.js", "missing.py", "package.json", "Main.PY"}, walkPaths(actual))
	assert.NotContains(t, service.downloadCalls, "big.js")
	assert.Contains(t, service.downloadCalls, "edge.js")

	broken, ok := actual.Get("broken")
	if assert.True(t, ok) {
		assert.True(t, broken.IsFolder())
		assert.True(t, broken.Failed())
		assert.EqualValues(t, "listing denied", broken.Folder.Error)
		assert.EqualValues(t, 0, broken.Folder.Children.Len())
	}

	readme, ok := actual.Lookup("ok/readme.md")
	if assert.True(t, ok) {
		assert.EqualValues(t, &tree.File{Language: "markdown", Content: "# title", Size: 7}, readme.File)
	}

	big, _ := actual.Get("big.js")
	assert.EqualValues(t, "// File too large to display (97.66 KB)", big.File.Content)
	assert.EqualValues(t, "javascript", big.File.Language)
	assert.EqualValues(t, 100001, big.File.Size)

	missing, _ := actual.Get("missing.py")
	assert.EqualValues(t, "// Error fetching file content: connection reset", missing.File.Content)
	assert.EqualValues(t, "python", missing.File.Language)

	manifest, _ := actual.Get("package.json")
	assert.True(t, manifest.File.Outdated)
	assert.EqualValues(t, "json", manifest.File.Language)

	upper, _ := actual.Get("Main.PY")
	assert.EqualValues(t, "python", upper.File.Language)
	assert.False(t, upper.File.Outdated)
}

func TestFetcher_Walk_Idempotent(t *testing.T) {
	fixture := `
listings:
  "":
    - {name: README.md, path: README.md, type: file, size: 5}
    - {name: src, path: src, type: dir}
    - {name: docs, path: docs, type: dir}
  src:
    - {name: app.go, path: src/app.go, type: file, size: 5}
    - {name: util, path: src/util, type: dir}
  src/util:
    - {name: util.go, path: src/util/util.go, type: file, size: 5}
  docs:
    - {name: guide.md, path: docs/guide.md, type: file, size: 5}
contents:
  README.md: hello
  src/app.go: package main
  src/util/util.go: package util
  docs/guide.md: guide
`
	var fingerprints []string
	var documents []string
	for i := 0; i < 2; i++ {
		service := newFakeService(t, fixture)
		actual := tree.New(service).Walk(context.Background(), "owner", "repo", service.Listings[""], tree.DefaultBudget)
		data, err := json.Marshal(actual)
		assert.Nil(t, err)
		fingerprint, err := actual.Fingerprint()
		assert.Nil(t, err)
		documents = append(documents, string(data))
		fingerprints = append(fingerprints, fingerprint)
	}
	assert.EqualValues(t, documents[0], documents[1])
	assert.EqualValues(t, fingerprints[0], fingerprints[1])
	assert.NotEmpty(t, fingerprints[0])
}

func TestFetcher_Walk_Bounds(t *testing.T) {
	// every directory holds three subdirectories and three files, four levels deep
	service := &fakeService{Listings: map[string][]*repository.Entry{}}
	var build func(dir string, level int)
	build = func(dir string, level int) {
		var entries []*repository.Entry
		for i := 0; i < 3; i++ {
			name := fmt.Sprintf("f%d.go", i)
			entries = append(entries, &repository.Entry{Name: name, Path: join(dir, name), Type: repository.TypeFile, Size: 10})
		}
		if level < 4 {
			for i := 0; i < 3; i++ {
				name := fmt.Sprintf("d%d", i)
				entries = append(entries, &repository.Entry{Name: name, Path: join(dir, name), Type: repository.TypeDir})
				build(join(dir, name), level+1)
			}
		}
		service.Listings[dir] = entries
	}
	build("", 1)

	for maxDepth := 1; maxDepth <= 5; maxDepth++ {
		for _, maxFiles := range []int{0, 1, 2, 5, 17, 100, 1000} {
			budget := tree.Budget{MaxDepth: maxDepth, MaxFiles: maxFiles}
			actual := tree.New(service).Walk(context.Background(), "owner", "repo", service.Listings[""], budget)
			assert.LessOrEqual(t, actual.FileCount(), maxFiles, "%+v", budget)
			assert.LessOrEqual(t, actual.MaxDepth(), maxDepth, "%+v", budget)
			actual.Walk(func(location string, depth int, node *tree.Node) bool {
				if depth == maxDepth && node.IsFolder() {
					assert.EqualValues(t, 0, node.Folder.Children.Len(), "%v %+v", location, budget)
				}
				return true
			})
		}
	}
}

func TestFetcher_Walk_Cancelled(t *testing.T) {
	service := newFakeService(t, `
listings:
  "":
    - {name: a, path: a, type: dir}
    - {name: f.js, path: f.js, type: file, size: 1}
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	actual := tree.New(service).Walk(ctx, "owner", "repo", service.Listings[""], tree.DefaultBudget)
	assert.EqualValues(t, 0, actual.Len())
	assert.Empty(t, service.listCalls)
	assert.Empty(t, service.downloadCalls)
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gitinsight/project"
	"github.com/viant/gitinsight/tree"
)

func TestDetector_Detect(t *testing.T) {
	tests := []struct {
		description string
		files       map[string]string
		order       []string
		expect      *project.Project
	}{
		{
			description: "go module",
			files:       map[string]string{"go.mod": "module github.com/viant/afs\n\ngo 1.21\n", "README.md": "# afs"},
			order:       []string{"README.md", "go.mod"},
			expect:      &project.Project{Type: "go", Name: "github.com/viant/afs", Manifest: "go.mod"},
		},
		{
			description: "node package",
			files:       map[string]string{"package.json": `{"name": "gitinsight", "version": "1.0.0"}`},
			order:       []string{"package.json"},
			expect:      &project.Project{Type: "javascript", Name: "gitinsight", Manifest: "package.json"},
		},
		{
			description: "maven with parent",
			files: map[string]string{"pom.xml": `<project><parent><artifactId>spring-boot-starter-parent</artifactId></parent>
<artifactId>demo-service</artifactId></project>`},
			order:  []string{"pom.xml"},
			expect: &project.Project{Type: "java", Name: "demo-service", Manifest: "pom.xml"},
		},
		{
			description: "cargo",
			files:       map[string]string{"Cargo.toml": "[package]\nname = \"ripgrep\"\nversion = \"14.0.0\"\n"},
			order:       []string{"Cargo.toml"},
			expect:      &project.Project{Type: "rust", Name: "ripgrep", Manifest: "Cargo.toml"},
		},
		{
			description: "go module preferred over package.json",
			files:       map[string]string{"package.json": `{"name": "web"}`, "go.mod": "module example.com/app\n"},
			order:       []string{"package.json", "go.mod"},
			expect:      &project.Project{Type: "go", Name: "example.com/app", Manifest: "go.mod"},
		},
		{
			description: "requirements without name",
			files:       map[string]string{"requirements.txt": "flask==3.0.0\n"},
			order:       []string{"requirements.txt"},
			expect:      &project.Project{Type: "python", Name: "fallback", Manifest: "requirements.txt"},
		},
		{
			description: "placeholder manifest content",
			files:       map[string]string{"package.json": "// Error fetching file content: timeout"},
			order:       []string{"package.json"},
			expect:      &project.Project{Type: "javascript", Name: "fallback", Manifest: "package.json"},
		},
		{
			description: "no marker",
			files:       map[string]string{"main.c": "int main() {}"},
			order:       []string{"main.c"},
			expect:      &project.Project{Type: "unknown", Name: "fallback"},
		},
	}

	detector := project.New()
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			files := tree.NewTree()
			for _, name := range tc.order {
				files.Put(name, tree.NewFileNode(&tree.File{Language: tree.Language(name), Content: tc.files[name]}))
			}
			assert.EqualValues(t, tc.expect, detector.Detect(files, "fallback"))
		})
	}
}

func TestDetector_Detect_Folder(t *testing.T) {
	files := tree.NewTree()
	files.Put("go.mod", tree.NewFolderNode(nil, ""))
	assert.EqualValues(t, &project.Project{Type: "unknown", Name: "demo"}, project.New().Detect(files, "demo"))
}

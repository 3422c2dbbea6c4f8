package project

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/viant/gitinsight/tree"
	"golang.org/x/mod/modfile"
)

// Project represents detected project information
type Project struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Manifest string `json:"manifest,omitempty"`
}

// Detector identifies project type and name from repository root level files
type Detector struct {
	// Common project root marker files, first match wins
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"go.mod",           // Go projects
			"pom.xml",          // Java/Maven projects
			"build.gradle",     // Java/Gradle projects
			"package.json",     // JavaScript/Node projects
			"composer.json",    // PHP projects
			"Cargo.toml",       // Rust projects
			"pyproject.toml",   // Python projects
			"requirements.txt", // Python projects
			"Gemfile",          // Ruby projects
		},
	}
}

// Detect returns project info for a fetched tree, fallback is used when no name can be extracted
func (d *Detector) Detect(files *tree.Tree, fallback string) *Project {
	info := &Project{Type: "unknown", Name: fallback}
	for _, marker := range d.markers {
		node, ok := files.Get(marker)
		if !ok || !node.IsFile() {
			continue
		}
		info.Type = determineProjectType(marker)
		info.Manifest = marker
		if name := extractProjectName(marker, node.File.Content); name != "" {
			info.Name = name
		}
		return info
	}
	return info
}

// extractProjectName attempts to extract a project name from manifest content
func extractProjectName(marker, content string) string {
	if content == "" || strings.HasPrefix(content, "// ") {
		return "" // placeholder content
	}
	switch marker {
	case "go.mod":
		return modfile.ModulePath([]byte(content))
	case "package.json", "composer.json":
		return extractJSONName(content)
	case "pom.xml":
		return extractMavenProjectName(content)
	case "build.gradle":
		return firstSubmatch(gradleNameExpr, content)
	case "Cargo.toml", "pyproject.toml":
		return firstSubmatch(tomlNameExpr, content)
	}
	return ""
}

var (
	artifactIDExpr = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
	gradleNameExpr = regexp.MustCompile(`(?m)^\s*rootProject\.name\s*=\s*['"]([^'"]+)['"]`)
	tomlNameExpr   = regexp.MustCompile(`(?m)^\s*name\s*=\s*["']([^"']+)["']`)
)

func extractJSONName(content string) string {
	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

// extractMavenProjectName skips the parent artifactId when a parent section is declared
func extractMavenProjectName(content string) string {
	if index := strings.Index(content, "</parent>"); index != -1 {
		content = content[index:]
	}
	return firstSubmatch(artifactIDExpr, content)
}

func firstSubmatch(expr *regexp.Regexp, content string) string {
	matches := expr.FindStringSubmatch(content)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(matches[1])
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "go.mod":
		return "go"
	case "pom.xml", "build.gradle":
		return "java"
	case "package.json":
		return "javascript"
	case "Cargo.toml":
		return "rust"
	case "pyproject.toml", "requirements.txt":
		return "python"
	case "Gemfile":
		return "ruby"
	case "composer.json":
		return "php"
	default:
		return "unknown"
	}
}

package tree

import "strings"

// Unknown is the language tag of unmapped extensions
const Unknown = "unknown"

var languages = map[string]string{
	"js":    "javascript",
	"jsx":   "javascript",
	"ts":    "javascript",
	"tsx":   "javascript",
	"py":    "python",
	"java":  "java",
	"html":  "html",
	"css":   "css",
	"scss":  "css",
	"json":  "json",
	"md":    "markdown",
	"c":     "c",
	"cpp":   "cpp",
	"h":     "c",
	"hpp":   "cpp",
	"cs":    "csharp",
	"go":    "go",
	"rb":    "ruby",
	"php":   "php",
	"rs":    "rust",
	"swift": "swift",
	"kt":    "kotlin",
	"xml":   "xml",
	"yml":   "yaml",
	"yaml":  "yaml",
	"sh":    "shell",
	"bat":   "batch",
	"ps1":   "powershell",
}

// Language returns language tag for a file name based on text after the final dot (case-insensitive)
func Language(name string) string {
	index := strings.LastIndex(name, ".")
	if index == -1 {
		return Unknown
	}
	if language, ok := languages[strings.ToLower(name[index+1:])]; ok {
		return language
	}
	return Unknown
}

var manifests = map[string]bool{
	"package.json":     true,
	"requirements.txt": true,
	"Gemfile":          true,
	"build.gradle":     true,
	"pom.xml":          true,
	"Cargo.toml":       true,
	"composer.json":    true,
}

// IsManifest returns true if name exactly matches a dependency manifest file name
func IsManifest(name string) bool {
	return manifests[name]
}

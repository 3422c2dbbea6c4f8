package tree

import "strings"

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"bin":          true,
	"obj":          true,
	"assets":       true,
	"images":       true,
	"vendor":       true,
	"test":         true,
	"tests":        true,
	"lib":          true,
	".github":      true,
}

var skipExtensions = []string{
	".exe", ".dll", ".so", ".dylib", ".obj", ".bin",
	".png", ".jpg", ".jpeg", ".gif", ".ico", ".svg",
	".mp3", ".mp4", ".wav", ".avi", ".mov",
	".zip", ".gz", ".tar", ".7z", ".rar",
}

// Skip returns true if an entry should be excluded from the tree: any segment of its
// repository path is a build, dependency, vendor, test or VCS directory, or its name has
// a binary, media or archive extension
func Skip(name, location string) bool {
	for _, segment := range splitPath(location) {
		if skipDirs[segment] {
			return true
		}
	}
	lowerName := strings.ToLower(name)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(lowerName, ext) {
			return true
		}
	}
	return false
}

package repository

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	repoURLExpr  = regexp.MustCompile(`^https?://(www\.)?github\.com/([A-Za-z0-9-]+)/([A-Za-z0-9._-]+?)(\.git)?/?$`)
	repoNameExpr = regexp.MustCompile(`^([A-Za-z0-9-]+)/([A-Za-z0-9._-]+)$`)
)

// ParseURL extracts owner and repository name from a GitHub URL or an "owner/repo" reference
func ParseURL(location string) (owner string, name string, err error) {
	location = strings.TrimSpace(location)
	if matches := repoURLExpr.FindStringSubmatch(location); matches != nil {
		return matches[2], matches[3], nil
	}
	if matches := repoNameExpr.FindStringSubmatch(location); matches != nil {
		return matches[1], matches[2], nil
	}
	return "", "", fmt.Errorf("invalid repository URL %q, expected https://github.com/<owner>/<repository>", location)
}

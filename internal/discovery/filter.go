package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters files by name pattern using wildcard matching
// Supports patterns like "*Controller.php" or "*Payment*"
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string

	for _, file := range files {
		name := filepath.Base(file)

		// filepath.Match supports * and ? wildcards
		matched, err := filepath.Match(pattern, name)
		if err == nil && matched {
			filtered = append(filtered, file)
			continue
		}

		if strings.ContainsAny(pattern, "*?") {
			if matchParts(name, pattern) {
				filtered = append(filtered, file)
			}
			continue
		}

		// No wildcards: plain substring match
		if strings.Contains(name, pattern) {
			filtered = append(filtered, file)
		}
	}

	return filtered
}

// matchParts reports whether every non-empty "*"-separated part of pattern occurs in name, in order
func matchParts(name, pattern string) bool {
	found := false
	rest := name
	for _, part := range strings.Split(pattern, "*") {
		if part == "" || strings.Contains(part, "?") {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		found = true
	}
	return found
}

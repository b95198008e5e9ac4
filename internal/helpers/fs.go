// Package helpers provides utility functions.
package helpers

import (
	"path/filepath"
	"strings"
)

// GetPathType returns a safe representation of file paths for logging.
func GetPathType(path string) string {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasPrefix(base, ".#"):
		return "temporary"
	case base == "_index.md", base == "index.md":
		return "index"
	case strings.HasSuffix(base, ".md"):
		return "markdown"
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return "yaml"
	case base == "go.mod":
		return "gomod"
	case strings.HasSuffix(base, ".go"):
		return "go"
	case filepath.Ext(base) == "":
		return "directory"
	}
	return "other"
}

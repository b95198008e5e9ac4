package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPathType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"docs/guide/_index.md":    "index",
		"docs/index.md":           "index",
		"docs/guide/install.md":   "markdown",
		"docs/guide/.install.swp": "temporary",
		"docs/guide/install.md~":  "temporary",
		"docnav.yaml":             "yaml",
		"internal/nav/path.go":    "go",
		"go.mod":                  "gomod",
		"docs/guide":              "directory",
		"docs/assets/diagram.png": "other",
	}

	for path, want := range tests {
		require.Equal(t, want, GetPathType(path), path)
	}
}

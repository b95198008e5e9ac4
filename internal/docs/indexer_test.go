package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		file := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o700))
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	}
	return root
}

func sampleDocs(t *testing.T) string {
	t.Helper()

	return writeDocs(t, map[string]string{
		"_index.md":                "---\ntitle: Home\n---\nWelcome.\n",
		"guide/_index.md":          "---\ntitle: Guide\nweight: 10\n---\n# Guide\n",
		"guide/install.md":         "---\ntitle: Install\nweight: 1\naliases:\n  - /setup/\n---\nInstall it.\n",
		"guide/upgrade.md":         "---\ntitle: Upgrade\nweight: 2\n---\nUpgrade it.\n",
		"api/_index.md":            "---\ntitle: API\nweight: 20\nmenuTitle: API reference\n---\n",
		"drafts/secret.md":         "---\ntitle: Secret\n---\n",
		"guide/broken.md":          "---\ntitle: [unterminated\n---\n",
		"guide/notes.txt":          "not markdown",
		"node_modules/pkg/read.md": "---\ntitle: Vendored\n---\n",
	})
}

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	root := sampleDocs(t)

	index, err := BuildIndex(root, []string{"drafts/**", "**/node_modules/**"}, nil)
	require.NoError(t, err)

	var slugs []string
	for _, s := range index.Sections {
		slugs = append(slugs, s.Slug)
	}
	require.Equal(t, []string{"", "guide/install", "guide/upgrade", "guide", "api"}, slugs)

	install := index.BySlug["guide/install"]
	require.NotNil(t, install)
	require.Equal(t, "/guide/install/", install.URLPath)
	require.Equal(t, "guide/install.md", install.RelPath)
	require.Equal(t, "guide", install.Category)
	require.Equal(t, []string{"guide"}, install.Hierarchy)
	require.False(t, install.IsIndex)

	require.Same(t, install, index.BySlug["setup"])
	require.Same(t, install, index.ByURLPath["/setup"])
	require.Same(t, install, index.ByURLPath["/guide/install"])
	require.Same(t, index.BySlug[""], index.ByURLPath[""])
	require.True(t, index.BySlug["api"].IsIndex)
}

func TestWriteAndLoadJSON(t *testing.T) {
	t.Parallel()

	root := sampleDocs(t)
	index, err := BuildIndex(root, []string{"drafts/**"}, nil)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "nested", "sections.json")
	require.NoError(t, index.WriteJSON(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	loaded, err := LoadJSON(data)
	require.NoError(t, err)
	require.Equal(t, index.Len(), loaded.Len())
	require.Equal(t, root, loaded.Root)
	require.Equal(t, "Upgrade", loaded.BySlug["guide/upgrade"].Title)
	require.Equal(t, "Install", loaded.ByURLPath["/setup"].Title)
}

func TestLoadJSONInvalid(t *testing.T) {
	t.Parallel()

	_, err := LoadJSON([]byte("{"))
	require.Error(t, err)
}

func TestBuildIndexMissingDir(t *testing.T) {
	t.Parallel()

	_, err := BuildIndex(filepath.Join(t.TempDir(), "missing"), nil, nil)
	require.Error(t, err)
}

func TestExcluded(t *testing.T) {
	t.Parallel()

	patterns := []string{"drafts/**", "**/*.tmp.md"}
	require.True(t, Excluded("drafts/a.md", patterns))
	require.True(t, Excluded("guide/x.tmp.md", patterns))
	require.False(t, Excluded("guide/x.md", patterns))
	require.False(t, Excluded("guide/x.md", nil))
}

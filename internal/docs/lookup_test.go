package docs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newSampleFinder(t *testing.T) *Finder {
	t.Helper()

	index, err := BuildIndex(sampleDocs(t), []string{"drafts/**", "**/node_modules/**"}, nil)
	require.NoError(t, err)
	return NewFinder(index)
}

func TestFinderLookups(t *testing.T) {
	t.Parallel()

	f := newSampleFinder(t)

	section, err := f.GetBySlug("/guide/install/")
	require.NoError(t, err)
	require.Equal(t, "Install", section.Title)

	section, err = f.GetByURLPath("/guide/upgrade")
	require.NoError(t, err)
	require.Equal(t, "Upgrade", section.Title)

	section, err = f.GetByURLPath("guide/upgrade/")
	require.NoError(t, err)
	require.Equal(t, "Upgrade", section.Title)

	home, err := f.GetByURLPath("/")
	require.NoError(t, err)
	require.Equal(t, "Home", home.Title)

	_, err = f.GetByURLPath("/guide/missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.GetBySlug("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFinderLookupByEscapedURLPath(t *testing.T) {
	t.Parallel()

	index, err := BuildIndex(writeDocs(t, map[string]string{
		"guide/getting started.md": "---\ntitle: Getting started\n---\n",
		"guide/café.md":            "---\ntitle: Café\n---\n",
	}), nil, nil)
	require.NoError(t, err)
	f := NewFinder(index)

	for path, title := range map[string]string{
		"/guide/getting started/":   "Getting started",
		"/guide/getting%20started/": "Getting started",
		"/guide/café":               "Café",
		"/guide/caf%C3%A9/":         "Café",
	} {
		section, err := f.GetByURLPath(path)
		require.NoError(t, err, path)
		require.Equal(t, title, section.Title, path)
	}
}

func TestFinderCategoriesAndSearch(t *testing.T) {
	t.Parallel()

	f := newSampleFinder(t)

	require.Equal(t, []string{"guide", "api"}, f.GetCategories())
	require.Len(t, f.GetByCategory("guide"), 3)
	require.Len(t, f.Search("UPGRADE"), 1)
	require.Empty(t, f.Search("kubernetes"))
}

func TestFinderReadContent(t *testing.T) {
	t.Parallel()

	f := newSampleFinder(t)

	section, err := f.GetBySlug("guide/install")
	require.NoError(t, err)

	body, err := f.ReadContent(section)
	require.NoError(t, err)
	require.Equal(t, "Install it.\n", string(body))
}

func TestNewFinderNilIndex(t *testing.T) {
	t.Parallel()

	f := NewFinder(nil)
	require.Empty(t, f.GetAll())
	_, err := f.GetByURLPath("/")
	require.ErrorIs(t, err, ErrNotFound)
}

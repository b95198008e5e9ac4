package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/docnav/internal/config"
)

func TestBuildWritesEveryPage(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, func(c *config.Config) { c.BuildConcurrency = 2 })
	out := t.TempDir()

	result, err := s.Build(context.Background(), out)
	require.NoError(t, err)
	require.Equal(t, 6, result.Pages)
	require.Equal(t, 1, result.Aliases)

	for _, rel := range []string{
		"index.html",
		"guide/index.html",
		"guide/install/index.html",
		"guide/upgrade/index.html",
		"api/index.html",
		"api/http/index.html",
		"404.html",
		"_static/docnav.js",
		"_static/docnav.css",
	} {
		require.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}

	data, err := os.ReadFile(filepath.Join(out, "guide", "upgrade", "index.html"))
	require.NoError(t, err)
	doc := queryHTML(t, data)
	require.Equal(t, "/guide/upgrade/", doc.Find("#sidebar a.current").AttrOr("href", ""))

	alias, err := os.ReadFile(filepath.Join(out, "setup", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(alias), `content="0; url=/guide/install/"`)
}

func TestBuildIsRepeatable(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, nil)
	out := t.TempDir()

	_, err := s.Build(context.Background(), out)
	require.NoError(t, err)
	_, err = s.Build(context.Background(), out)
	require.NoError(t, err)
}

func TestBuildCancelled(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Build(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildActivatesEscapedPaths(t *testing.T) {
	t.Parallel()

	s := newTestSiteFrom(t, escapedDocs, nil)
	out := t.TempDir()

	_, err := s.Build(context.Background(), out)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "guide", "café", "index.html"))
	require.NoError(t, err)
	doc := queryHTML(t, data)
	require.Equal(t, "/guide/caf%C3%A9/", doc.Find("#sidebar a.current").AttrOr("href", ""))
	require.True(t, doc.Find("#nav-guide").HasClass("show"))
}

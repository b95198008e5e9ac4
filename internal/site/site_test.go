package site

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/grafana/docnav/internal/config"
	"github.com/grafana/docnav/internal/docs"
)

var siteDocs = map[string]string{
	"_index.md":        "---\ntitle: Home\n---\n# Welcome\n\nStart with the [guide](/guide/).\n",
	"guide/_index.md":  "---\ntitle: Guide\nweight: 1\n---\nHow to use the tool.\n",
	"guide/install.md": "---\ntitle: Install\nweight: 1\naliases:\n  - setup\n---\nRun the installer.\n\n```sh\nmake install\n```\n",
	"guide/upgrade.md": "---\ntitle: Upgrade\nweight: 2\n---\nUpgrade in place.\n",
	"api/_index.md":    "---\ntitle: API\nweight: 2\n---\nReference.\n",
	"api/http.md":      "---\ntitle: HTTP\n---\n# HTTP client\n\nSends requests.\n",
}

var escapedDocs = map[string]string{
	"_index.md":                "---\ntitle: Home\n---\nWelcome.\n",
	"guide/_index.md":          "---\ntitle: Guide\n---\nGuides.\n",
	"guide/getting started.md": "---\ntitle: Getting started\nweight: 1\n---\nFirst steps.\n",
	"guide/café.md":            "---\ntitle: Café\nweight: 2\n---\nCoffee.\n",
}

func writeSiteDocs(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		file := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o700))
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	}
	return root
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestSite(t *testing.T, tweak func(*config.Config)) *Site {
	t.Helper()
	return newTestSiteFrom(t, siteDocs, tweak)
}

func newTestSiteFrom(t *testing.T, files map[string]string, tweak func(*config.Config)) *Site {
	t.Helper()

	cfg := config.Default()
	cfg.DocsDir = writeSiteDocs(t, files)
	cfg.Title = "Test Docs"
	if tweak != nil {
		tweak(cfg)
	}

	index, err := LoadIndex(cfg, discardLogger())
	require.NoError(t, err)

	s, err := New(cfg, docs.NewFinder(index), discardLogger())
	require.NoError(t, err)
	return s
}

func queryHTML(t *testing.T, data []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestNewWithoutFinder(t *testing.T) {
	t.Parallel()

	s, err := New(nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, s.Finder().Index().Len())

	sidebar, err := s.Sidebar()
	require.NoError(t, err)
	require.Contains(t, string(sidebar), `id="sidebar"`)
}

func TestReindexPicksUpNewFiles(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, nil)
	_, err := s.Finder().GetBySlug("guide/configure")
	require.ErrorIs(t, err, docs.ErrNotFound)

	file := filepath.Join(s.cfg.DocsDir, "guide", "configure.md")
	require.NoError(t, os.WriteFile(file, []byte("---\ntitle: Configure\n---\n"), 0o600))
	require.NoError(t, s.Reindex())

	section, err := s.Finder().GetBySlug("guide/configure")
	require.NoError(t, err)
	require.Equal(t, "/guide/configure/", section.URLPath)
}

func TestSidebarState(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, func(c *config.Config) { c.ScrollLeadIn = 10 })

	doc, report, err := s.SidebarState("/api/http")
	require.NoError(t, err)
	require.True(t, doc.HasSidebar())

	require.Len(t, report.Current, 1)
	require.Equal(t, "/api/http/", report.Current[0].Href)
	require.Len(t, report.Expanded, 1)
	require.Equal(t, SectionID("api"), report.Expanded[0].ID)
	require.True(t, report.Scrolled)
	require.Equal(t, 3*28-10, report.ScrollTop)
}

var siteModule = map[string]string{
	"go.mod":                    "module example.com/tool\n\ngo 1.22\n",
	"tool.go":                   "// Package tool does the work.\npackage tool\n\n// Run runs the tool.\nfunc Run() error { return nil }\n",
	"internal/format/format.go": "// Package format shapes output.\npackage format\n\n// Title upper-cases s.\nfunc Title(s string) string { return s }\n",
}

func newPackageSite(t *testing.T) *Site {
	t.Helper()
	return newTestSite(t, func(c *config.Config) { c.PackagesDir = writeSiteDocs(t, siteModule) })
}

func TestLoadIndexAddsPackages(t *testing.T) {
	t.Parallel()

	s := newPackageSite(t)

	section, err := s.Finder().GetByURLPath("/pkg/internal/format/")
	require.NoError(t, err)
	require.Equal(t, docs.KindPackage, section.Kind)
	require.Equal(t, "example.com/tool/internal/format", section.ImportPath)
}

func TestLoadIndexRequiresModule(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.DocsDir = writeSiteDocs(t, siteDocs)
	cfg.PackagesDir = t.TempDir()

	_, err := LoadIndex(cfg, discardLogger())
	require.ErrorContains(t, err, "go.mod")
}

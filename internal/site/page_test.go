package site

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/docnav/internal/config"
)

func TestRenderPageActivatesSidebar(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, nil)
	section, err := s.Finder().GetBySlug("guide/install")
	require.NoError(t, err)

	var buf bytes.Buffer
	report, err := s.RenderPage(&buf, section, section.URLPath)
	require.NoError(t, err)

	require.Len(t, report.Current, 1)
	require.Len(t, report.Expanded, 1)
	require.Equal(t, SectionID("guide"), report.Expanded[0].ID)

	doc := queryHTML(t, buf.Bytes())

	current := doc.Find("#sidebar a.current")
	require.Equal(t, 1, current.Length())
	require.Equal(t, "/guide/install/", current.AttrOr("href", ""))
	require.Equal(t, "page", current.AttrOr("aria-current", ""))

	require.True(t, doc.Find("#nav-guide").HasClass("show"))
	require.False(t, doc.Find("#nav-api").HasClass("show"))

	toggle := doc.Find(`[data-target="#nav-guide"]`)
	require.False(t, toggle.HasClass("collapsed"))
	require.Equal(t, "true", toggle.AttrOr("aria-expanded", ""))
	require.True(t, doc.Find(`[data-target="#nav-api"]`).HasClass("collapsed"))

	// Install is the third row, which is above the lead-in.
	require.Equal(t, "0", doc.Find("#sidebar").AttrOr("data-scroll-top", ""))

	require.Equal(t, "Install · Test Docs", doc.Find("title").Text())
	require.Equal(t, "Install", doc.Find("h1.page-title").Text())
	require.Contains(t, doc.Find("main.content").Text(), "Run the installer.")
	require.Equal(t, 1, doc.Find("main.content pre").Length())
}

func TestRenderPageScrollsSidebar(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, func(c *config.Config) {
		c.ScrollLeadIn = 10
		c.RowHeight = 30
	})
	section, err := s.Finder().GetByURLPath("/api/http/")
	require.NoError(t, err)

	var buf bytes.Buffer
	report, err := s.RenderPage(&buf, section, section.URLPath)
	require.NoError(t, err)
	require.Equal(t, 3*30-10, report.ScrollTop)

	doc := queryHTML(t, buf.Bytes())
	require.Equal(t, "80", doc.Find("#sidebar").AttrOr("data-scroll-top", ""))
	require.True(t, doc.Find("#nav-api").HasClass("show"))
	require.False(t, doc.Find("#nav-guide").HasClass("show"))

	// The page has its own heading.
	require.Equal(t, 0, doc.Find("h1.page-title").Length())
	require.Equal(t, "HTTP client", doc.Find("main.content h1").Text())
}

func TestRenderPageForSectionIndex(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, nil)
	section, err := s.Finder().GetBySlug("guide")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = s.RenderPage(&buf, section, "/guide")
	require.NoError(t, err)

	doc := queryHTML(t, buf.Bytes())
	require.Equal(t, "/guide/", doc.Find("#sidebar a.current").AttrOr("href", ""))
	require.True(t, doc.Find("#nav-guide").HasClass("show"))
}

func TestRenderPageCustomSidebarID(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, func(c *config.Config) { c.SidebarID = "docs-nav" })
	section, err := s.Finder().GetBySlug("api")
	require.NoError(t, err)

	var buf bytes.Buffer
	report, err := s.RenderPage(&buf, section, section.URLPath)
	require.NoError(t, err)
	require.Len(t, report.Current, 1)

	doc := queryHTML(t, buf.Bytes())
	require.Equal(t, 0, doc.Find("#sidebar").Length())
	require.Equal(t, "/api/", doc.Find("#docs-nav a.current").AttrOr("href", ""))
}

func TestRenderNotFoundLeavesSidebarInactive(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, nil)

	var buf bytes.Buffer
	require.NoError(t, s.RenderNotFound(&buf, "/nope/<b>"))

	doc := queryHTML(t, buf.Bytes())
	require.Equal(t, "Page not found", doc.Find("h1.page-title").Text())
	require.Equal(t, "/nope/<b>", doc.Find("main.content code").Text())
	require.Equal(t, 0, doc.Find(".current").Length())
	require.Equal(t, 0, doc.Find(".collapse.show").Length())
	require.Equal(t, 6, doc.Find("#sidebar a").Length())
}

func TestRenderPageActivatesEscapedPaths(t *testing.T) {
	t.Parallel()

	s := newTestSiteFrom(t, escapedDocs, nil)

	for _, slug := range []string{"guide/getting started", "guide/café"} {
		section, err := s.Finder().GetBySlug(slug)
		require.NoError(t, err)

		var buf bytes.Buffer
		report, err := s.RenderPage(&buf, section, section.URLPath)
		require.NoError(t, err)
		require.Len(t, report.Current, 1, slug)
		require.Equal(t, SectionID("guide"), report.Expanded[0].ID, slug)

		doc := queryHTML(t, buf.Bytes())
		require.Equal(t, 1, doc.Find("#sidebar a.current").Length(), slug)
		require.True(t, doc.Find("#nav-guide").HasClass("show"), slug)
	}
}

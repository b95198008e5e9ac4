package site

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, target string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func TestHandlerServesActivatedPage(t *testing.T) {
	t.Parallel()

	h := newTestSite(t, nil).Handler()

	resp := get(t, h, "/guide/upgrade/")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	doc := queryHTML(t, body)
	require.Equal(t, "/guide/upgrade/", doc.Find("#sidebar a.current").AttrOr("href", ""))
	require.True(t, doc.Find("#nav-guide").HasClass("show"))
}

func TestHandlerActivatesEscapedPaths(t *testing.T) {
	t.Parallel()

	h := newTestSiteFrom(t, escapedDocs, nil).Handler()

	for _, target := range []string{"/guide/getting%20started/", "/guide/caf%C3%A9/"} {
		resp := get(t, h, target)
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, target)

		doc := queryHTML(t, body)
		current := doc.Find("#sidebar a.current")
		require.Equal(t, 1, current.Length(), target)
		require.Equal(t, target, current.AttrOr("href", ""), target)
		require.True(t, doc.Find("#nav-guide").HasClass("show"), target)
	}

	resp := get(t, h, "/guide/caf%C3%A9")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	require.Equal(t, "/guide/caf%C3%A9/", resp.Header.Get("Location"))
}

func TestHandlerRedirectsToCanonicalPath(t *testing.T) {
	t.Parallel()

	h := newTestSite(t, nil).Handler()

	tests := map[string]string{
		"/guide/upgrade":   "/guide/upgrade/",
		"/setup/":          "/guide/install/",
		"/guide?tab=linux": "/guide/?tab=linux",
	}
	for target, location := range tests {
		resp := get(t, h, target)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusMovedPermanently, resp.StatusCode, target)
		require.Equal(t, location, resp.Header.Get("Location"), target)
	}
}

func TestHandlerNotFound(t *testing.T) {
	t.Parallel()

	h := newTestSite(t, nil).Handler()

	resp := get(t, h, "/missing/page/")
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	doc := queryHTML(t, body)
	require.Equal(t, 1, doc.Find("#sidebar").Length())
	require.Equal(t, 0, doc.Find("#sidebar a.current").Length())
}

func TestHandlerServesStaticAssets(t *testing.T) {
	t.Parallel()

	h := newTestSite(t, nil).Handler()

	for _, target := range []string{"/_static/docnav.js", "/_static/docnav.css"} {
		resp := get(t, h, target)
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, target)
		require.NotEmpty(t, body, target)
	}

	resp := get(t, h, "/_static/missing.js")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandlerHead(t *testing.T) {
	t.Parallel()

	h := newTestSite(t, nil).Handler()

	req := httptest.NewRequest(http.MethodHead, "/api/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerServesPackagePages(t *testing.T) {
	t.Parallel()

	h := newPackageSite(t).Handler()

	resp := get(t, h, "/pkg/internal/format/")
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := queryHTML(t, body)
	current := doc.Find("#sidebar a.current")
	require.Equal(t, 1, current.Length())
	require.Equal(t, "/pkg/internal/format/", current.AttrOr("href", ""))
	require.True(t, doc.Find("#"+SectionID("pkg")).HasClass("show"))
	require.Contains(t, doc.Find("main").Text(), "Package format")
	require.Equal(t, 1, doc.Find("#Title").Length())

	resp = get(t, h, "/pkg/")
	body, err = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `href="/pkg/internal/format/"`)
}

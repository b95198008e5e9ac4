// Package docnav provides the embedded page template and static assets of
// the documentation site.
package docnav

import "embed"

// PageTemplate is the html/template source every documentation page is rendered with.
//
//go:embed templates/page.html
var PageTemplate string

// Static contains the stylesheet and script served under /_static/.
//
//go:embed static/*
var Static embed.FS

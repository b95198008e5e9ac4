package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"

	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/markup"
	"github.com/grafana/docnav/internal/nav"
)

type pageData struct {
	Title       string
	ShowTitle   bool
	Description string
	SiteTitle   string
	Sidebar     template.HTML
	Content     template.HTML
	RootPath    string
	StaticPath  string
}

// RenderPage renders section as a complete page and activates its sidebar
// for currentPath, normally the section's own URL path.
func (s *Site) RenderPage(w io.Writer, section *docs.Section, currentPath string) (nav.Report, error) {
	source, err := s.Finder().ReadContent(section)
	if err != nil {
		return nav.Report{}, err
	}

	var content bytes.Buffer
	if err := s.md.Convert(source, &content); err != nil {
		return nav.Report{}, fmt.Errorf("failed to convert %s: %w", section.RelPath, err)
	}

	title := section.Title
	if title == "" {
		title = extractTitle(source, section)
	}

	data := pageData{
		Title:       title,
		ShowTitle:   !hasLeadingHeading(source),
		Description: section.Description,
		//nolint:gosec // Markdown sources are trusted site content.
		Content: template.HTML(content.String()),
	}

	return s.render(w, data, currentPath, true)
}

// RenderNotFound renders the 404 page. Its sidebar is not activated.
func (s *Site) RenderNotFound(w io.Writer, requestPath string) error {
	data := pageData{
		Title:     "Page not found",
		ShowTitle: true,
		//nolint:gosec // The request path is escaped.
		Content: template.HTML("<p>No page exists at <code>" + esc(requestPath) + "</code>.</p>"),
	}
	_, err := s.render(w, data, "", false)
	return err
}

func (s *Site) render(w io.Writer, data pageData, currentPath string, activate bool) (nav.Report, error) {
	sidebar, err := s.Sidebar()
	if err != nil {
		return nav.Report{}, err
	}

	data.Sidebar = sidebar
	data.SiteTitle = s.cfg.Title
	data.RootPath = "/"
	data.StaticPath = StaticPrefix

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		return nav.Report{}, fmt.Errorf("failed to execute page template: %w", err)
	}

	if !activate {
		if _, err := buf.WriteTo(w); err != nil {
			return nav.Report{}, fmt.Errorf("failed to write page: %w", err)
		}
		return nav.Report{}, nil
	}

	doc, err := markup.Parse(&buf, s.cfg.MarkupOptions())
	if err != nil {
		return nav.Report{}, err
	}

	report := doc.Activate(s.activator, currentPath)

	if err := doc.Render(w); err != nil {
		return nav.Report{}, err
	}

	return report, nil
}

// extractTitle returns the first level-one heading of a markdown body, or
// the sidebar label of the section.
func extractTitle(source []byte, section *docs.Section) string {
	for _, line := range strings.Split(string(source), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	if section.Slug == "" {
		return ""
	}
	return section.NavTitle()
}

func hasLeadingHeading(source []byte) bool {
	for _, line := range strings.Split(string(source), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, "# ")
	}
	return false
}

// outputFile returns the slash-separated file a section is written to in a
// static build.
func outputFile(section *docs.Section) string {
	return path.Join(section.Slug, "index.html")
}

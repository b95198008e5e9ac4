package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/markup"
	"github.com/grafana/docnav/internal/nav"
)

// RenderSidebar renders the navigation markup for a section tree. The home
// page, when given, is the first entry. Every section is closed, every toggle
// collapsed and no link is current; activation happens per page.
func RenderSidebar(id string, home *docs.Section, nodes []*docs.SectionNode) template.HTML {
	if id == "" {
		id = markup.DefaultSidebarID
	}

	var b strings.Builder
	b.WriteString(`<nav id="` + esc(id) + `" class="sidebar" aria-label="Documentation">`)
	b.WriteString(`<ul class="nav-tree">`)
	if home != nil {
		writeEntry(&b, home, nil)
	}
	for _, node := range nodes {
		writeNode(&b, node)
	}
	b.WriteString(`</ul></nav>`)

	//nolint:gosec // Every interpolated value is escaped above.
	return template.HTML(b.String())
}

func writeNode(b *strings.Builder, node *docs.SectionNode) {
	if node == nil {
		return
	}
	writeEntry(b, &node.Section, node.Children)
}

func writeEntry(b *strings.Builder, section *docs.Section, children []*docs.SectionNode) {
	title := esc(section.NavTitle())
	b.WriteString(`<li class="nav-entry"><div class="nav-row">`)

	sectionID := SectionID(section.Slug)
	if len(children) > 0 {
		b.WriteString(`<button type="button" class="nav-toggle ` + markup.ClassCollapsed + `"`)
		b.WriteString(` ` + markup.AttrToggle + `="` + markup.ClassCollapse + `"`)
		b.WriteString(` ` + markup.AttrTarget + `="#` + sectionID + `"`)
		b.WriteString(` aria-controls="` + sectionID + `" aria-expanded="false"`)
		b.WriteString(` aria-label="Toggle ` + title + `"></button>`)
	} else {
		b.WriteString(`<span class="nav-spacer"></span>`)
	}
	b.WriteString(`<a href="` + esc(nav.EscapePath(section.URLPath)) + `">` + title + `</a></div>`)

	if len(children) > 0 {
		b.WriteString(`<ul class="` + markup.ClassCollapse + `" id="` + sectionID + `">`)
		for _, child := range children {
			writeNode(b, child)
		}
		b.WriteString(`</ul>`)
	}

	b.WriteString(`</li>`)
}

// SectionID returns the element id of the collapsible section holding the
// children of slug. ASCII letters and digits are kept, path separators become
// "-" and every other byte is written as "_" followed by two hex digits, so
// distinct slugs never share an id.
func SectionID(slug string) string {
	var b strings.Builder
	b.WriteString("nav-")
	if slug == "" {
		b.WriteString("_home")
		return b.String()
	}
	for i := 0; i < len(slug); i++ {
		c := slug[i]
		switch {
		case c == '/':
			b.WriteByte('-')
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return b.String()
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

func stringReader(h template.HTML) *strings.Reader {
	return strings.NewReader(string(h))
}

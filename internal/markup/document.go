// Package markup binds the nav model to rendered HTML pages. It parses the
// sidebar of a page into a nav.Tree and writes the tree state back as
// classes and attributes.
//
// Sidebar markup conventions:
//
//   - the viewport is the element whose id is Options.SidebarID;
//   - an element with class "collapse" is a collapsible section, open when it
//     also has class "show";
//   - an <a href> without data-toggle is a link, current when it has class
//     "current";
//   - a section's toggle is the data-toggle="collapse" element inside the
//     section's previous element sibling, or any element whose data-target
//     names the section id; it is collapsed when it has class "collapsed";
//   - a link's detail section is the "collapse" element right after the
//     link's parent element.
package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/grafana/docnav/internal/nav"
)

// Class names and attributes understood by the binding.
const (
	ClassCollapse  = "collapse"
	ClassShow      = "show"
	ClassCurrent   = "current"
	ClassCollapsed = "collapsed"

	AttrToggle    = "data-toggle"
	AttrTarget    = "data-target"
	AttrScrollTop = "data-scroll-top"
)

// DefaultSidebarID is the id of the sidebar viewport element.
const DefaultSidebarID = "sidebar"

// Options configures parsing.
type Options struct {
	// SidebarID is the id of the scrollable sidebar container.
	SidebarID string

	// RowHeight is the estimated height of a sidebar row used to compute
	// scroll offsets. Zero or negative disables scrolling.
	RowHeight int
}

func (o Options) withDefaults() Options {
	if o.SidebarID == "" {
		o.SidebarID = DefaultSidebarID
	}
	return o
}

// Document is a parsed page together with the navigation tree of its sidebar.
type Document struct {
	// Tree is the sidebar navigation tree. It is empty when the page has no sidebar.
	Tree *nav.Tree

	root     *html.Node
	viewport *html.Node
	elements map[*nav.Node]*html.Node
	nodes    map[*html.Node]*nav.Node
	toggles  map[*nav.Toggle]*html.Node
}

// Parse reads an HTML page and builds the navigation tree of its sidebar.
// A page without a sidebar yields an empty tree, not an error.
func Parse(r io.Reader, opts Options) (*Document, error) {
	opts = opts.withDefaults()

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	d := &Document{
		Tree:     nav.NewTree(),
		root:     root,
		elements: make(map[*nav.Node]*html.Node),
		nodes:    make(map[*html.Node]*nav.Node),
		toggles:  make(map[*nav.Toggle]*html.Node),
	}

	sel := goquery.NewDocumentFromNode(root).Find(`[id=` + strconv.Quote(opts.SidebarID) + `]`)
	if sel.Length() == 0 {
		return d, nil
	}
	d.viewport = sel.Get(0)

	scrollTop, _ := strconv.Atoi(attr(d.viewport, AttrScrollTop))
	d.Tree.Viewport = &nav.Viewport{ScrollTop: scrollTop}
	d.Tree.Layout = nav.RowLayout{RowHeight: opts.RowHeight}

	d.build(d.Tree.Root, d.viewport)
	d.associate()

	return d, nil
}

// HasSidebar reports whether the page contains the sidebar viewport.
func (d *Document) HasSidebar() bool {
	return d.viewport != nil
}

func (d *Document) build(parent *nav.Node, el *html.Node) {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		switch {
		case hasClass(c, ClassCollapse):
			section := nav.Section(attr(c, "id"), nil)
			section.Open = hasClass(c, ClassShow)
			parent.Append(section)
			d.bind(section, c)
			d.build(section, c)

		case c.DataAtom == atom.A && hasAttr(c, "href") && !isToggle(c):
			link := nav.Link(text(c), attr(c, "href"))
			link.ID = attr(c, "id")
			link.Current = hasClass(c, ClassCurrent)
			parent.Append(link)
			d.bind(link, c)

		default:
			d.build(parent, c)
		}
	}
}

func (d *Document) bind(n *nav.Node, el *html.Node) {
	d.elements[n] = el
	d.nodes[el] = n
}

// associate links sections to their toggles and links to their detail sections.
func (d *Document) associate() {
	sidebar := goquery.NewDocumentFromNode(d.viewport)

	for n, el := range d.elements {
		switch {
		case n.Collapsible:
			toggle := findToggle(prevElement(el))
			if toggle == nil && n.ID != "" {
				target := sidebar.Find(`[` + AttrTarget + `=` + strconv.Quote("#"+n.ID) + `]`)
				if target.Length() > 0 {
					toggle = target.Get(0)
				}
			}
			if toggle != nil {
				n.Toggle = &nav.Toggle{Collapsed: hasClass(toggle, ClassCollapsed)}
				d.toggles[n.Toggle] = toggle
			}

		case n.IsLink():
			if el.Parent == nil || el.Parent == d.viewport {
				continue
			}
			next := nextElement(el.Parent)
			if next == nil || !hasClass(next, ClassCollapse) {
				continue
			}
			if detail, ok := d.nodes[next]; ok {
				n.Detail = detail
			}
		}
	}
}

// Sync writes the tree state back into the page markup.
func (d *Document) Sync() {
	for n, el := range d.elements {
		switch {
		case n.Collapsible:
			setClass(el, ClassShow, n.Open)
		case n.IsLink():
			setClass(el, ClassCurrent, n.Current)
			if n.Current {
				setAttr(el, "aria-current", "page")
			} else {
				removeAttr(el, "aria-current")
			}
		}
	}

	for t, el := range d.toggles {
		setClass(el, ClassCollapsed, t.Collapsed)
		setAttr(el, "aria-expanded", strconv.FormatBool(!t.Collapsed))
	}

	if d.viewport != nil && d.Tree.Viewport != nil {
		if d.Tree.Viewport.ScrollTop > 0 || hasAttr(d.viewport, AttrScrollTop) {
			setAttr(d.viewport, AttrScrollTop, strconv.Itoa(d.Tree.Viewport.ScrollTop))
		}
	}
}

// Activate marks the current page in the sidebar and syncs the markup.
func (d *Document) Activate(a *nav.Activator, currentPath string) nav.Report {
	report := a.Activate(currentPath, d.Tree)
	d.Sync()
	if report.Scrolled && d.viewport != nil {
		setAttr(d.viewport, AttrScrollTop, strconv.Itoa(report.ScrollTop))
	}
	return report
}

// Render writes the page.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

// Element returns the HTML element a tree node was parsed from.
func (d *Document) Element(n *nav.Node) *html.Node {
	return d.elements[n]
}

func isToggle(n *html.Node) bool {
	return attr(n, AttrToggle) == ClassCollapse
}

func findToggle(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if isToggle(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if t := findToggle(c); t != nil {
			return t
		}
	}
	return nil
}

func prevElement(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func nextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

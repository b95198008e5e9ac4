package nav

import (
	"log/slog"
)

// DefaultScrollLeadIn is the distance in pixels kept between the top of the
// viewport and the current link after scrolling.
const DefaultScrollLeadIn = 100

// Activator marks the current page in a navigation tree.
type Activator struct {
	scrollLeadIn int
	logger       *slog.Logger
}

// Option configures an Activator.
type Option func(*Activator)

// WithScrollLeadIn sets the margin left above the current link after scrolling.
func WithScrollLeadIn(px int) Option {
	return func(a *Activator) {
		if px >= 0 {
			a.scrollLeadIn = px
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Activator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewActivator creates an Activator.
func NewActivator(opts ...Option) *Activator {
	a := &Activator{
		scrollLeadIn: DefaultScrollLeadIn,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Report describes what an activation did.
type Report struct {
	// Path is the normalized current path.
	Path string

	// Current holds the matched links in document order.
	Current []*Node

	// Expanded holds every section opened on the way to a matched link,
	// including detail sections, in the order they were reached.
	Expanded []*Node

	// Scrolled is true when the viewport scroll position was set.
	Scrolled  bool
	ScrollTop int
}

// Activate applies activation with default options and discards the report.
func Activate(currentPath string, tree *Tree) {
	NewActivator().Activate(currentPath, tree)
}

// Activate marks every link of tree whose resolved path equals the
// canonical currentPath as current and clears the mark on all other links.
// It opens all sections enclosing a match (and its own detail section),
// expands their toggles and scrolls the viewport to the first match. Running it again on the same tree changes nothing.
func (a *Activator) Activate(currentPath string, tree *Tree) Report {
	report := Report{Path: CanonicalPath(currentPath)}
	if tree == nil || tree.Root == nil {
		return report
	}

	for _, link := range tree.Links() {
		target, ok := ResolvePath(link.Href, currentPath)
		if !ok || target != report.Path {
			link.Current = false
			continue
		}
		report.Current = append(report.Current, link)
	}

	if len(report.Current) == 0 {
		a.logger.Debug("No sidebar link matches current path", slog.String("path", report.Path))
		return report
	}

	seen := make(map[*Node]bool)
	expand := func(s *Node) {
		s.Open = true
		if s.Toggle != nil {
			s.Toggle.Collapsed = false
		}
		if !seen[s] {
			seen[s] = true
			report.Expanded = append(report.Expanded, s)
		}
	}

	for _, link := range report.Current {
		link.Current = true
		for _, s := range link.Ancestors() {
			expand(s)
		}
		if link.Detail != nil && link.Detail.Collapsible {
			expand(link.Detail)
		}
	}

	a.scroll(tree, report.Current[0], &report)

	a.logger.Debug("Sidebar activated",
		slog.String("path", report.Path),
		slog.Int("current", len(report.Current)),
		slog.Int("expanded", len(report.Expanded)),
		slog.Bool("scrolled", report.Scrolled),
		slog.Int("scroll_top", report.ScrollTop))

	return report
}

func (a *Activator) scroll(tree *Tree, link *Node, report *Report) {
	if tree.Viewport == nil || tree.Layout == nil {
		return
	}

	offset, ok := tree.Layout.Offset(tree, link)
	if !ok {
		return
	}

	top := max(offset-a.scrollLeadIn, 0)
	tree.Viewport.ScrollTop = top
	report.Scrolled = true
	report.ScrollTop = top
}

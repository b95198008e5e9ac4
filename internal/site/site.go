// Package site renders the documentation index as HTML pages whose sidebar is
// activated for the page being viewed, serves them over HTTP and builds them
// into a static tree.
package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"sync/atomic"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	docnav "github.com/grafana/docnav"
	"github.com/grafana/docnav/internal/config"
	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/logging"
	"github.com/grafana/docnav/internal/markup"
	"github.com/grafana/docnav/internal/nav"
)

// StaticPrefix is the URL prefix the embedded assets are served under.
const StaticPrefix = "/_static/"

// maxSidebarDepth bounds the nesting rendered into the sidebar.
const maxSidebarDepth = 16

// Site renders pages from the current documentation index.
type Site struct {
	cfg       *config.Config
	logger    *slog.Logger
	finder    atomic.Pointer[docs.Finder]
	md        goldmark.Markdown
	page      *template.Template
	static    fs.FS
	activator *nav.Activator
}

// New creates a site over finder. A nil finder means an empty index.
func New(cfg *config.Config, finder *docs.Finder, logger *slog.Logger) (*Site, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = logging.WithComponent(logger, "site")

	page, err := template.New("page").Parse(docnav.PageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	static, err := fs.Sub(docnav.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	opts := append(cfg.ActivatorOptions(), nav.WithLogger(logger))

	s := &Site{
		cfg:       cfg,
		logger:    logger,
		md:        newMarkdown(),
		page:      page,
		static:    static,
		activator: nav.NewActivator(opts...),
	}
	if finder == nil {
		finder = docs.NewFinder(nil)
	}
	s.finder.Store(finder)

	return s, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// Finder returns the finder of the current index.
func (s *Site) Finder() *docs.Finder {
	return s.finder.Load()
}

// SetFinder swaps the index pages are rendered from.
func (s *Site) SetFinder(finder *docs.Finder) {
	s.finder.Store(finder)
}

// LoadIndex indexes the markdown pages of cfg.DocsDir and, when
// cfg.PackagesDir is set, the packages of that Go module.
func LoadIndex(cfg *config.Config, logger *slog.Logger) (*docs.Index, error) {
	index, err := docs.BuildIndex(cfg.DocsDir, cfg.Excludes, logger)
	if err != nil {
		return nil, err
	}

	if cfg.PackagesDir != "" {
		if err := index.AddPackages(cfg.PackageOptions(), logger); err != nil {
			return nil, err
		}
	}

	return index, nil
}

// Reindex rebuilds the index and swaps it in.
func (s *Site) Reindex() error {
	index, err := LoadIndex(s.cfg, s.logger)
	if err != nil {
		return fmt.Errorf("failed to reindex %s: %w", s.cfg.DocsDir, err)
	}
	s.SetFinder(docs.NewFinder(index))
	return nil
}

// Sidebar renders the navigation of the current index with every section
// closed and no link current.
func (s *Site) Sidebar() (template.HTML, error) {
	finder := s.Finder()

	nodes, err := docs.BuildSectionTree(finder.GetAll(), "", maxSidebarDepth)
	if err != nil {
		return "", fmt.Errorf("failed to build sidebar tree: %w", err)
	}

	home, err := finder.GetBySlug("")
	if err != nil {
		home = nil
	}

	return RenderSidebar(s.cfg.SidebarID, home, nodes), nil
}

// SidebarState activates the sidebar for currentPath without rendering a
// page and returns the activated document with its report.
func (s *Site) SidebarState(currentPath string) (*markup.Document, nav.Report, error) {
	sidebar, err := s.Sidebar()
	if err != nil {
		return nil, nav.Report{}, err
	}

	doc, err := markup.Parse(stringReader(sidebar), s.cfg.MarkupOptions())
	if err != nil {
		return nil, nav.Report{}, err
	}

	return doc, doc.Activate(s.activator, currentPath), nil
}

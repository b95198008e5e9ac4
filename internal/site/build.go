package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/nav"
)

// BuildResult summarizes a static build.
type BuildResult struct {
	// Pages is the number of section pages written.
	Pages int

	// Aliases is the number of redirect pages written for section aliases.
	Aliases int
}

// Build renders every section of the current index to
// <outDir>/<slug>/index.html, writes redirect pages for aliases and a
// 404.html, and copies the static assets to <outDir>/_static.
func (s *Site) Build(ctx context.Context, outDir string) (BuildResult, error) {
	finder := s.Finder()
	sections := finder.GetAll()

	//nolint:forbidigo // Creating the output tree.
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BuildResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.BuildConcurrency, 1))

	g.Go(func() error {
		return s.copyStatic(outDir)
	})

	g.Go(func() error {
		var buf bytes.Buffer
		if err := s.RenderNotFound(&buf, ""); err != nil {
			return err
		}
		return writeOutput(outDir, "404.html", buf.Bytes())
	})

	for i := range sections {
		section := &sections[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var buf bytes.Buffer
			report, err := s.RenderPage(&buf, section, section.URLPath)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", section.RelPath, err)
			}

			s.logger.Debug("Built page",
				slog.String("slug", section.Slug),
				slog.Int("expanded_sections", len(report.Expanded)),
				slog.Int("scroll_top", report.ScrollTop))

			return writeOutput(outDir, outputFile(section), buf.Bytes())
		})
	}

	aliases := aliasPages(finder)
	for rel, target := range aliases {
		g.Go(func() error {
			return writeOutput(outDir, rel, redirectPage(target))
		})
	}

	if err := g.Wait(); err != nil {
		return BuildResult{}, err
	}

	result := BuildResult{Pages: len(sections), Aliases: len(aliases)}
	s.logger.Info("Built site",
		slog.String("output", outDir),
		slog.Int("pages", result.Pages),
		slog.Int("aliases", result.Aliases))

	return result, nil
}

func (s *Site) copyStatic(outDir string) error {
	dir := filepath.Join(outDir, strings.Trim(StaticPrefix, "/"))

	//nolint:forbidigo // Replacing assets from a previous build.
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear static assets: %w", err)
	}

	//nolint:forbidigo // Copying embedded assets into the output tree.
	if err := os.CopyFS(dir, s.static); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}

	return nil
}

// aliasPages maps the output file of every alias not owned by a real section
// to the URL path it redirects to.
func aliasPages(finder *docs.Finder) map[string]string {
	pages := make(map[string]string)
	for _, section := range finder.GetAll() {
		for _, alias := range section.Aliases {
			slug := strings.Trim(alias, "/")
			if owner, err := finder.GetBySlug(slug); err == nil && owner.Slug == slug {
				continue
			}
			pages[path.Join(slug, "index.html")] = section.URLPath
		}
	}
	return pages
}

func redirectPage(target string) []byte {
	url := esc(nav.EscapePath(target))
	return []byte(`<!DOCTYPE html><html><head><title>` + url + `</title>` +
		`<link rel="canonical" href="` + url + `">` +
		`<meta charset="utf-8"><meta http-equiv="refresh" content="0; url=` + url + `">` +
		`</head></html>`)
}

func writeOutput(outDir, rel string, data []byte) error {
	file := filepath.Join(outDir, filepath.FromSlash(rel))

	//nolint:forbidigo // Creating the output tree.
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	// #nosec G306 -- built pages are meant to be served
	//nolint:forbidigo // Writing built pages.
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}

	return nil
}

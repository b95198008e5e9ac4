package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grafana/docnav/internal/nav"
)

// Finder provides lookup operations on a section index.
type Finder struct {
	index *Index
}

// NewFinder creates a new section finder from an index.
func NewFinder(index *Index) *Finder {
	if index == nil {
		index = &Index{}
		index.buildRuntimeIndexes()
	}
	return &Finder{index: index}
}

// Index returns the underlying index.
func (f *Finder) Index() *Index {
	return f.index
}

// GetAll returns all sections.
func (f *Finder) GetAll() []Section {
	return f.index.Sections
}

// GetBySlug finds a section by slug. Handles aliases automatically.
func (f *Finder) GetBySlug(slug string) (*Section, error) {
	section, ok := f.index.BySlug[strings.Trim(slug, "/")]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return section, nil
}

// GetByURLPath finds the section served at a URL path, escaped or not.
// Trailing slashes are ignored.
func (f *Finder) GetByURLPath(urlPath string) (*Section, error) {
	if !strings.HasPrefix(urlPath, "/") {
		urlPath = "/" + urlPath
	}
	section, ok := f.index.ByURLPath[nav.NormalizePath(urlPath)]
	if !ok {
		section, ok = f.index.ByURLPath[nav.CanonicalPath(urlPath)]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, urlPath)
	}
	return section, nil
}

// GetByCategory returns all sections in a specific category.
func (f *Finder) GetByCategory(category string) []Section {
	var results []Section
	for _, section := range f.index.Sections {
		if section.Category == category {
			results = append(results, section)
		}
	}
	return results
}

// Search performs a simple text search across titles, descriptions, and slugs.
func (f *Finder) Search(query string) []Section {
	query = strings.ToLower(query)
	var results []Section

	for _, section := range f.index.Sections {
		titleMatch := strings.Contains(strings.ToLower(section.Title), query)
		descMatch := strings.Contains(strings.ToLower(section.Description), query)
		slugMatch := strings.Contains(strings.ToLower(section.Slug), query)

		if titleMatch || descMatch || slugMatch {
			results = append(results, section)
		}
	}

	return results
}

// GetPackages returns the package sections in import path order.
func (f *Finder) GetPackages() []Section {
	var results []Section
	for _, section := range f.index.Sections {
		if section.Kind == KindPackage {
			results = append(results, section)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ImportPath < results[j].ImportPath
	})
	return results
}

// GetCategories returns unique top-level categories in index order.
func (f *Finder) GetCategories() []string {
	seen := make(map[string]bool)
	var categories []string

	for _, section := range f.index.Sections {
		if section.Category != "" && !seen[section.Category] {
			seen[section.Category] = true
			categories = append(categories, section.Category)
		}
	}

	return categories
}

// ReadContent returns the markdown body of a section without its frontmatter.
// Module and package sections are rendered from their Go sources.
func (f *Finder) ReadContent(section *Section) ([]byte, error) {
	switch section.Kind {
	case KindPackage:
		return PackageMarkdown(section.Dir, section.ImportPath)
	case KindModule:
		return f.moduleMarkdown(section)
	}

	file := section.Path
	if file == "" {
		file = filepath.Join(f.index.Root, filepath.FromSlash(section.RelPath))
	}

	// #nosec G304 -- file is derived from the indexed docs root
	//nolint:forbidigo // Reading markdown sources
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", section.RelPath, err)
	}

	_, body, _ := SplitFrontmatter(content)
	return body, nil
}

// Package docs indexes a directory of markdown documentation into sections
// that make up the site's pages and its sidebar.
package docs

import (
	"errors"
	"path"
)

// ErrNotFound is returned when a lookup matches no section.
var ErrNotFound = errors.New("section not found")

// Section kinds. Markdown pages have no kind.
const (
	KindModule  = "module"
	KindPackage = "package"
)

// Section represents a documentation page with metadata extracted from frontmatter.
type Section struct {
	// Slug is the hierarchical identifier for the section (e.g., "guide/install").
	// The home page has an empty slug.
	Slug string `json:"slug"`

	// URLPath is the path the page is served at (e.g., "/guide/install/").
	URLPath string `json:"url_path"`

	// Path is the full file path on disk (used internally during indexing)
	Path string `json:"-"`

	// RelPath is the slash-separated path relative to the docs root
	RelPath string `json:"rel_path"`

	// Title is the section title from frontmatter
	Title string `json:"title"`

	// MenuTitle is an optional shorter title for the sidebar
	MenuTitle string `json:"menu_title,omitempty"`

	// Description is the section description from frontmatter
	Description string `json:"description"`

	// Weight is used for sorting sections (lower values appear first)
	Weight int `json:"weight"`

	// Aliases are alternative slugs that can be used to reference this section
	Aliases []string `json:"aliases,omitempty"`

	// Category is the top-level directory (e.g., "guide", "reference")
	Category string `json:"category"`

	// Hierarchy is the directory chain of the file (e.g., ["guide", "install"])
	Hierarchy []string `json:"hierarchy"`

	// IsIndex indicates directory-level documentation (_index.md or index.md)
	IsIndex bool `json:"is_index"`

	// Kind is KindModule or KindPackage for generated Go documentation.
	Kind string `json:"kind,omitempty"`

	// ImportPath is the Go import path of a module or package section.
	ImportPath string `json:"import_path,omitempty"`

	// Dir is the source directory of a module or package section.
	Dir string `json:"dir,omitempty"`
}

// IsGo reports whether the section documents Go source.
func (s Section) IsGo() bool {
	return s.Kind == KindModule || s.Kind == KindPackage
}

// NavTitle returns the label shown in the sidebar.
func (s Section) NavTitle() string {
	switch {
	case s.MenuTitle != "":
		return s.MenuTitle
	case s.Title != "":
		return s.Title
	case s.Slug == "":
		return "Home"
	default:
		return path.Base(s.Slug)
	}
}

// Index is the root structure containing all documentation sections.
type Index struct {
	// Root is the docs directory the index was built from.
	Root string `json:"root"`

	// Sections are ordered by weight, then title.
	Sections []Section `json:"sections"`

	// BySlug is a runtime index for slug and alias lookups (not serialized to JSON)
	BySlug map[string]*Section `json:"-"`

	// ByURLPath is a runtime index keyed by normalized URL path (not serialized to JSON)
	ByURLPath map[string]*Section `json:"-"`

	// ByPath is a runtime index keyed by relative file path (not serialized to JSON)
	ByPath map[string]*Section `json:"-"`
}

// Len returns the number of sections.
func (idx *Index) Len() int {
	return len(idx.Sections)
}

// Frontmatter represents YAML frontmatter in markdown files.
type Frontmatter struct {
	// Title is the page title
	Title string `yaml:"title"`

	// Description is the page description
	Description string `yaml:"description"`

	// Weight is used for sorting (lower values appear first)
	Weight int `yaml:"weight"`

	// Aliases are alternative paths/slugs for this page
	Aliases []string `yaml:"aliases"`

	// MenuTitle is an optional alternative title for navigation menus
	MenuTitle string `yaml:"menuTitle"`
}

package docs

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/grafana/docnav/internal/nav"
)

// BuildIndex walks a documentation directory and creates a section index.
// Files matching one of the doublestar exclude patterns (relative to
// docsPath) are skipped. Files whose frontmatter cannot be parsed are
// logged and skipped.
func BuildIndex(docsPath string, excludes []string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var sections []Section

	err := filepath.WalkDir(docsPath, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(docsPath, file)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && Excluded(rel, excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		// Only process markdown files
		if !strings.HasSuffix(d.Name(), ".md") || Excluded(rel, excludes) {
			return nil
		}

		section, err := ExtractSection(file, docsPath)
		if err != nil {
			logger.Warn("Failed to parse documentation file",
				slog.String("path", file),
				slog.String("error", err.Error()))
			return nil
		}

		sections = append(sections, *section)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", docsPath, err)
	}

	sortSections(sections)

	index := &Index{
		Root:     docsPath,
		Sections: sections,
	}
	index.buildRuntimeIndexes()

	logger.Info("Indexed documentation",
		slog.String("root", docsPath),
		slog.Int("section_count", len(sections)))

	return index, nil
}

// Excluded reports whether a slash-separated relative path matches one of the patterns.
func Excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// sortSections orders sections by weight, then by title, then by slug.
func sortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].Weight != sections[j].Weight {
			return sections[i].Weight < sections[j].Weight
		}
		if sections[i].Title != sections[j].Title {
			return sections[i].Title < sections[j].Title
		}
		return sections[i].Slug < sections[j].Slug
	})
}

// buildRuntimeIndexes creates lookup maps for fast retrieval.
func (idx *Index) buildRuntimeIndexes() {
	idx.BySlug = make(map[string]*Section, len(idx.Sections))
	idx.ByURLPath = make(map[string]*Section, len(idx.Sections))
	idx.ByPath = make(map[string]*Section, len(idx.Sections))

	for i := range idx.Sections {
		section := &idx.Sections[i]
		if section.URLPath == "" {
			section.URLPath = SlugToURLPath(section.Slug)
		}

		idx.BySlug[section.Slug] = section
		idx.ByURLPath[nav.NormalizePath(section.URLPath)] = section
		idx.ByPath[section.RelPath] = section
	}

	// Aliases never shadow real slugs.
	for i := range idx.Sections {
		section := &idx.Sections[i]
		for _, alias := range section.Aliases {
			cleanAlias := strings.Trim(alias, "/")
			if _, exists := idx.BySlug[cleanAlias]; !exists {
				idx.BySlug[cleanAlias] = section
			}
			aliasPath := nav.NormalizePath(SlugToURLPath(cleanAlias))
			if _, exists := idx.ByURLPath[aliasPath]; !exists {
				idx.ByURLPath[aliasPath] = section
			}
		}
	}
}

// WriteJSON serializes the index to a JSON file.
func (idx *Index) WriteJSON(outputPath string) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	//nolint:forbidigo // Directory creation necessary for writing index file
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	//nolint:forbidigo // File I/O necessary for writing sections index
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	return nil
}

// LoadJSON deserializes the index from JSON data and rebuilds runtime indexes.
func LoadJSON(data []byte) (*Index, error) {
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}

	index.buildRuntimeIndexes()

	return &index, nil
}

package docs

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFrontmatter extracts YAML frontmatter from a markdown file.
// Returns an empty Frontmatter struct if no frontmatter is present.
func ParseFrontmatter(file string) (*Frontmatter, error) {
	// #nosec G304 -- path comes from walking the docs root
	//nolint:forbidigo // File I/O necessary for parsing markdown frontmatter
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	raw, _, ok := SplitFrontmatter(content)
	if !ok {
		return &Frontmatter{}, nil
	}

	return decodeFrontmatter(raw)
}

// SplitFrontmatter separates a leading "---" delimited block from the
// markdown body. ok is false when the content has no frontmatter.
func SplitFrontmatter(content []byte) (raw string, body []byte, ok bool) {
	var offset int
	switch {
	case bytes.HasPrefix(content, []byte("---\n")):
		offset = 4
	case bytes.HasPrefix(content, []byte("---\r\n")):
		offset = 5
	default:
		return "", content, false
	}

	rest := content[offset:]
	consumed := offset
	var lines []string
	closed := false
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i]
			rest = rest[i+1:]
			consumed += i + 1
		} else {
			rest = nil
			consumed += len(line)
		}
		text := strings.TrimRight(string(line), "\r")
		if text == "---" {
			closed = true
			break
		}
		lines = append(lines, text)
	}
	if !closed {
		return "", content, false
	}

	consumed = min(consumed, len(content))
	return strings.Join(lines, "\n"), content[consumed:], true
}

func decodeFrontmatter(raw string) (*Frontmatter, error) {
	var fm Frontmatter
	err := yaml.Unmarshal([]byte(raw), &fm)
	if err == nil {
		return &fm, nil
	}
	if !strings.Contains(err.Error(), "mapping key") {
		return nil, fmt.Errorf("failed to parse frontmatter YAML: %w", err)
	}

	// Duplicate keys: keep the last occurrence of each one.
	sanitized := dedupeFrontmatter(raw)
	if sanitized == raw {
		return nil, fmt.Errorf("failed to parse frontmatter YAML: %w", err)
	}

	fm = Frontmatter{}
	if err := yaml.Unmarshal([]byte(sanitized), &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter YAML: %w", err)
	}

	return &fm, nil
}

func dedupeFrontmatter(raw string) string {
	lines := strings.Split(raw, "\n")

	type block struct {
		key        string
		start, end int
	}

	var blocks []block
	for i, line := range lines {
		key, ok := topLevelKey(line)
		if !ok {
			if len(blocks) == 0 {
				blocks = append(blocks, block{start: i, end: i})
			} else {
				blocks[len(blocks)-1].end = i
			}
			continue
		}
		blocks = append(blocks, block{key: key, start: i, end: i})
	}

	last := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if b.key != "" {
			last[b.key] = i
		}
	}

	var out []string
	for i, b := range blocks {
		if b.key != "" && last[b.key] != i {
			continue
		}
		out = append(out, lines[b.start:b.end+1]...)
	}

	return strings.Join(out, "\n")
}

func topLevelKey(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return "", false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
		return "", false
	}

	key, _, found := strings.Cut(trimmed, ":")
	key = strings.TrimSpace(key)
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return "", false
	}
	return key, true
}

// ExtractSection creates a Section from a markdown file path.
// The docsRoot parameter should be the root directory of the documentation.
func ExtractSection(file, docsRoot string) (*Section, error) {
	fm, err := ParseFrontmatter(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter for %s: %w", file, err)
	}

	relPath, err := filepath.Rel(docsRoot, file)
	if err != nil {
		return nil, fmt.Errorf("failed to compute relative path: %w", err)
	}
	relPath = filepath.ToSlash(relPath)

	hierarchy := buildHierarchy(relPath)
	slug := pathToSlug(relPath)

	category := ""
	if len(hierarchy) > 0 {
		category = hierarchy[0]
	} else if slug != "" {
		category = slug
	}

	return &Section{
		Slug:        slug,
		URLPath:     SlugToURLPath(slug),
		Path:        file,
		RelPath:     relPath,
		Title:       fm.Title,
		MenuTitle:   fm.MenuTitle,
		Description: fm.Description,
		Weight:      fm.Weight,
		Aliases:     fm.Aliases,
		Category:    category,
		Hierarchy:   hierarchy,
		IsIndex:     isIndexFile(path.Base(relPath)),
	}, nil
}

// SlugToURLPath returns the URL a section is served at.
// Examples:
//   - "" -> "/"
//   - "guide/install" -> "/guide/install/"
func SlugToURLPath(slug string) string {
	if slug == "" {
		return "/"
	}
	return "/" + slug + "/"
}

func isIndexFile(name string) bool {
	return name == "_index.md" || name == "index.md"
}

// buildHierarchy creates a hierarchy array from a slash-separated relative path.
// Example: "guide/install/_index.md" -> ["guide", "install"]
func buildHierarchy(relPath string) []string {
	dir := path.Dir(relPath)
	if dir == "." || dir == "" {
		return []string{}
	}

	var hierarchy []string
	for _, part := range strings.Split(dir, "/") {
		if part != "" && part != "." {
			hierarchy = append(hierarchy, part)
		}
	}
	return hierarchy
}

// pathToSlug converts a relative path to a slug.
// Examples:
//   - "guide/install/_index.md" -> "guide/install"
//   - "reference/http/request.md" -> "reference/http/request"
//   - "_index.md" -> ""
func pathToSlug(relPath string) string {
	if isIndexFile(path.Base(relPath)) {
		dir := path.Dir(relPath)
		if dir == "." {
			return ""
		}
		return dir
	}
	return strings.TrimSuffix(relPath, ".md")
}

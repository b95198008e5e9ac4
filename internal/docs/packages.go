package docs

import (
	"errors"
	"fmt"
	"go/build"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// DefaultPackagePrefix is the slug the package tree is mounted under.
const DefaultPackagePrefix = "pkg"

// PackageOptions configures indexing of a Go module.
type PackageOptions struct {
	// Dir is the module root holding go.mod.
	Dir string

	// Prefix is the slug of the module section. Package slugs are
	// Prefix followed by the package directory.
	Prefix string

	// Weight orders the module section among the top-level pages.
	Weight int

	// Excludes are doublestar globs, relative to Dir, that are not indexed.
	Excludes []string
}

// AddPackages adds a section for the Go module at opts.Dir and one for every
// package in it. A package hangs off the nearest package above it, or off
// the module section, so the package tree becomes part of the sidebar.
// Nested modules, testdata, vendor and directories starting with "." or "_"
// are skipped, as the go command does.
func (idx *Index) AddPackages(opts PackageOptions, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	prefix := strings.Trim(opts.Prefix, "/")
	if prefix == "" {
		prefix = DefaultPackagePrefix
	}
	for _, section := range idx.Sections {
		if section.Slug == prefix || strings.HasPrefix(section.Slug, prefix+"/") {
			return fmt.Errorf("package prefix %q collides with page %s", prefix, section.RelPath)
		}
	}

	modulePath, err := readModulePath(opts.Dir)
	if err != nil {
		return err
	}

	module := newGoSection(KindModule, prefix, ".", modulePath, opts.Dir)
	module.MenuTitle = "Packages"
	module.Weight = opts.Weight

	var packages []Section

	err = filepath.WalkDir(opts.Dir, func(dir string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(opts.Dir, dir)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if rel != "." {
			if skipPackageDir(dir, d.Name()) || Excluded(rel, opts.Excludes) {
				return filepath.SkipDir
			}
		}

		bp, err := build.ImportDir(dir, 0)
		if err != nil {
			var noGo *build.NoGoError
			if !errors.As(err, &noGo) {
				logger.Warn("Failed to load Go package",
					slog.String("dir", dir),
					slog.String("error", err.Error()))
			}
			return nil
		}
		if len(bp.GoFiles)+len(bp.CgoFiles) == 0 {
			return nil
		}

		if rel == "." {
			module.Description = bp.Doc
			return nil
		}

		section := newGoSection(KindPackage, prefix+"/"+rel, rel, modulePath+"/"+rel, dir)
		section.MenuTitle = path.Base(rel)
		section.Description = bp.Doc
		packages = append(packages, section)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk module %s: %w", opts.Dir, err)
	}

	idx.Sections = append(idx.Sections, module)
	idx.Sections = append(idx.Sections, packages...)
	sortSections(idx.Sections)
	idx.buildRuntimeIndexes()

	logger.Info("Indexed Go packages",
		slog.String("module", modulePath),
		slog.String("root", opts.Dir),
		slog.Int("package_count", len(packages)))

	return nil
}

func newGoSection(kind, slug, rel, importPath, dir string) Section {
	hierarchy := []string{}
	if parent := path.Dir(slug); parent != "." {
		hierarchy = strings.Split(parent, "/")
	}

	category, _, _ := strings.Cut(slug, "/")

	return Section{
		Slug:       slug,
		URLPath:    SlugToURLPath(slug),
		Path:       dir,
		RelPath:    rel,
		Title:      importPath,
		Category:   category,
		Hierarchy:  hierarchy,
		IsIndex:    true,
		Kind:       kind,
		ImportPath: importPath,
		Dir:        dir,
	}
}

func skipPackageDir(dir, name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor" {
		return true
	}
	//nolint:forbidigo // Detecting nested modules.
	_, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil
}

func readModulePath(dir string) (string, error) {
	file := filepath.Join(dir, "go.mod")

	// #nosec G304 -- go.mod of the configured module
	//nolint:forbidigo // Reading the module file.
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}

	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return "", fmt.Errorf("no module path in %s", file)
	}
	return modulePath, nil
}

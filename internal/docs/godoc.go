package docs

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/doc"
	"go/doc/comment"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/grafana/docnav/internal/nav"
)

// docLinkBaseURL serves documentation links to packages outside the module.
const docLinkBaseURL = "https://pkg.go.dev"

var markerRx = regexp.MustCompile(`(?i)^[ \t]*@docnav:(\w+)`)

// Annotation reports whether a doc comment paragraph starts with an
// "@docnav:<marker>" annotation and returns the lowercase marker and the
// text that follows it.
func Annotation(block string) (text, marker string, ok bool) {
	loc := markerRx.FindStringSubmatchIndex(block)
	if loc == nil {
		return block, "", false
	}

	text = strings.TrimLeft(block[loc[1]:], " \t")
	text = strings.TrimPrefix(text, "\n")
	return text, strings.ToLower(block[loc[2]:loc[3]]), true
}

// PackageMarkdown renders the documentation of the Go package in dir as
// markdown: the package comment, then constants, variables, functions,
// types with their methods, examples and notes.
func PackageMarkdown(dir, importPath string) ([]byte, error) {
	pkg, fset, err := loadPackage(dir, importPath)
	if err != nil {
		return nil, err
	}

	w := &docWriter{fset: fset, pkg: pkg, printer: newDocPrinter(pkg)}
	w.writePackage(importPath)
	return w.buf.Bytes(), nil
}

func loadPackage(dir, importPath string) (*doc.Package, *token.FileSet, error) {
	bp, err := build.ImportDir(dir, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load package %s: %w", importPath, err)
	}

	fset := token.NewFileSet()
	names := slices.Concat(bp.GoFiles, bp.CgoFiles, bp.TestGoFiles, bp.XTestGoFiles)
	files := make([]*ast.File, 0, len(names))
	for _, name := range names {
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		files = append(files, file)
	}

	pkg, err := doc.NewFromFiles(fset, files, importPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read documentation of %s: %w", importPath, err)
	}
	return pkg, fset, nil
}

func isNoGo(err error) bool {
	var noGo *build.NoGoError
	return errors.As(err, &noGo)
}

// moduleMarkdown renders the module page: the root package documentation,
// when the module root is a package, followed by the package list.
func (f *Finder) moduleMarkdown(module *Section) ([]byte, error) {
	var b bytes.Buffer

	content, err := PackageMarkdown(module.Dir, module.ImportPath)
	switch {
	case err == nil:
		b.Write(content)
	case isNoGo(err):
		fmt.Fprintf(&b, "# %s\n\n", module.ImportPath)
		if module.Description != "" {
			b.WriteString(module.Description + "\n\n")
		}
	default:
		return nil, err
	}

	packages := f.GetPackages()
	if len(packages) == 0 {
		return b.Bytes(), nil
	}

	b.WriteString("## Packages\n\n| Package | Synopsis |\n| --- | --- |\n")
	for _, p := range packages {
		fmt.Fprintf(&b, "| [%s](%s) | %s |\n", p.RelPath, nav.EscapePath(p.URLPath), tableCell(p.Description))
	}
	b.WriteString("\n")

	return b.Bytes(), nil
}

func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// newDocPrinter links identifiers of the package to the anchors written by
// docWriter and everything else to pkg.go.dev.
func newDocPrinter(pkg *doc.Package) *comment.Printer {
	p := pkg.Printer()
	p.DocLinkURL = func(link *comment.DocLink) string {
		if link.ImportPath == "" {
			return "#" + anchor(link.Recv, link.Name)
		}
		return link.DefaultURL(docLinkBaseURL)
	}
	return p
}

func anchor(recv, name string) string {
	if recv == "" {
		return name
	}
	return recv + "-" + name
}

type docWriter struct {
	buf     bytes.Buffer
	fset    *token.FileSet
	pkg     *doc.Package
	printer *comment.Printer
}

func (w *docWriter) writePackage(importPath string) {
	if w.pkg.Name == "main" {
		fmt.Fprintf(&w.buf, "# Command %s\n\n", path.Base(importPath))
	} else {
		fmt.Fprintf(&w.buf, "# Package %s\n\n", w.pkg.Name)
		fmt.Fprintf(&w.buf, "```go\nimport %q\n```\n\n", importPath)
	}
	w.writeDoc(w.pkg.Doc)

	if len(w.pkg.Consts) > 0 {
		w.buf.WriteString("## Constants\n\n")
		w.writeValues(w.pkg.Consts)
	}
	if len(w.pkg.Vars) > 0 {
		w.buf.WriteString("## Variables\n\n")
		w.writeValues(w.pkg.Vars)
	}
	if len(w.pkg.Funcs) > 0 {
		w.buf.WriteString("## Functions\n\n")
		for _, fn := range w.pkg.Funcs {
			w.writeFunc(fn, "###")
		}
	}
	if len(w.pkg.Types) > 0 {
		w.buf.WriteString("## Types\n\n")
		for _, t := range w.pkg.Types {
			w.writeType(t)
		}
	}
	if len(w.pkg.Examples) > 0 {
		w.buf.WriteString("## Examples\n\n")
		w.writeExamples(w.pkg.Examples, "###")
	}
	w.writeNotes()
}

// writeDoc converts a doc comment to markdown. Paragraphs starting with an
// annotation are wrapped in a "marker marker-<name>" block.
func (w *docWriter) writeDoc(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	var plain []string
	flush := func() {
		if len(plain) == 0 {
			return
		}
		w.buf.Write(w.markdown(strings.Join(plain, "\n\n")))
		w.buf.WriteString("\n")
		plain = nil
	}

	for _, block := range strings.Split(text, "\n\n") {
		body, marker, ok := Annotation(block)
		if !ok {
			plain = append(plain, block)
			continue
		}
		flush()
		fmt.Fprintf(&w.buf, "<div class=\"marker marker-%s\">\n\n", marker)
		w.buf.Write(w.markdown(body))
		w.buf.WriteString("\n</div>\n\n")
	}
	flush()
}

func (w *docWriter) markdown(text string) []byte {
	return w.printer.Markdown(w.pkg.Parser().Parse(text))
}

func (w *docWriter) writeValues(values []*doc.Value) {
	for _, v := range values {
		decl := *v.Decl
		decl.Doc = nil
		w.writeCode(&decl)
		w.writeDoc(v.Doc)
	}
}

func (w *docWriter) writeFunc(fn *doc.Func, level string) {
	recv := strings.TrimPrefix(fn.Recv, "*")
	if fn.Recv != "" {
		fmt.Fprintf(&w.buf, "%s func (%s) %s {#%s}\n\n", level, fn.Recv, fn.Name, anchor(recv, fn.Name))
	} else {
		fmt.Fprintf(&w.buf, "%s func %s {#%s}\n\n", level, fn.Name, fn.Name)
	}

	decl := *fn.Decl
	decl.Doc = nil
	decl.Body = nil
	w.writeCode(&decl)
	w.writeDoc(fn.Doc)
	w.writeExamples(fn.Examples, level+"#")
}

func (w *docWriter) writeType(t *doc.Type) {
	fmt.Fprintf(&w.buf, "### type %s {#%s}\n\n", t.Name, t.Name)

	decl := *t.Decl
	decl.Doc = nil
	w.writeCode(&decl)
	w.writeDoc(t.Doc)

	w.writeValues(t.Consts)
	w.writeValues(t.Vars)
	for _, fn := range t.Funcs {
		w.writeFunc(fn, "####")
	}
	for _, fn := range t.Methods {
		w.writeFunc(fn, "####")
	}
	w.writeExamples(t.Examples, "####")
}

func (w *docWriter) writeExamples(examples []*doc.Example, level string) {
	for _, ex := range examples {
		title := "Example"
		if ex.Suffix != "" {
			title += " (" + ex.Suffix + ")"
		}
		fmt.Fprintf(&w.buf, "%s %s\n\n", level, title)
		w.writeDoc(ex.Doc)

		var src string
		if ex.Play != nil {
			src = w.source(ex.Play)
		} else {
			src = trimBlock(w.source(&printer.CommentedNode{Node: ex.Code, Comments: ex.Comments}))
		}
		fmt.Fprintf(&w.buf, "```go\n%s\n```\n\n", src)

		if output := strings.TrimRight(ex.Output, "\n"); output != "" {
			fmt.Fprintf(&w.buf, "Output:\n\n```\n%s\n```\n\n", output)
		}
	}
}

func (w *docWriter) writeNotes() {
	if len(w.pkg.Notes) == 0 {
		return
	}

	markers := make([]string, 0, len(w.pkg.Notes))
	for marker := range w.pkg.Notes {
		markers = append(markers, marker)
	}
	sort.Strings(markers)

	w.buf.WriteString("## Notes\n\n")
	for _, marker := range markers {
		fmt.Fprintf(&w.buf, "### %s\n\n", marker)
		for _, note := range w.pkg.Notes[marker] {
			fmt.Fprintf(&w.buf, "- %s\n", strings.Join(strings.Fields(note.Body), " "))
		}
		w.buf.WriteString("\n")
	}
}

func (w *docWriter) writeCode(node any) {
	fmt.Fprintf(&w.buf, "```go\n%s\n```\n\n", w.source(node))
}

func (w *docWriter) source(node any) string {
	var b bytes.Buffer
	if err := format.Node(&b, w.fset, node); err != nil {
		return fmt.Sprintf("// failed to format declaration: %v", err)
	}
	return strings.TrimRight(b.String(), "\n")
}

// trimBlock strips the braces of a printed block statement and one level
// of indentation.
func trimBlock(src string) string {
	src = strings.TrimSpace(src)
	src = strings.TrimPrefix(src, "{")
	src = strings.TrimSuffix(src, "}")
	src = strings.Trim(src, "\n")

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "\t")
	}
	return strings.Join(lines, "\n")
}

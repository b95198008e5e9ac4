package docs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnnotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		block      string
		wantText   string
		wantMarker string
		wantOK     bool
	}{
		{
			name:       "marker on its own line",
			block:      "@docnav:warning\nMind the gap.",
			wantText:   "Mind the gap.",
			wantMarker: "warning",
			wantOK:     true,
		},
		{
			name:       "marker with inline text",
			block:      "  @docnav:Note keep this short",
			wantText:   "keep this short",
			wantMarker: "note",
			wantOK:     true,
		},
		{
			name:     "plain paragraph",
			block:    "Nothing to see here.",
			wantText: "Nothing to see here.",
		},
		{
			name:     "marker not at start",
			block:    "See @docnav:warning below.",
			wantText: "See @docnav:warning below.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, marker, ok := Annotation(tt.block)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantMarker, marker)
			require.Equal(t, tt.wantText, text)
		})
	}
}

func TestPackageMarkdown(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, sampleModule)

	content, err := PackageMarkdown(dir, "example.com/greet")
	require.NoError(t, err)
	page := string(content)

	for _, want := range []string{
		"# Package greet",
		`import "example.com/greet"`,
		"Package greet says hello.",
		`<div class="marker marker-warning">`,
		"Greetings are not localized.",
		"## Constants",
		`const DefaultName = "world"`,
		"## Variables",
		"### func Hello {#Hello}",
		"func Hello(name string) string",
		"[Greeter](#Greeter)",
		"### type Greeter {#Greeter}",
		"#### func NewGreeter {#NewGreeter}",
		"#### func (*Greeter) Greet {#Greeter-Greet}",
		"Output:",
		"hello gopher",
		"## Notes",
		"### BUG",
		"- Names are not trimmed.",
	} {
		require.Contains(t, page, want)
	}

	require.NotContains(t, page, "@docnav")
	require.NotContains(t, page, `return "hello " + name`)
}

func TestPackageMarkdownCommand(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, sampleModule)

	content, err := PackageMarkdown(dir+"/cmd/greet", "example.com/greet/cmd/greet")
	require.NoError(t, err)
	require.Contains(t, string(content), "# Command greet")
	require.NotContains(t, string(content), "import \"")
}

func TestPackageMarkdownWithoutGoFiles(t *testing.T) {
	t.Parallel()

	_, err := PackageMarkdown(t.TempDir(), "example.com/empty")
	require.Error(t, err)
	require.True(t, isNoGo(err))
}

func TestReadContentModulePage(t *testing.T) {
	t.Parallel()

	f := NewFinder(newPackageIndex(t))

	module, err := f.GetBySlug("api")
	require.NoError(t, err)

	content, err := f.ReadContent(module)
	require.NoError(t, err)
	page := string(content)

	require.Contains(t, page, "# Package greet")
	require.Contains(t, page, "## Packages")
	require.Contains(t, page, "| [internal/format](/api/internal/format/) | Package format shapes greetings. |")
	require.Contains(t, page, "| [cmd/greet](/api/cmd/greet/) | Command greet prints a greeting. |")
}

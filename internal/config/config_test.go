package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/docnav/internal/nav"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, "docs", cfg.DocsDir)
	require.Equal(t, "sidebar", cfg.SidebarID)
	require.Equal(t, nav.DefaultScrollLeadIn, cfg.ScrollLeadIn)
	require.Equal(t, nav.DefaultRowHeight, cfg.RowHeight)
	require.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docnav.yaml")

	original := Default()
	original.Title = "Handbook"
	original.DocsDir = "content"
	original.ScrollLeadIn = 40
	original.Excludes = []string{"drafts/**"}
	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Handbook", loaded.Title)
	require.Equal(t, "content", loaded.DocsDir)
	require.Equal(t, 40, loaded.ScrollLeadIn)
	require.Equal(t, []string{"drafts/**"}, loaded.Excludes)
	require.Equal(t, original.RowHeight, loaded.RowHeight)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().Addr, cfg.Addr)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte("row_height: 32\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 32, cfg.RowHeight)
	require.Equal(t, Default().DocsDir, cfg.DocsDir)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DOCNAV_ADDR", ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]func(*Config){
		"empty docs dir":      func(c *Config) { c.DocsDir = "" },
		"empty sidebar id":    func(c *Config) { c.SidebarID = "" },
		"negative lead-in":    func(c *Config) { c.ScrollLeadIn = -1 },
		"negative row height": func(c *Config) { c.RowHeight = -5 },
		"no concurrency":      func(c *Config) { c.BuildConcurrency = 0 },
		"bad glob":            func(c *Config) { c.Excludes = []string{"[a-"} },
		"bad log level":       func(c *Config) { c.LogLevel = "loud" },
		"empty package prefix": func(c *Config) {
			c.PackagesDir = "."
			c.PackagesPrefix = "/"
		},
	}

	for name, mutate := range tests {
		cfg := Default()
		mutate(cfg)
		require.Error(t, cfg.Validate(), name)
	}
}

func TestPackageOptions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.PackagesDir = "."
	cfg.Excludes = []string{"internal/gen/**"}
	require.NoError(t, cfg.Validate())

	opts := cfg.PackageOptions()
	require.Equal(t, ".", opts.Dir)
	require.Equal(t, "pkg", opts.Prefix)
	require.Equal(t, 1000, opts.Weight)
	require.Equal(t, []string{"internal/gen/**"}, opts.Excludes)
}

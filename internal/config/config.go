// Package config loads docnav settings from defaults, an optional YAML file
// and DOCNAV_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/markup"
	"github.com/grafana/docnav/internal/nav"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docnav.yaml"

// EnvPrefix prefixes environment overrides, e.g. DOCNAV_ADDR.
const EnvPrefix = "DOCNAV_"

// Config holds all docnav settings.
type Config struct {
	// Title is shown in the page header and the browser tab.
	Title string `koanf:"title" yaml:"title"`

	// DocsDir is the root of the markdown sources.
	DocsDir string `koanf:"docs_dir" yaml:"docs_dir"`

	// PackagesDir is the root of a Go module whose packages are documented
	// next to the markdown pages. Empty disables package documentation.
	PackagesDir string `koanf:"packages_dir" yaml:"packages_dir"`

	// PackagesPrefix is the URL path segment the package tree is served under.
	PackagesPrefix string `koanf:"packages_prefix" yaml:"packages_prefix"`

	// PackagesWeight orders the package tree among the top-level pages.
	PackagesWeight int `koanf:"packages_weight" yaml:"packages_weight"`

	// OutputDir receives the static build.
	OutputDir string `koanf:"output_dir" yaml:"output_dir"`

	// Addr is the HTTP listen address of the preview server.
	Addr string `koanf:"addr" yaml:"addr"`

	// Excludes are doublestar globs, relative to DocsDir, that are not indexed.
	Excludes []string `koanf:"excludes" yaml:"excludes"`

	// OpenBrowser opens the preview in a browser once the server listens.
	OpenBrowser bool `koanf:"open_browser" yaml:"open_browser"`

	// Watch reindexes the docs when files change while serving.
	Watch bool `koanf:"watch" yaml:"watch"`

	// SidebarID is the id of the sidebar viewport element.
	SidebarID string `koanf:"sidebar_id" yaml:"sidebar_id"`

	// ScrollLeadIn is the margin in pixels kept above the current link.
	ScrollLeadIn int `koanf:"scroll_lead_in" yaml:"scroll_lead_in"`

	// RowHeight is the estimated sidebar row height in pixels.
	RowHeight int `koanf:"row_height" yaml:"row_height"`

	// BuildConcurrency bounds the number of pages rendered in parallel.
	BuildConcurrency int `koanf:"build_concurrency" yaml:"build_concurrency"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Title:            "Documentation",
		DocsDir:          "docs",
		PackagesPrefix:   docs.DefaultPackagePrefix,
		PackagesWeight:   1000,
		OutputDir:        "public",
		Addr:             "localhost:3000",
		Excludes:         []string{"**/.git/**", "**/node_modules/**", "**/.*/**"},
		OpenBrowser:      false,
		Watch:            true,
		SidebarID:        markup.DefaultSidebarID,
		ScrollLeadIn:     nav.DefaultScrollLeadIn,
		RowHeight:        nav.DefaultRowHeight,
		BuildConcurrency: 8,
		LogLevel:         "info",
	}
}

// Load reads configuration from path (when it exists) and overlays
// environment variables. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	k := koanf.New(".")
	cfg := Default()

	//nolint:forbidigo // Optional config file lookup.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to access config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	//nolint:forbidigo // Writing the config file is the point.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log_level values.
var validLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.DocsDir == "" {
		return errors.New("docs_dir is required")
	}
	if c.PackagesDir != "" && strings.Trim(c.PackagesPrefix, "/") == "" {
		return errors.New("packages_prefix is required when packages_dir is set")
	}
	if c.SidebarID == "" {
		return errors.New("sidebar_id is required")
	}
	if c.ScrollLeadIn < 0 {
		return errors.New("scroll_lead_in must be non-negative")
	}
	if c.RowHeight < 0 {
		return errors.New("row_height must be non-negative")
	}
	if c.BuildConcurrency < 1 {
		return errors.New("build_concurrency must be at least 1")
	}
	for _, pattern := range c.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// PackageOptions returns the Go package indexing options derived from the configuration.
func (c *Config) PackageOptions() docs.PackageOptions {
	return docs.PackageOptions{
		Dir:      c.PackagesDir,
		Prefix:   c.PackagesPrefix,
		Weight:   c.PackagesWeight,
		Excludes: c.Excludes,
	}
}

// ActivatorOptions returns the nav options derived from the configuration.
func (c *Config) ActivatorOptions() []nav.Option {
	return []nav.Option{nav.WithScrollLeadIn(c.ScrollLeadIn)}
}

// MarkupOptions returns the markup parsing options derived from the configuration.
func (c *Config) MarkupOptions() markup.Options {
	return markup.Options{SidebarID: c.SidebarID, RowHeight: c.RowHeight}
}

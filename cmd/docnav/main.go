// Package main provides the docnav command: a documentation site server and
// builder whose sidebar follows the page being read, plus an MCP server over
// the same documentation.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/grafana/docnav/internal/buildinfo"
	"github.com/grafana/docnav/internal/config"
	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/logging"
	"github.com/grafana/docnav/internal/site"
)

func main() {
	logger := logging.Default()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, logger, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	//nolint:forbidigo // main must exit with the command status code.
	os.Exit(code)
}

func run(ctx context.Context, logger *slog.Logger, stdout, stderr io.Writer, args []string) int {
	a := &app{logger: logger, stderr: stderr}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		a.logger.Error("Command failed", slog.String("error", err.Error()))
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// app holds the state shared by all subcommands.
type app struct {
	logger *slog.Logger
	stderr io.Writer

	configPath  string
	docsDir     string
	packagesDir string
	logLevel    string

	cfg *config.Config
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "docnav",
		Short: "Serve and build markdown documentation with a self-activating sidebar",
		Long: `docnav renders a directory of markdown files as a documentation site. Every
page carries the full navigation sidebar with the link to the page marked
current, the sections above it expanded and the sidebar scrolled to it.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "config file path")
	root.PersistentFlags().StringVarP(&a.docsDir, "docs", "d", "", "documentation directory (overrides docs_dir)")
	root.PersistentFlags().StringVar(&a.packagesDir, "packages", "", "Go module directory whose packages are documented (overrides packages_dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log_level)")

	root.AddCommand(
		a.serveCommand(),
		a.buildCommand(),
		a.indexCommand(),
		a.activateCommand(),
		a.mcpCommand(),
		a.initCommand(),
	)

	return root
}

// loadConfig resolves the configuration: defaults, then the config file,
// then DOCNAV_* variables, then command line flags.
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("docs") {
		cfg.DocsDir = a.docsDir
	}
	if flags.Changed("packages") {
		cfg.PackagesDir = a.packagesDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.LogLevel != "" {
		a.logger = logging.New(a.stderr, cfg.LogLevel)
		// Tool and context loggers derive from the default logger.
		slog.SetDefault(a.logger)
	}
	a.cfg = cfg

	a.logger.Debug("Loaded configuration",
		slog.String("config", a.configPath),
		slog.String("docs_dir", cfg.DocsDir),
		slog.String("log_level", cfg.LogLevel))

	return nil
}

// newSite indexes the documentation and creates a site over it.
func (a *app) newSite() (*site.Site, error) {
	index, err := site.LoadIndex(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}

	return site.New(a.cfg, docs.NewFinder(index), a.logger)
}

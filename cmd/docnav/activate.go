package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/grafana/docnav/internal/markup"
	"github.com/grafana/docnav/internal/nav"
)

func (a *app) activateCommand() *cobra.Command {
	var (
		path string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "activate [file]",
		Short: "Activate the sidebar of an existing HTML page",
		Long: `Reads an HTML page (a file, or stdin when the file is "-" or omitted), marks
the sidebar links pointing at --path as current, expands the sections
leading to them and records the sidebar scroll position. The page is
written to --out or stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			doc, err := markup.Parse(bytes.NewReader(input), a.cfg.MarkupOptions())
			if err != nil {
				return err
			}
			if !doc.HasSidebar() {
				a.logger.Warn("Page has no sidebar", slog.String("sidebar_id", a.cfg.SidebarID))
			}

			opts := append(a.cfg.ActivatorOptions(), nav.WithLogger(a.logger))
			report := doc.Activate(nav.NewActivator(opts...), path)

			a.logger.Info("Activated sidebar",
				slog.String("path", report.Path),
				slog.Int("current_links", len(report.Current)),
				slog.Int("expanded_sections", len(report.Expanded)),
				slog.Int("scroll_top", report.ScrollTop))

			var buf bytes.Buffer
			if err := doc.Render(&buf); err != nil {
				return err
			}

			if out == "" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}

			//nolint:forbidigo // Writing the activated page.
			if err := os.WriteFile(out, buf.Bytes(), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "URL path of the page (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	// #nosec G304 -- the file is named by the user
	//nolint:forbidigo // Reading the page to activate.
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return data, nil
}

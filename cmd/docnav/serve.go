package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/grafana/docnav/internal/site"
)

func (a *app) serveCommand() *cobra.Command {
	var (
		addr  string
		open  bool
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation with live reindexing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				a.cfg.Addr = addr
			}
			if flags.Changed("open") {
				a.cfg.OpenBrowser = open
			}
			if flags.Changed("watch") {
				a.cfg.Watch = watch
			}

			s, err := a.newSite()
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return s.Serve(ctx, a.cfg.Addr, a.cfg.OpenBrowser)
			})
			if a.cfg.Watch {
				g.Go(func() error {
					return s.Watch(ctx, site.DefaultWatchDelay)
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")
	cmd.Flags().BoolVar(&open, "open", false, "open the site in a browser (overrides open_browser)")
	cmd.Flags().BoolVar(&watch, "watch", true, "reindex when the docs change (overrides watch)")

	return cmd
}

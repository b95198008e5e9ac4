package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) buildCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every page into a static site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("out") {
				a.cfg.OutputDir = out
			}

			s, err := a.newSite()
			if err != nil {
				return err
			}

			result, err := s.Build(cmd.Context(), a.cfg.OutputDir)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages and %d redirects into %s\n",
				result.Pages, result.Aliases, a.cfg.OutputDir)
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (overrides output_dir)")

	return cmd
}

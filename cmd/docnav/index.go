package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grafana/docnav/internal/site"
)

func (a *app) indexCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Write the section index as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			index, err := site.LoadIndex(a.cfg, a.logger)
			if err != nil {
				return err
			}

			if out != "" {
				return index.WriteJSON(out)
			}

			data, err := json.MarshalIndent(index, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal index: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the index to this file instead of stdout")

	return cmd
}

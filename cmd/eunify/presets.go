package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eunify/internal/domain"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the preset graph views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := domain.Presets()

			fmt.Fprintf(out, "%s %s\n\n", brand.Sprint("eunify"), subtle.Sprintf("%d presets", len(presets)))
			rows := make([][]string, 0, len(presets))
			for _, p := range presets {
				types := "all"
				if len(p.VertexTypes) > 0 {
					types = strings.Join(p.VertexTypes, ", ")
				}
				rows = append(rows, []string{p.Key, p.Name, p.Endpoint, types})
			}
			table(out, []string{"KEY", "NAME", "ENDPOINT", "TYPES"}, rows)
			return nil
		},
	}
}

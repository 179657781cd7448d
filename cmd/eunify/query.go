package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eunify/internal/render"
)

func newQueryCmd(a *app) *cobra.Command {
	var visualize bool

	cmd := &cobra.Command{
		Use:   "query <traversal>",
		Short: "Run a raw traversal against the graph service",
		Long: `Query sends a traversal string to the backend and prints the raw
result. With --visualize the result rows are reshaped into vertices and
the render spec is printed instead.`,
		Example: `  eunify query "g.V().hasLabel('case').limit(10).valueMap(true)" --visualize`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")

			p, err := a.newPipeline(render.NewHeadless(), true)
			if err != nil {
				return err
			}
			defer p.Close()

			s := p.session
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")

			if !visualize {
				result, err := s.ExecuteQuery(cmd.Context(), q)
				if err != nil {
					reportFailure(cmd.ErrOrStderr(), s)
					return err
				}
				return enc.Encode(result)
			}

			rep, err := s.ExecuteAndVisualize(cmd.Context(), q)
			if err != nil {
				reportFailure(cmd.ErrOrStderr(), s)
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d of %d elements became vertices\n",
				statusIcon(true), rep.Extracted, rep.Elements)
			return enc.Encode(s.RenderSpec())
		},
	}

	cmd.Flags().BoolVarP(&visualize, "visualize", "V", false, "reshape the result into vertices and print the render spec")
	return cmd
}

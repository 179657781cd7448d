package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"eunify/internal/codec"
	"eunify/internal/errors"
	"eunify/internal/render"
	"eunify/internal/session"
)

func newLoadCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "load <preset>",
		Short: "Load a preset through the pipeline and print the result",
		Long: `Load fetches a preset, drops edges whose endpoints are missing and
prints the graph as json or yaml, or the render spec with --format render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "render" {
				if _, ok := codec.Exporters()[format]; !ok {
					return errors.NewInvalidRequest("unknown format %q", format)
				}
			}

			p, err := a.newPipeline(render.NewHeadless(), false)
			if err != nil {
				return err
			}
			defer p.Close()

			s := p.session
			if err := s.LoadPreset(cmd.Context(), args[0]); err != nil {
				reportFailure(cmd.ErrOrStderr(), s)
				return err
			}
			reportDrops(cmd.ErrOrStderr(), s.Snapshot())

			return printGraph(cmd.OutOrStdout(), s, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or render")
	return cmd
}

// printGraph writes the displayed graph in format
func printGraph(w io.Writer, s *session.Session, format string) error {
	if format == "render" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s.RenderSpec())
	}
	return codec.Exporters()[format].Export(s.Graph(), w)
}

// reportFailure prints the banner the page would show
func reportFailure(w io.Writer, s *session.Session) {
	b := s.Snapshot().Banner
	if b == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", statusIcon(false), bad.Sprint(b.Message))
	if b.Detail != "" && b.Detail != b.Message {
		fmt.Fprintf(w, "  %s\n", subtle.Sprint(b.Detail))
	}
}

// reportDrops lists edges removed by the integrity filter
func reportDrops(w io.Writer, st session.State) {
	for _, d := range st.Dropped {
		fmt.Fprintf(w, "%s dropped edge %s: %s\n", warn.Sprint("!"), d.EdgeID, d.Reason())
	}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/designkb/internal/detect"
)

func newDetectCmd(g *globalFlags) *cobra.Command {
	var explain bool
	c := &cobra.Command{
		Use:   "detect QUERY",
		Short: "Print the knowledge domain a query would be routed to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), g, "warn")
			if err != nil {
				return err
			}
			defer a.Close()

			query := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.search.DetectDomain(query))
			if !explain {
				return nil
			}

			d := detect.New(a.registry.DetectRules(), a.registry.Fallback())
			for _, s := range d.Scores(query) {
				if s.Hits > 0 {
					fmt.Fprintf(out, "  %-12s %d\n", s.Domain, s.Hits)
				}
			}
			return nil
		},
	}
	c.Flags().BoolVar(&explain, "explain", false, "Also print keyword hit counts per domain")
	return c
}

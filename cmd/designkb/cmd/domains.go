package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newDomainsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List knowledge domains and stacks",
		Long:  "Lists domains in detection order with their data sources and keywords, then the stacks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), g, "warn")
			if err != nil {
				return err
			}
			defer a.Close()

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Domain", "Source", "Keywords")
			for _, d := range a.registry.Domains() {
				id := d.ID()
				if id == a.registry.Fallback() {
					id += " *"
				}
				t.Row(id, d.Source(), strings.Join(d.Keywords(), ", "))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.String())
			fmt.Fprintln(out, "* fallback when no keyword matches")
			fmt.Fprintln(out)

			st := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Stack", "Source")
			for _, s := range a.registry.Stacks() {
				st.Row(s.ID(), s.Source())
			}
			fmt.Fprintln(out, st.String())
			return nil
		},
	}
}

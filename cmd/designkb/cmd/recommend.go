package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	compositeuc "github.com/kailas-cloud/designkb/internal/usecase/composite"
)

type recommendFlags struct {
	project string
	format  string
	persist string
}

func newRecommendCmd(g *globalFlags) *cobra.Command {
	f := &recommendFlags{}
	c := &cobra.Command{
		Use:   "recommend QUERY",
		Short: "Build a design-system recommendation for a product description",
		Long: "Searches product, style, color, typography, landing, guideline and checklist knowledge\n" +
			"and folds the top hits into one recommendation. Missing data sources fall back to defaults.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, g, f, strings.Join(args, " "))
		},
	}
	c.Flags().StringVarP(&f.project, "project", "p", "", "Project name (default: the query)")
	c.Flags().StringVarP(&f.format, "format", "f", string(mode.Markdown), "Output format: json, table, markdown, html")
	c.Flags().StringVar(&f.persist, "persist", "", "Also write <dir>/<project>/"+compositeuc.MasterFile)
	return c
}

func runRecommend(cmd *cobra.Command, g *globalFlags, f *recommendFlags, query string) error {
	m, err := mode.Parse(f.format)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), g, "warn")
	if err != nil {
		return err
	}
	defer a.Close()

	rendered, err := a.compose.Build(a.context(cmd.Context()), query, f.project, m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := out.Write(rendered.Body); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if len(rendered.Body) > 0 && rendered.Body[len(rendered.Body)-1] != '\n' {
		fmt.Fprintln(out)
	}

	if f.persist != "" {
		path, err := compositeuc.Persist(f.persist, rendered.Summary)
		if err != nil {
			return err
		}
		a.log.Info("Recommendation persisted", zap.String("path", path))
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	}
	return nil
}

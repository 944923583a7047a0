package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	"github.com/kailas-cloud/designkb/internal/render"
	searchuc "github.com/kailas-cloud/designkb/internal/usecase/search"
)

type searchFlags struct {
	domain     string
	stack      string
	maxResults int
	json       bool
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	f := &searchFlags{}
	c := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search one knowledge domain or stack",
		Long: "Ranks the rows of a knowledge domain against QUERY with BM25.\n" +
			"Without --domain the domain is detected from the query. --stack searches a framework stack instead.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, g, f, strings.Join(args, " "))
		},
	}
	c.Flags().StringVarP(&f.domain, "domain", "d", "", "Domain id (auto-detected when empty)")
	c.Flags().StringVarP(&f.stack, "stack", "s", "", "Stack id; searches stack guidance instead of a domain")
	c.Flags().IntVarP(&f.maxResults, "max", "n", 0, "Maximum number of results (default from config)")
	c.Flags().BoolVar(&f.json, "json", false, "Output as JSON")
	c.MarkFlagsMutuallyExclusive("domain", "stack")
	return c
}

func runSearch(cmd *cobra.Command, g *globalFlags, f *searchFlags, query string) error {
	a, err := newApp(cmd.Context(), g, "warn")
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := a.context(cmd.Context())

	maxResults := f.maxResults
	if !cmd.Flags().Changed("max") {
		maxResults = a.cfg.Search.DefaultMaxResults
	}

	var resp searchuc.Response
	if f.stack != "" {
		resp, err = a.search.SearchStack(ctx, query, f.stack, maxResults)
	} else {
		var req request.Request
		req, err = request.New(query, f.domain, maxResults)
		if err == nil {
			resp, err = a.search.Search(ctx, &req)
		}
	}
	if err != nil {
		return err
	}

	if f.json {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	printResponse(cmd.OutOrStdout(), resp)
	return nil
}

func printResponse(w io.Writer, resp searchuc.Response) {
	label := resp.Domain
	if resp.Stack != "" {
		label = "stack " + resp.Stack
	}
	if resp.Detected {
		label += " (detected)"
	}
	fmt.Fprintf(w, "%s · %s · %d result(s)\n", label, resp.Source, resp.Count)
	if resp.Count == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	fmt.Fprint(w, render.Results(resp.Results))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

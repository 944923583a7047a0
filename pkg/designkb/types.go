package designkb

import (
	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	"github.com/kailas-cloud/designkb/internal/domain/summary"
)

// Format selects how Render prints a recommendation.
type Format = mode.Mode

// Format constants.
const (
	FormatJSON     = mode.JSON
	FormatTable    = mode.Table
	FormatMarkdown = mode.Markdown
	FormatHTML     = mode.HTML
)

// Recommendation is a composite design-system recommendation.
type Recommendation = summary.Summary

// SearchResponse is the ranked outcome of one domain or stack search.
type SearchResponse struct {
	Domain   string // domain id, or "stack" for stack searches
	Stack    string // stack id for stack searches
	Query    string
	Source   string // data-source locator that was ranked
	Detected bool   // the domain was auto-detected
	Columns  []string
	Results  []Result
}

// Result is one ranked row projected onto the domain's output columns.
type Result struct {
	Index  int     // position of the row in its data source
	Score  float64 // BM25 score rounded to 4 decimals
	Fields map[string]string
}

// DomainInfo describes a searchable knowledge domain.
type DomainInfo struct {
	ID            string
	Source        string
	SearchColumns []string
	OutputColumns []string
	Keywords      []string
}

// StackInfo describes a searchable framework stack.
type StackInfo struct {
	ID     string
	Source string
}

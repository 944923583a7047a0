package composite

import (
	"github.com/kailas-cloud/designkb/internal/domain/summary"
	"github.com/kailas-cloud/designkb/internal/registry"
)

// Step is one domain search of the composite plan.
type Step struct {
	Domain     string
	MaxResults int
}

// Plan is the fixed, ordered list of searches behind every recommendation.
var Plan = []Step{
	{Domain: registry.Product, MaxResults: 3},
	{Domain: registry.Style, MaxResults: 3},
	{Domain: registry.Color, MaxResults: 3},
	{Domain: registry.Typography, MaxResults: 3},
	{Domain: registry.Landing, MaxResults: 3},
	{Domain: registry.Guideline, MaxResults: 5},
	{Domain: registry.Checklist, MaxResults: 3},
}

// UntitledProject names a recommendation built from an empty query without a project name.
const UntitledProject = "Untitled Project"

// Defaults fill every summary field whose domain produced no hit.
var Defaults = struct {
	Category   string
	Style      string
	Palette    summary.Palette
	Typography summary.Typography
	Pattern    string
}{
	Category: "General",
	Style:    "Minimalism",
	Palette: summary.Palette{
		Primary:    "#2563EB",
		Secondary:  "#3B82F6",
		CTA:        "#F97316",
		Background: "#F8FAFC",
		Text:       "#1E293B",
	},
	Typography: summary.Typography{Heading: "Inter", Body: "Inter"},
	Pattern:    "Hero + Features + CTA",
}

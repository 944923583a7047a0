package registry

import "github.com/kailas-cloud/designkb/internal/domain"

// Built-in domain ids.
const (
	Color      = "color"
	Chart      = "chart"
	Landing    = "landing"
	Product    = "product"
	Style      = "style"
	UX         = "ux"
	Typography = "typography"
	Icons      = "icons"
	Guideline  = "guideline"
	Checklist  = "checklist"
)

type builtin struct {
	id, source     string
	search, output []string
	keywords       []string
}

// builtinDomains is ordered for auto-detection: earlier entries win ties.
var builtinDomains = []builtin{
	{
		id: Color, source: "colors.csv",
		search: []string{"Product Type", "Keywords", "Notes"},
		output: []string{
			"Product Type", "Primary (Hex)", "Secondary (Hex)", "CTA (Hex)",
			"Background (Hex)", "Text (Hex)", "Notes",
		},
		keywords: []string{"color", "palette", "hex", "#", "rgb"},
	},
	{
		id: Chart, source: "charts.csv",
		search:   []string{"Data Type", "Keywords", "Best Chart Type", "Accessibility Notes"},
		output:   []string{"Data Type", "Best Chart Type", "Secondary Options", "Accessibility Notes"},
		keywords: []string{"chart", "graph", "visualization", "trend", "bar", "pie", "scatter", "heatmap", "funnel"},
	},
	{
		id: Landing, source: "landing.csv",
		search: []string{"Pattern Name", "Keywords", "Conversion Optimization"},
		output: []string{
			"Pattern Name", "Section Order", "Primary CTA Placement", "Color Strategy", "Conversion Optimization",
		},
		keywords: []string{"landing", "page", "cta", "conversion", "hero", "testimonial", "pricing", "section"},
	},
	{
		id: Product, source: "products.csv",
		search: []string{"Product Type", "Keywords", "Primary Style Recommendation", "Key Considerations"},
		output: []string{
			"Product Type", "Primary Style Recommendation", "Secondary Styles",
			"Landing Page Pattern", "Color Palette Focus", "Key Considerations",
		},
		keywords: []string{
			"saas", "ecommerce", "e-commerce", "fintech", "healthcare", "gaming", "portfolio", "crypto", "dashboard",
		},
	},
	{
		id: Style, source: "styles.csv",
		search: []string{"Style Category", "Keywords", "Best For", "Type"},
		output: []string{
			"Style Category", "Type", "Keywords", "Primary Colors", "Effects & Animation", "Best For", "Do Not Use For",
		},
		keywords: []string{
			"style", "design", "ui", "minimalism", "glassmorphism", "neumorphism", "brutalism", "dark mode", "flat", "aurora",
		},
	},
	{
		id: UX, source: "ux-laws.csv",
		search: []string{"Law", "Keywords", "Description", "Design Implication"},
		output: []string{"Law", "Description", "Design Implication", "Example"},
		keywords: []string{
			"ux", "usability", "accessibility", "wcag", "touch", "scroll", "keyboard", "navigation", "mobile",
			"fitts", "hick", "jakob", "miller", "law",
		},
	},
	{
		id: Typography, source: "typography.csv",
		search: []string{"Font Pairing Name", "Category", "Mood/Style Keywords", "Best For"},
		output: []string{
			"Font Pairing Name", "Category", "Heading Font", "Body Font", "Mood/Style Keywords", "Best For", "Google Fonts URL",
		},
		keywords: []string{"font", "typography", "heading", "serif", "sans"},
	},
	{
		id: Icons, source: "icons.csv",
		search:   []string{"Category", "Icon Name", "Keywords", "Best For"},
		output:   []string{"Category", "Icon Name", "Keywords", "Library", "Best For"},
		keywords: []string{"icon", "svg", "lucide", "heroicons", "symbol"},
	},
	{
		id: Guideline, source: "guidelines.csv",
		search:   []string{"Category", "Issue", "Keywords", "Description"},
		output:   []string{"Category", "Issue", "Do", "Don't", "Severity"},
		keywords: []string{"guideline", "best practice", "anti-pattern", "avoid", "mistake", "pitfall"},
	},
	{
		id: Checklist, source: "checklist.csv",
		search:   []string{"Check", "Keywords", "Category"},
		output:   []string{"Category", "Check", "How to Verify"},
		keywords: []string{"checklist", "verify", "audit", "pre-delivery", "qa"},
	},
}

var builtinStacks = []struct{ id, source string }{
	{"html-tailwind", "stacks/html-tailwind.csv"},
	{"react", "stacks/react.csv"},
	{"flutter", "stacks/flutter.csv"},
}

// DefaultFallback is the domain used when auto-detection finds no keyword.
const DefaultFallback = Style

// Default returns the built-in registry. It panics only if the static table is invalid.
func Default() *Registry {
	domains := make([]domain.Descriptor, 0, len(builtinDomains))
	for _, b := range builtinDomains {
		d, err := domain.NewDescriptor(b.id, b.source, b.search, b.output, b.keywords)
		if err != nil {
			panic("registry: invalid built-in domain: " + err.Error())
		}
		domains = append(domains, d)
	}

	stacks := make([]domain.Stack, 0, len(builtinStacks))
	for _, b := range builtinStacks {
		s, err := domain.NewStack(b.id, b.source)
		if err != nil {
			panic("registry: invalid built-in stack: " + err.Error())
		}
		stacks = append(stacks, s)
	}

	r, err := New(domains, stacks, DefaultFallback)
	if err != nil {
		panic("registry: " + err.Error())
	}
	return r
}

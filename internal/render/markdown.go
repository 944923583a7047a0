package render

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/designkb/internal/domain/summary"
)

// Markdown renders s as a narrative design-system document.
func Markdown(s summary.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Design System\n\n", s.ProjectName)
	if s.Query != "" {
		fmt.Fprintf(&b, "> Generated for: %s\n\n", s.Query)
	}

	b.WriteString("## Product\n\n")
	fmt.Fprintf(&b, "**Category:** %s\n", s.Category)
	bullets(&b,
		"Recommended style", s.Product.Style,
		"Secondary styles", s.Product.SecondaryStyle,
		"Color focus", s.Product.ColorFocus,
		"Key considerations", s.Product.Considerations,
	)

	b.WriteString("\n## Style\n\n")
	fmt.Fprintf(&b, "**%s**", s.Style.Name)
	if s.Style.Type != "" {
		fmt.Fprintf(&b, " (%s)", s.Style.Type)
	}
	b.WriteString("\n")
	bullets(&b,
		"Keywords", s.Style.Keywords,
		"Primary colors", s.Style.Colors,
		"Effects", s.Style.Effects,
		"Best for", s.Style.BestFor,
		"Avoid for", s.Style.Avoid,
	)
	if len(s.Alternatives) > 0 {
		fmt.Fprintf(&b, "\nAlternatives: %s\n", strings.Join(s.Alternatives, ", "))
	}

	b.WriteString("\n## Color Palette\n\n")
	b.WriteString("| Role | Hex |\n|------|-----|\n")
	for _, c := range paletteRows(s.Palette) {
		fmt.Fprintf(&b, "| %s | `%s` |\n", c[0], c[1])
	}
	if s.Palette.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Palette.Notes)
	}

	b.WriteString("\n## Typography\n\n")
	bullets(&b,
		"Heading", s.Typography.Heading,
		"Body", s.Typography.Body,
		"Pairing", s.Typography.Pairing,
		"Mood", s.Typography.Mood,
		"Google Fonts", s.Typography.URL,
	)

	b.WriteString("\n## Landing Page Pattern\n\n")
	fmt.Fprintf(&b, "**%s**\n", s.Pattern.Name)
	bullets(&b,
		"Sections", s.Pattern.Sections,
		"Primary CTA", s.Pattern.CTA,
		"Color strategy", s.Pattern.Colors,
		"Conversion", s.Pattern.Conversion,
	)

	b.WriteString("\n## Applicable Rules\n\n")
	if len(s.Rules) == 0 {
		b.WriteString("No specific rules matched.\n")
	}
	for _, r := range s.Rules {
		fmt.Fprintf(&b, "- **%s**", r.Issue)
		if r.Category != "" || r.Severity != "" {
			fmt.Fprintf(&b, " (%s)", strings.Trim(r.Category+", "+r.Severity, ", "))
		}
		b.WriteString("\n")
		if r.Do != "" {
			fmt.Fprintf(&b, "  - Do: %s\n", r.Do)
		}
		if r.Dont != "" {
			fmt.Fprintf(&b, "  - Don't: %s\n", r.Dont)
		}
	}

	b.WriteString("\n## Pre-delivery Checklist\n\n")
	if len(s.Checks) == 0 {
		b.WriteString("No specific checks matched.\n")
	}
	for _, c := range s.Checks {
		fmt.Fprintf(&b, "- [ ] %s", c.Check)
		if c.Verify != "" {
			fmt.Fprintf(&b, " (%s)", c.Verify)
		}
		b.WriteString("\n")
	}

	if len(s.Degraded) > 0 {
		fmt.Fprintf(&b, "\n_Defaults used, no data for: %s._\n", strings.Join(s.Degraded, ", "))
	}
	return b.String()
}

// bullets writes "- **label:** value" for every non-empty value of label/value pairs.
func bullets(b *strings.Builder, pairs ...string) {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			fmt.Fprintf(b, "- **%s:** %s\n", pairs[i], pairs[i+1])
		}
	}
}

func paletteRows(p summary.Palette) [][2]string {
	return [][2]string{
		{"Primary", p.Primary},
		{"Secondary", p.Secondary},
		{"CTA", p.CTA},
		{"Background", p.Background},
		{"Text", p.Text},
	}
}

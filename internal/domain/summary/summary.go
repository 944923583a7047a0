// Package summary holds the composite design recommendation assembled from
// several knowledge domains.
package summary

import (
	"strings"
	"unicode"
)

// Summary is a complete design recommendation for one project.
type Summary struct {
	ProjectName  string     `json:"project_name"`
	Query        string     `json:"query"`
	Category     string     `json:"category"`
	Product      Product    `json:"product"`
	Style        Style      `json:"style"`
	Palette      Palette    `json:"palette"`
	Typography   Typography `json:"typography"`
	Pattern      Pattern    `json:"pattern"`
	Alternatives []string   `json:"alternative_styles"`
	Rules        []Rule     `json:"rules"`
	Checks       []Check    `json:"checks"`
	Degraded     []string   `json:"degraded_domains,omitempty"`
}

// Product is the best matching product type.
type Product struct {
	Type           string `json:"type"`
	Style          string `json:"recommended_style,omitempty"`
	SecondaryStyle string `json:"secondary_styles,omitempty"`
	Landing        string `json:"landing_pattern,omitempty"`
	ColorFocus     string `json:"color_focus,omitempty"`
	Considerations string `json:"considerations,omitempty"`
}

// Style is the recommended visual style.
type Style struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	Colors   string `json:"colors,omitempty"`
	Effects  string `json:"effects,omitempty"`
	BestFor  string `json:"best_for,omitempty"`
	Avoid    string `json:"avoid_for,omitempty"`
}

// Palette is the recommended color palette as hex values.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	CTA        string `json:"cta"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Notes      string `json:"notes,omitempty"`
}

// Typography is the recommended font pairing.
type Typography struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Pairing string `json:"pairing,omitempty"`
	Mood    string `json:"mood,omitempty"`
	URL     string `json:"google_fonts_url,omitempty"`
}

// Pair returns "Heading / Body".
func (t Typography) Pair() string { return t.Heading + " / " + t.Body }

// Pattern is the recommended landing-page structure.
type Pattern struct {
	Name       string `json:"name"`
	Sections   string `json:"sections,omitempty"`
	CTA        string `json:"cta_placement,omitempty"`
	Colors     string `json:"color_strategy,omitempty"`
	Conversion string `json:"conversion,omitempty"`
}

// Rule is one applicable design guideline.
type Rule struct {
	Category string `json:"category"`
	Issue    string `json:"issue"`
	Do       string `json:"do"`
	Dont     string `json:"dont"`
	Severity string `json:"severity"`
}

// Check is one pre-delivery test.
type Check struct {
	Category string `json:"category"`
	Check    string `json:"check"`
	Verify   string `json:"how_to_verify"`
}

// Slug turns a project name into a lowercase, dash-separated directory name.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "project"
	}
	return s
}

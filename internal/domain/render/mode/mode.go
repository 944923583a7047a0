package mode

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/designkb/internal/domain"
)

// Mode is the rendering of a composite design recommendation.
type Mode string

// Render mode constants.
const (
	// JSON is structured data.
	JSON Mode = "json"
	// Table is tabular plain text.
	Table Mode = "table"
	// Markdown is the narrative text form.
	Markdown Mode = "markdown"
	// HTML is the narrative form converted to HTML.
	HTML Mode = "html"
)

// All lists the supported modes in help order.
var All = []Mode{JSON, Table, Markdown, HTML}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == JSON || m == Table || m == Markdown || m == HTML
}

// ContentType returns the HTTP media type of a rendering in this mode.
func (m Mode) ContentType() string {
	switch m {
	case JSON:
		return "application/json"
	case HTML:
		return "text/html; charset=utf-8"
	case Markdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Parse maps user input to a Mode. Empty input selects Markdown;
// "ascii" and "text" are accepted aliases for Table, "md" for Markdown.
func Parse(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Markdown, nil
	case "ascii", "text":
		return Table, nil
	case "md":
		return Markdown, nil
	default:
		if !m.IsValid() {
			return "", fmt.Errorf("%w: %q", domain.ErrInvalidRenderMode, s)
		}
		return m, nil
	}
}

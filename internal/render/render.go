// Package render turns design summaries and search results into text.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	"github.com/kailas-cloud/designkb/internal/domain/summary"
)

// Summary renders s in the given mode.
func Summary(s summary.Summary, m mode.Mode) ([]byte, error) {
	switch m {
	case mode.JSON:
		return JSON(s)
	case mode.Table:
		return []byte(Table(s)), nil
	case mode.Markdown:
		return []byte(Markdown(s)), nil
	case mode.HTML:
		return HTML(s)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRenderMode, m)
	}
}

// JSON renders s as indented JSON with a trailing newline.
func JSON(s summary.Summary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(s)); err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	return buf.Bytes(), nil
}

// normalize replaces nil lists with empty ones so JSON carries [] rather than null.
func normalize(s summary.Summary) summary.Summary {
	if s.Rules == nil {
		s.Rules = []summary.Rule{}
	}
	if s.Checks == nil {
		s.Checks = []summary.Check{}
	}
	if s.Alternatives == nil {
		s.Alternatives = []string{}
	}
	return s
}

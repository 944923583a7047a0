package composite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	"github.com/kailas-cloud/designkb/internal/domain/search/result"
	"github.com/kailas-cloud/designkb/internal/domain/summary"
	"github.com/kailas-cloud/designkb/internal/logger"
	"github.com/kailas-cloud/designkb/internal/metrics"
	"github.com/kailas-cloud/designkb/internal/registry"
	"github.com/kailas-cloud/designkb/internal/render"
)

// MasterFile is the file name written by Persist.
const MasterFile = "MASTER.md"

// Rendered is a summary together with its rendering in one mode.
type Rendered struct {
	Summary summary.Summary
	Mode    mode.Mode
	Body    []byte
}

// ContentType returns the MIME type of Body.
func (r Rendered) ContentType() string { return r.Mode.ContentType() }

// Service composes several domain searches into one design recommendation.
type Service struct {
	search Searcher
}

// New creates a composite service.
func New(s Searcher) *Service {
	return &Service{search: s}
}

// Build summarizes query and renders the summary in mode m.
func (s *Service) Build(ctx context.Context, query, projectName string, m mode.Mode) (Rendered, error) {
	if !m.IsValid() {
		return Rendered{}, fmt.Errorf("%w: %q", domain.ErrInvalidRenderMode, m)
	}

	sum, err := s.Summarize(ctx, query, projectName)
	if err != nil {
		return Rendered{}, err
	}

	body, err := render.Summary(sum, m)
	if err != nil {
		return Rendered{}, fmt.Errorf("render summary: %w", err)
	}
	return Rendered{Summary: sum, Mode: m, Body: body}, nil
}

// Summarize runs every step of Plan and folds the top hits into a Summary.
// A domain whose data source is missing contributes nothing and its fields fall
// back to Defaults; any other search error aborts.
func (s *Service) Summarize(ctx context.Context, query, projectName string) (summary.Summary, error) {
	hits := make(map[string][]result.Result, len(Plan))
	var degraded []string

	for _, step := range Plan {
		req, err := request.New(query, step.Domain, step.MaxResults)
		if err != nil {
			return summary.Summary{}, fmt.Errorf("composite request: %w", err)
		}

		resp, err := s.search.Search(ctx, &req)
		if err != nil {
			if errors.Is(err, domain.ErrDataSourceMissing) {
				logger.FromContext(ctx).Warn("Composite domain unavailable, using defaults",
					zap.String("domain", step.Domain),
					zap.Error(err),
				)
				metrics.CompositeDegradedTotal.WithLabelValues(step.Domain).Inc()
				degraded = append(degraded, step.Domain)
				continue
			}
			return summary.Summary{}, fmt.Errorf("composite %s: %w", step.Domain, err)
		}
		hits[step.Domain] = resp.Results
	}

	sum := fold(hits)
	sum.ProjectName = ProjectName(projectName, query)
	sum.Query = strings.TrimSpace(query)
	sum.Degraded = degraded
	return sum, nil
}

// ProjectName picks the display name: the given name, else the query, else UntitledProject.
func ProjectName(name, query string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if q := strings.TrimSpace(query); q != "" {
		return q
	}
	return UntitledProject
}

// fold maps the per-domain hits onto summary fields.
func fold(hits map[string][]result.Result) summary.Summary {
	sum := summary.Summary{
		Category:     Defaults.Category,
		Product:      summary.Product{Type: Defaults.Category},
		Style:        summary.Style{Name: Defaults.Style},
		Palette:      Defaults.Palette,
		Typography:   Defaults.Typography,
		Pattern:      summary.Pattern{Name: Defaults.Pattern},
		Alternatives: []string{},
		Rules:        []summary.Rule{},
		Checks:       []summary.Check{},
	}

	if top, ok := first(hits[registry.Product]); ok {
		sum.Category = or(top.Get("Product Type"), Defaults.Category)
		sum.Product = summary.Product{
			Type:           sum.Category,
			Style:          top.Get("Primary Style Recommendation"),
			SecondaryStyle: top.Get("Secondary Styles"),
			Landing:        top.Get("Landing Page Pattern"),
			ColorFocus:     top.Get("Color Palette Focus"),
			Considerations: top.Get("Key Considerations"),
		}
	}

	if styles := hits[registry.Style]; len(styles) > 0 {
		top := styles[0]
		sum.Style = summary.Style{
			Name:     or(top.Get("Style Category"), Defaults.Style),
			Type:     top.Get("Type"),
			Keywords: top.Get("Keywords"),
			Colors:   top.Get("Primary Colors"),
			Effects:  top.Get("Effects & Animation"),
			BestFor:  top.Get("Best For"),
			Avoid:    top.Get("Do Not Use For"),
		}
		for _, alt := range styles[1:] {
			if name := alt.Get("Style Category"); name != "" {
				sum.Alternatives = append(sum.Alternatives, name)
			}
		}
	}

	if top, ok := first(hits[registry.Color]); ok {
		d := Defaults.Palette
		sum.Palette = summary.Palette{
			Primary:    or(top.Get("Primary (Hex)"), d.Primary),
			Secondary:  or(top.Get("Secondary (Hex)"), d.Secondary),
			CTA:        or(top.Get("CTA (Hex)"), d.CTA),
			Background: or(top.Get("Background (Hex)"), d.Background),
			Text:       or(top.Get("Text (Hex)"), d.Text),
			Notes:      top.Get("Notes"),
		}
	}

	if top, ok := first(hits[registry.Typography]); ok {
		d := Defaults.Typography
		sum.Typography = summary.Typography{
			Heading: or(top.Get("Heading Font"), d.Heading),
			Body:    or(top.Get("Body Font"), d.Body),
			Pairing: top.Get("Font Pairing Name"),
			Mood:    top.Get("Mood/Style Keywords"),
			URL:     top.Get("Google Fonts URL"),
		}
	}

	if top, ok := first(hits[registry.Landing]); ok {
		sum.Pattern = summary.Pattern{
			Name:       or(top.Get("Pattern Name"), Defaults.Pattern),
			Sections:   top.Get("Section Order"),
			CTA:        top.Get("Primary CTA Placement"),
			Colors:     top.Get("Color Strategy"),
			Conversion: top.Get("Conversion Optimization"),
		}
	}

	for _, r := range hits[registry.Guideline] {
		sum.Rules = append(sum.Rules, summary.Rule{
			Category: r.Get("Category"),
			Issue:    r.Get("Issue"),
			Do:       r.Get("Do"),
			Dont:     r.Get("Don't"),
			Severity: r.Get("Severity"),
		})
	}

	for _, r := range hits[registry.Checklist] {
		sum.Checks = append(sum.Checks, summary.Check{
			Category: r.Get("Category"),
			Check:    r.Get("Check"),
			Verify:   r.Get("How to Verify"),
		})
	}
	return sum
}

func first(rs []result.Result) (result.Result, bool) {
	if len(rs) == 0 {
		return result.Result{}, false
	}
	return rs[0], true
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Persist writes the markdown narrative of sum to <dir>/<project-slug>/MASTER.md
// and returns the written path.
func Persist(dir string, sum summary.Summary) (string, error) {
	target := filepath.Join(dir, summary.Slug(sum.ProjectName))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}

	path := filepath.Join(target, MasterFile)
	if err := os.WriteFile(path, []byte(render.Markdown(sum)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

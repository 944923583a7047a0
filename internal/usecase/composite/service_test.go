package composite

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	"github.com/kailas-cloud/designkb/internal/domain/row"
	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	"github.com/kailas-cloud/designkb/internal/domain/search/result"
	"github.com/kailas-cloud/designkb/internal/registry"
	"github.com/kailas-cloud/designkb/internal/usecase/search"
)

// --- Mocks ---

type mockSearcher struct {
	hits   map[string][]result.Result
	errs   map[string]error
	calls  []string
	limits map[string]int
}

func (m *mockSearcher) Search(_ context.Context, req *request.Request) (search.Response, error) {
	m.calls = append(m.calls, req.Domain())
	if m.limits == nil {
		m.limits = map[string]int{}
	}
	m.limits[req.Domain()] = req.MaxResults()
	if err := m.errs[req.Domain()]; err != nil {
		return search.Response{}, err
	}
	rs := m.hits[req.Domain()]
	if len(rs) > req.MaxResults() {
		rs = rs[:req.MaxResults()]
	}
	return search.Response{Domain: req.Domain(), Query: req.Query(), Count: len(rs), Results: rs}, nil
}

func hit(i int, cols []string, vals ...string) result.Result {
	return result.New(i, float64(10-i), row.New(cols, vals))
}

func fullHits() map[string][]result.Result {
	return map[string][]result.Result{
		registry.Product: {hit(1, []string{"Product Type", "Primary Style Recommendation", "Key Considerations"},
			"Fintech Dashboard", "Data-Dense Dashboard", "Numeric legibility")},
		registry.Style: {
			hit(7, []string{"Style Category", "Type", "Best For"}, "Data-Dense Dashboard", "Layout", "Fintech"),
			hit(1, []string{"Style Category", "Type", "Best For"}, "Glassmorphism", "General", "Crypto"),
		},
		registry.Color: {hit(1, []string{"Product Type", "Primary (Hex)", "Secondary (Hex)", "CTA (Hex)", "Background (Hex)", "Text (Hex)"},
			"Fintech", "#0F172A", "#1E40AF", "#10B981", "#F8FAFC", "#0F172A")},
		registry.Typography: {hit(4, []string{"Font Pairing Name", "Heading Font", "Body Font"},
			"Humanist Trust", "Lato", "Merriweather")},
		registry.Landing: {hit(3, []string{"Pattern Name", "Section Order"}, "Product Demo", "Hero, Tour, CTA")},
		registry.Guideline: {
			hit(0, []string{"Category", "Issue", "Do", "Don't", "Severity"}, "Accessibility", "Low contrast", "Check", "Gray", "High"),
			hit(1, []string{"Category", "Issue", "Do", "Don't", "Severity"}, "Accessibility", "Focus", "Ring", "None", "High"),
		},
		registry.Checklist: {hit(0, []string{"Category", "Check", "How to Verify"}, "Accessibility", "Contrast 4.5:1", "Checker")},
	}
}

// --- Tests ---

func TestSummarize_FollowsPlan(t *testing.T) {
	m := &mockSearcher{hits: fullHits()}
	svc := New(m)

	if _, err := svc.Summarize(context.Background(), "fintech dashboard", "Acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"product", "style", "color", "typography", "landing", "guideline", "checklist"}
	if !reflect.DeepEqual(m.calls, want) {
		t.Errorf("unexpected plan order: %v", m.calls)
	}
	if m.limits["guideline"] != 5 || m.limits["checklist"] != 3 || m.limits["product"] != 3 {
		t.Errorf("unexpected limits: %v", m.limits)
	}
}

func TestSummarize_UsesTopHits(t *testing.T) {
	svc := New(&mockSearcher{hits: fullHits()})

	sum, err := svc.Summarize(context.Background(), "fintech dashboard", "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.ProjectName != "Acme" || sum.Query != "fintech dashboard" {
		t.Errorf("unexpected header: %q %q", sum.ProjectName, sum.Query)
	}
	if sum.Category != "Fintech Dashboard" || sum.Product.Style != "Data-Dense Dashboard" {
		t.Errorf("unexpected product: %+v", sum.Product)
	}
	if sum.Style.Name != "Data-Dense Dashboard" {
		t.Errorf("unexpected style: %q", sum.Style.Name)
	}
	if !reflect.DeepEqual(sum.Alternatives, []string{"Glassmorphism"}) {
		t.Errorf("unexpected alternatives: %v", sum.Alternatives)
	}
	if sum.Palette.CTA != "#10B981" || sum.Palette.Primary != "#0F172A" {
		t.Errorf("unexpected palette: %+v", sum.Palette)
	}
	if sum.Typography.Pair() != "Lato / Merriweather" {
		t.Errorf("unexpected typography: %q", sum.Typography.Pair())
	}
	if sum.Pattern.Name != "Product Demo" {
		t.Errorf("unexpected pattern: %q", sum.Pattern.Name)
	}
	if len(sum.Rules) != 2 || sum.Rules[1].Issue != "Focus" || sum.Rules[0].Dont != "Gray" {
		t.Errorf("unexpected rules: %+v", sum.Rules)
	}
	if len(sum.Checks) != 1 || sum.Checks[0].Verify != "Checker" {
		t.Errorf("unexpected checks: %+v", sum.Checks)
	}
	if len(sum.Degraded) != 0 {
		t.Errorf("unexpected degraded domains: %v", sum.Degraded)
	}
}

func TestSummarize_DefaultsWhenNoHits(t *testing.T) {
	svc := New(&mockSearcher{})

	sum, err := svc.Summarize(context.Background(), "zzz", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.Category != "General" || sum.Style.Name != "Minimalism" {
		t.Errorf("unexpected defaults: %q %q", sum.Category, sum.Style.Name)
	}
	if sum.Palette != Defaults.Palette {
		t.Errorf("unexpected palette: %+v", sum.Palette)
	}
	if sum.Typography.Pair() != "Inter / Inter" {
		t.Errorf("unexpected typography: %q", sum.Typography.Pair())
	}
	if sum.Pattern.Name != "Hero + Features + CTA" {
		t.Errorf("unexpected pattern: %q", sum.Pattern.Name)
	}
	if sum.Rules == nil || sum.Checks == nil || len(sum.Rules) != 0 || len(sum.Checks) != 0 {
		t.Errorf("rules and checks must be empty lists: %v %v", sum.Rules, sum.Checks)
	}
	if sum.ProjectName != "zzz" {
		t.Errorf("expected query as project name, got %q", sum.ProjectName)
	}
}

func TestSummarize_LandingSourceMissing(t *testing.T) {
	hits := fullHits()
	m := &mockSearcher{
		hits: hits,
		errs: map[string]error{
			registry.Landing: domain.NewSourceError("landing.csv", domain.ErrDataSourceMissing),
		},
	}
	svc := New(m)

	sum, err := svc.Summarize(context.Background(), "fintech dashboard", "Acme")
	if err != nil {
		t.Fatalf("missing landing data must not fail: %v", err)
	}
	if sum.Pattern.Name != "Hero + Features + CTA" {
		t.Errorf("expected default pattern, got %q", sum.Pattern.Name)
	}
	if sum.Style.Name != "Data-Dense Dashboard" || sum.Palette.CTA != "#10B981" || len(sum.Rules) != 2 {
		t.Error("other domains must still contribute")
	}
	if !reflect.DeepEqual(sum.Degraded, []string{"landing"}) {
		t.Errorf("unexpected degraded domains: %v", sum.Degraded)
	}
	if len(m.calls) != len(Plan) {
		t.Errorf("every step must run, got %v", m.calls)
	}
}

func TestSummarize_AbortsOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := map[string]error{
		"malformed": domain.ErrMalformedDataSource,
		"other":     boom,
	}
	for name, e := range tests {
		t.Run(name, func(t *testing.T) {
			m := &mockSearcher{hits: fullHits(), errs: map[string]error{registry.Color: e}}
			_, err := New(m).Summarize(context.Background(), "fintech", "")
			if !errors.Is(err, e) {
				t.Errorf("expected %v, got %v", e, err)
			}
			if len(m.calls) != 3 {
				t.Errorf("expected to stop after color, got %v", m.calls)
			}
		})
	}
}

func TestSummarize_QueryTooLong(t *testing.T) {
	_, err := New(&mockSearcher{}).Summarize(context.Background(), strings.Repeat("a", request.MaxQueryLength+1), "")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		name, query, want string
	}{
		{"Acme", "fintech", "Acme"},
		{"  ", " fintech app ", "fintech app"},
		{"", "", UntitledProject},
		{"", "   ", UntitledProject},
	}
	for _, tc := range tests {
		if got := ProjectName(tc.name, tc.query); got != tc.want {
			t.Errorf("ProjectName(%q, %q) = %q, want %q", tc.name, tc.query, got, tc.want)
		}
	}
}

func TestBuild_Modes(t *testing.T) {
	svc := New(&mockSearcher{hits: fullHits()})

	r, err := svc.Build(context.Background(), "fintech dashboard", "Acme", mode.JSON)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(r.Body, &decoded); err != nil {
		t.Fatalf("json body: %v", err)
	}
	if decoded["project_name"] != "Acme" || r.ContentType() != "application/json" {
		t.Errorf("unexpected json rendering: %v %s", decoded["project_name"], r.ContentType())
	}

	r, err = svc.Build(context.Background(), "fintech dashboard", "Acme", mode.Markdown)
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	if !strings.Contains(string(r.Body), "# Acme Design System") {
		t.Errorf("unexpected markdown: %s", r.Body)
	}

	r, err = svc.Build(context.Background(), "fintech dashboard", "Acme", mode.Table)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if !strings.Contains(string(r.Body), "Lato / Merriweather") {
		t.Errorf("unexpected table: %s", r.Body)
	}

	r, err = svc.Build(context.Background(), "fintech dashboard", "Acme", mode.HTML)
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(string(r.Body), "<h1>Acme Design System</h1>") {
		t.Errorf("unexpected html: %s", r.Body)
	}
}

func TestBuild_InvalidModeSkipsSearch(t *testing.T) {
	m := &mockSearcher{}
	_, err := New(m).Build(context.Background(), "fintech", "", mode.Mode("pdf"))
	if !errors.Is(err, domain.ErrInvalidRenderMode) {
		t.Errorf("expected ErrInvalidRenderMode, got %v", err)
	}
	if len(m.calls) != 0 {
		t.Error("no search should run for an invalid mode")
	}
}

func TestPersist(t *testing.T) {
	dir := t.TempDir()
	sum, err := New(&mockSearcher{hits: fullHits()}).Summarize(context.Background(), "fintech", "Acme Pay")
	if err != nil {
		t.Fatal(err)
	}

	path, err := Persist(dir, sum)
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if path != filepath.Join(dir, "acme-pay", MasterFile) {
		t.Errorf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Acme Pay Design System") {
		t.Errorf("unexpected content: %s", data)
	}

	// Persisting again overwrites.
	sum.Category = "Changed"
	if _, err := Persist(dir, sum); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "**Category:** Changed") {
		t.Error("expected overwritten file")
	}
}

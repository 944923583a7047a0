package designkb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	"github.com/kailas-cloud/designkb/internal/domain/row"
	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	"github.com/kailas-cloud/designkb/internal/domain/search/result"
	"github.com/kailas-cloud/designkb/internal/domain/summary"
	compositeuc "github.com/kailas-cloud/designkb/internal/usecase/composite"
	healthuc "github.com/kailas-cloud/designkb/internal/usecase/health"
	searchuc "github.com/kailas-cloud/designkb/internal/usecase/search"
)

func TestClient_Search_ConvertsResults(t *testing.T) {
	cols := []string{"Product Type", "Notes"}
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, req *request.Request) (searchuc.Response, error) {
			if req.Domain() != "color" || req.MaxResults() != 2 {
				t.Errorf("request = %q/%d", req.Domain(), req.MaxResults())
			}
			return searchuc.Response{
				Domain: "color",
				Query:  req.Query(),
				Source: "colors.csv",
				Count:  2,
				Results: []result.Result{
					result.New(1, 2.5, row.New(cols, []string{"Fintech", "navy"})),
					result.New(0, 0.12345, row.New(cols, []string{"SaaS", "blue"})),
				},
			}, nil
		},
	}

	c := testClient(mock, nil, nil)
	resp, err := c.Search(context.Background(), "fintech", "Color", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Domain != "color" || resp.Source != "colors.csv" {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Columns) != 2 || resp.Columns[0] != "Product Type" {
		t.Errorf("Columns = %v", resp.Columns)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].Index != 1 || resp.Results[0].Fields["Product Type"] != "Fintech" {
		t.Errorf("first = %+v", resp.Results[0])
	}
	if resp.Results[1].Score != 0.1235 {
		t.Errorf("Score = %v, want 0.1235", resp.Results[1].Score)
	}
}

func TestClient_Search_EmptyResultsNotNil(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ *request.Request) (searchuc.Response, error) {
			return searchuc.Response{Domain: "style", Results: []result.Result{}}, nil
		},
	}
	resp, err := testClient(mock, nil, nil).Search(context.Background(), "", "style", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Errorf("Results = %#v, want empty non-nil", resp.Results)
	}
}

func TestClient_Search_InvalidRequest(t *testing.T) {
	called := false
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ *request.Request) (searchuc.Response, error) {
			called = true
			return searchuc.Response{}, nil
		},
	}
	_, err := testClient(mock, nil, nil).Search(context.Background(), "q", "", -1)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
	if called {
		t.Error("use case should not be called")
	}
}

func TestClient_Search_Error(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, _ *request.Request) (searchuc.Response, error) {
			return searchuc.Response{}, fmt.Errorf("resolve domain: %w", domain.ErrDomainNotFound)
		},
	}
	_, err := testClient(mock, nil, nil).Search(context.Background(), "q", "nope", 3)
	if !errors.Is(err, ErrDomainNotFound) {
		t.Errorf("err = %v, want ErrDomainNotFound", err)
	}
}

func TestClient_SearchStack(t *testing.T) {
	mock := &mockSearchUC{
		searchStackFn: func(_ context.Context, query, stackID string, maxResults int) (searchuc.Response, error) {
			if stackID != "react" || maxResults != 5 {
				t.Errorf("args = %q/%d", stackID, maxResults)
			}
			return searchuc.Response{Domain: searchuc.StackDomain, Stack: stackID, Query: query}, nil
		},
	}
	resp, err := testClient(mock, nil, nil).SearchStack(context.Background(), "state", "react", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Stack != "react" || resp.Domain != "stack" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestClient_Recommend(t *testing.T) {
	mock := &mockComposeUC{
		summarizeFn: func(_ context.Context, query, name string) (summary.Summary, error) {
			return summary.Summary{ProjectName: name, Query: query, Degraded: []string{"landing"}}, nil
		},
	}
	rec, err := testClient(nil, mock, nil).Recommend(context.Background(), "fintech", "Ledger")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ProjectName != "Ledger" || len(rec.Degraded) != 1 {
		t.Errorf("rec = %+v", rec)
	}
}

func TestClient_Recommend_Error(t *testing.T) {
	mock := &mockComposeUC{
		summarizeFn: func(_ context.Context, _, _ string) (summary.Summary, error) {
			return summary.Summary{}, domain.ErrMalformedDataSource
		},
	}
	_, err := testClient(nil, mock, nil).Recommend(context.Background(), "x", "")
	if !errors.Is(err, ErrMalformedDataSource) {
		t.Errorf("err = %v", err)
	}
}

func TestClient_Render(t *testing.T) {
	mock := &mockComposeUC{
		buildFn: func(_ context.Context, _, _ string, m mode.Mode) (compositeuc.Rendered, error) {
			if m != FormatHTML {
				t.Errorf("mode = %s", m)
			}
			return compositeuc.Rendered{Mode: m, Body: []byte("<html>")}, nil
		},
	}
	body, err := testClient(nil, mock, nil).Render(context.Background(), "x", "", FormatHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "<html>" {
		t.Errorf("body = %q", body)
	}
}

func TestClient_Health(t *testing.T) {
	mock := &mockHealthUC{report: healthuc.Report{
		Status:      healthuc.Degraded,
		Checks:      map[string]healthuc.CheckResult{healthuc.CheckSources: healthuc.CheckError},
		Unavailable: []string{"landing.csv"},
	}}
	h := testClient(nil, nil, mock).Health(context.Background())
	if h.Status != "degraded" {
		t.Errorf("Status = %q", h.Status)
	}
	if h.Checks["data_sources"] != "error" {
		t.Errorf("Checks = %v", h.Checks)
	}
	if len(h.Unavailable) != 1 {
		t.Errorf("Unavailable = %v", h.Unavailable)
	}
}

func TestNew_BuiltinData(t *testing.T) {
	c, err := New(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if got := c.DetectDomain("fitts's law and touch target size"); got != "ux" {
		t.Errorf("DetectDomain = %q, want ux", got)
	}

	resp, err := c.Search(context.Background(), "fintech dashboard", "product", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) == 0 || resp.Results[0].Fields["Product Type"] != "Fintech Dashboard" {
		t.Errorf("top result = %+v", resp.Results)
	}

	rec, err := c.Recommend(context.Background(), "fintech dashboard", "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.ProjectName != "fintech dashboard" || len(rec.Degraded) != 0 {
		t.Errorf("rec = %+v", rec)
	}

	if h := c.Health(context.Background()); h.Status != "ok" {
		t.Errorf("Health = %+v", h)
	}
	if len(c.Domains()) != 10 || len(c.Stacks()) != 3 {
		t.Errorf("Domains/Stacks = %d/%d", len(c.Domains()), len(c.Stacks()))
	}
}

func TestNew_WithFS_MissingSourceDegrades(t *testing.T) {
	fsys := fstest.MapFS{
		"colors.csv": {Data: []byte(
			"Product Type,Keywords,Primary (Hex),Secondary (Hex),CTA (Hex),Background (Hex),Text (Hex),Notes\n" +
				"Bakery,bread cakes,#111111,#222222,#333333,#FFFFFF,#000000,warm\n" +
				"Fintech,fintech dashboard,#0F172A,#1E40AF,#10B981,#F8FAFC,#0F172A,navy\n")},
	}
	c, err := New(context.Background(), WithFS(fsys))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Search(context.Background(), "fintech dashboard", "color", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Index != 1 {
		t.Errorf("Results = %+v", resp.Results)
	}

	_, err = c.Search(context.Background(), "x", "product", 3)
	if !errors.Is(err, ErrDataSourceMissing) {
		t.Errorf("err = %v, want ErrDataSourceMissing", err)
	}

	rec, err := c.Recommend(context.Background(), "fintech", "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Pattern.Name != "Hero + Features + CTA" || rec.Palette.Primary != "#0F172A" {
		t.Errorf("rec = %+v", rec)
	}

	if h := c.Health(context.Background()); h.Status != "degraded" {
		t.Errorf("Health status = %q, want degraded", h.Status)
	}
}

func TestNew_InvalidBM25(t *testing.T) {
	if _, err := New(context.Background(), WithBM25(-1, 0.75)); err == nil {
		t.Fatal("expected error for negative k1")
	}
}

func TestNew_RedisWithFSRejected(t *testing.T) {
	_, err := New(context.Background(), WithRedis("localhost:6379", ""), WithFS(fstest.MapFS{}))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestObserver_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(context.Background(), WithPrometheus(reg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = c.Search(context.Background(), "fintech", "color", 3)
	_, _ = c.Search(context.Background(), "x", "nope", 3)

	ok := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("search", "ok"))
	failed := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("search", "error"))
	if ok != 1 || failed != 1 {
		t.Errorf("ok=%v error=%v, want 1/1", ok, failed)
	}

	// A second client on the same registry reuses the collectors.
	if _, err := New(context.Background(), WithPrometheus(reg)); err != nil {
		t.Fatalf("second client: %v", err)
	}
}

package designkb

import (
	"context"

	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	"github.com/kailas-cloud/designkb/internal/domain/summary"
	compositeuc "github.com/kailas-cloud/designkb/internal/usecase/composite"
	healthuc "github.com/kailas-cloud/designkb/internal/usecase/health"
	searchuc "github.com/kailas-cloud/designkb/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn      func(ctx context.Context, req *request.Request) (searchuc.Response, error)
	searchStackFn func(ctx context.Context, query, stackID string, maxResults int) (searchuc.Response, error)
	detectFn      func(query string) string
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (searchuc.Response, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) SearchStack(
	ctx context.Context, query, stackID string, maxResults int,
) (searchuc.Response, error) {
	return m.searchStackFn(ctx, query, stackID, maxResults)
}

func (m *mockSearchUC) DetectDomain(query string) string {
	return m.detectFn(query)
}

// --- composeUseCase mock ---

type mockComposeUC struct {
	summarizeFn func(ctx context.Context, query, projectName string) (summary.Summary, error)
	buildFn     func(ctx context.Context, query, projectName string, m mode.Mode) (compositeuc.Rendered, error)
}

func (m *mockComposeUC) Summarize(ctx context.Context, query, projectName string) (summary.Summary, error) {
	return m.summarizeFn(ctx, query, projectName)
}

func (m *mockComposeUC) Build(
	ctx context.Context, query, projectName string, md mode.Mode,
) (compositeuc.Rendered, error) {
	return m.buildFn(ctx, query, projectName, md)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(searchSvc searchUseCase, composeSvc composeUseCase, healthSvc healthUseCase) *Client {
	return &Client{
		searchSvc:  searchSvc,
		composeSvc: composeSvc,
		healthSvc:  healthSvc,
	}
}

package designkb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/designkb/data"
	"github.com/kailas-cloud/designkb/internal/bm25"
	dbRedis "github.com/kailas-cloud/designkb/internal/db/redis"
	"github.com/kailas-cloud/designkb/internal/detect"
	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	"github.com/kailas-cloud/designkb/internal/domain/row"
	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	"github.com/kailas-cloud/designkb/internal/domain/summary"
	"github.com/kailas-cloud/designkb/internal/logger"
	"github.com/kailas-cloud/designkb/internal/registry"
	"github.com/kailas-cloud/designkb/internal/repository/rows"
	"github.com/kailas-cloud/designkb/internal/repository/source"
	compositeuc "github.com/kailas-cloud/designkb/internal/usecase/composite"
	healthuc "github.com/kailas-cloud/designkb/internal/usecase/health"
	searchuc "github.com/kailas-cloud/designkb/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Response, error)
	SearchStack(ctx context.Context, query, stackID string, maxResults int) (searchuc.Response, error)
	DetectDomain(query string) string
}

type composeUseCase interface {
	Summarize(ctx context.Context, query, projectName string) (summary.Summary, error)
	Build(ctx context.Context, query, projectName string, m mode.Mode) (compositeuc.Rendered, error)
}

// Client is the designkb entry point. Safe for concurrent use.
type Client struct {
	store      *dbRedis.Store
	registry   *registry.Registry
	searchSvc  searchUseCase
	composeSvc composeUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client. Without options it serves the built-in knowledge bases.
// With WithRedis the provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	params := bm25.DefaultParams()
	if cfg.k1 != nil {
		params.K1 = *cfg.k1
	}
	if cfg.b != nil {
		params.B = *cfg.b
	}
	scorer, err := bm25.NewScorer(params)
	if err != nil {
		return nil, fmt.Errorf("designkb: %w", err)
	}

	reg := registry.Default()
	if cfg.registryPath != "" {
		if reg, err = registry.Load(cfg.registryPath); err != nil {
			return nil, fmt.Errorf("designkb: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	c := &Client{registry: reg, obs: obs}
	provider, err := c.openProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cache := rows.New(provider, nil)
	searchSvc := searchuc.New(reg, cache, detect.New(reg.DetectRules(), reg.Fallback()), scorer)
	c.searchSvc = searchSvc
	c.composeSvc = compositeuc.New(searchSvc)
	c.healthSvc = healthuc.New(provider, cache, reg.Sources())
	return c, nil
}

type dataProvider interface {
	Load(ctx context.Context, locator string) ([]row.Row, error)
	Ping(ctx context.Context) error
}

func (c *Client) openProvider(ctx context.Context, cfg *clientConfig) (dataProvider, error) {
	if len(cfg.redisAddrs) == 0 {
		if cfg.fsys != nil {
			return source.NewFS(cfg.fsys), nil
		}
		return source.NewFS(data.FS), nil
	}
	if cfg.fsys != nil {
		return nil, errors.New("designkb: WithRedis cannot be combined with WithDataDir or WithFS")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.redisAddrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("designkb: create redis store: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("designkb: redis not ready: %w", err)
	}
	c.store = store
	return source.NewKV(store, cfg.keyPrefix), nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search ranks one domain against query. An empty domain is auto-detected.
// An empty query, a query sharing no token with the data, and maxResults == 0
// all yield an empty result list, not an error.
func (c *Client) Search(ctx context.Context, query, domainID string, maxResults int) (_ SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req, err := request.New(query, domainID, maxResults)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	resp, err := c.searchSvc.Search(c.context(ctx), &req)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	return toSearchResponse(resp), nil
}

// SearchStack ranks the guidance of one framework stack against query.
func (c *Client) SearchStack(ctx context.Context, query, stackID string, maxResults int) (_ SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_stack", start, err) }()

	resp, err := c.searchSvc.SearchStack(c.context(ctx), query, stackID, maxResults)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search stack: %w", err)
	}
	return toSearchResponse(resp), nil
}

// DetectDomain returns the domain a query would be routed to. It never fails.
func (c *Client) DetectDomain(query string) string {
	return c.searchSvc.DetectDomain(query)
}

// Recommend builds a design-system recommendation. Domains whose data source is
// missing fall back to defaults and are listed in Recommendation.Degraded.
func (c *Client) Recommend(ctx context.Context, query, projectName string) (_ Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err) }()

	sum, err := c.composeSvc.Summarize(c.context(ctx), query, projectName)
	if err != nil {
		return Recommendation{}, fmt.Errorf("recommend: %w", err)
	}
	return sum, nil
}

// Render builds a recommendation and prints it in the given format.
func (c *Client) Render(ctx context.Context, query, projectName string, f Format) (_ []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe("render", start, err) }()

	rendered, err := c.composeSvc.Build(c.context(ctx), query, projectName, f)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return rendered.Body, nil
}

// Domains lists the registered knowledge domains in detection order.
func (c *Client) Domains() []DomainInfo {
	ds := c.registry.Domains()
	out := make([]DomainInfo, 0, len(ds))
	for _, d := range ds {
		out = append(out, DomainInfo{
			ID:            d.ID(),
			Source:        d.Source(),
			SearchColumns: d.SearchColumns(),
			OutputColumns: d.OutputColumns(),
			Keywords:      d.Keywords(),
		})
	}
	return out
}

// Stacks lists the registered framework stacks.
func (c *Client) Stacks() []StackInfo {
	ss := c.registry.Stacks()
	out := make([]StackInfo, 0, len(ss))
	for _, s := range ss {
		out = append(out, StackInfo{ID: s.ID(), Source: s.Source()})
	}
	return out
}

// context attaches the client logger so internal services log through it.
func (c *Client) context(ctx context.Context) context.Context {
	if c.obs == nil || c.obs.logger == nil {
		return ctx
	}
	return logger.ContextWithLogger(ctx, c.obs.logger)
}

func toSearchResponse(r searchuc.Response) SearchResponse {
	out := SearchResponse{
		Domain:   r.Domain,
		Stack:    r.Stack,
		Query:    r.Query,
		Source:   r.Source,
		Detected: r.Detected,
		Results:  make([]Result, 0, len(r.Results)),
	}
	for i := range r.Results {
		res := &r.Results[i]
		fields := res.Fields()
		if out.Columns == nil {
			out.Columns = fields.Columns()
		}
		m := make(map[string]string, fields.Len())
		for _, col := range fields.Columns() {
			m[col] = fields.Get(col)
		}
		out.Results = append(out.Results, Result{Index: res.Index(), Score: res.Score(), Fields: m})
	}
	return out
}

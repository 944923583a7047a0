package chi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/render/mode"
	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	compositeuc "github.com/kailas-cloud/designkb/internal/usecase/composite"
	healthuc "github.com/kailas-cloud/designkb/internal/usecase/health"
	searchuc "github.com/kailas-cloud/designkb/internal/usecase/search"
)

// Searcher runs domain and stack searches.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Response, error)
	SearchStack(ctx context.Context, query, stackID string, maxResults int) (searchuc.Response, error)
	DetectDomain(query string) string
}

// Recommender builds composite design recommendations.
type Recommender interface {
	Build(ctx context.Context, query, projectName string, m mode.Mode) (compositeuc.Rendered, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Catalog lists the registered domains and stacks.
type Catalog interface {
	Domains() []domain.Descriptor
	Stacks() []domain.Stack
	Fallback() string
}

// Limits bound the number of results a client may request.
type Limits struct {
	DefaultMaxResults int
	MaxResultsLimit   int
}

// Server serves the designkb HTTP API.
type Server struct {
	search        Searcher
	recommend     Recommender
	health        HealthChecker
	catalog       Catalog
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	recommend Recommender,
	health HealthChecker,
	catalog Catalog,
	limits Limits,
	logger *zap.Logger,
) *Server {
	if limits.DefaultMaxResults <= 0 {
		limits.DefaultMaxResults = request.DefaultMaxResults
	}
	if limits.MaxResultsLimit < limits.DefaultMaxResults {
		limits.MaxResultsLimit = limits.DefaultMaxResults
	}
	return &Server{
		search:        search,
		recommend:     recommend,
		health:        health,
		catalog:       catalog,
		limits:        limits,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes registers every API route on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Get("/stacks/{stack}/search", s.SearchStack)
		r.Get("/detect", s.Detect)
		r.Get("/recommend", s.Recommend)
		r.Get("/domains", s.Domains)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})
}

// Search handles GET /v1/search?q=&domain=&limit=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := s.parseLimit(w, q.Get("limit"))
	if !ok {
		return
	}

	req, err := request.New(q.Get("q"), q.Get("domain"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SearchStack handles GET /v1/stacks/{stack}/search?q=&limit=.
func (s *Server) SearchStack(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := s.parseLimit(w, q.Get("limit"))
	if !ok {
		return
	}

	resp, err := s.search.SearchStack(r.Context(), q.Get("q"), chi.URLParam(r, "stack"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DetectResponse is the body of GET /v1/detect.
type DetectResponse struct {
	Query  string `json:"query"`
	Domain string `json:"domain"`
}

// Detect handles GET /v1/detect?q=.
func (s *Server) Detect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) > request.MaxQueryLength {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "query too long")
		return
	}
	writeJSON(w, http.StatusOK, DetectResponse{Query: query, Domain: s.search.DetectDomain(query)})
}

// Recommend handles GET /v1/recommend?q=&project=&format=.
// format defaults to json; table and markdown are served as text, html as a page.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	m := mode.JSON
	if f := q.Get("format"); f != "" {
		parsed, err := mode.Parse(f)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		m = parsed
	}

	rendered, err := s.recommend.Build(r.Context(), q.Get("q"), q.Get("project"), m)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", rendered.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered.Body)
}

// DomainInfo describes one registered domain.
type DomainInfo struct {
	ID            string   `json:"id"`
	Source        string   `json:"source"`
	SearchColumns []string `json:"search_columns"`
	OutputColumns []string `json:"output_columns"`
	Keywords      []string `json:"keywords"`
}

// StackInfo describes one registered stack.
type StackInfo struct {
	ID     string `json:"id"`
	Source string `json:"source"`
}

// DomainsResponse is the body of GET /v1/domains.
type DomainsResponse struct {
	Fallback string       `json:"fallback"`
	Domains  []DomainInfo `json:"domains"`
	Stacks   []StackInfo  `json:"stacks"`
}

// Domains handles GET /v1/domains.
func (s *Server) Domains(w http.ResponseWriter, _ *http.Request) {
	resp := DomainsResponse{
		Fallback: s.catalog.Fallback(),
		Domains:  make([]DomainInfo, 0, len(s.catalog.Domains())),
		Stacks:   make([]StackInfo, 0, len(s.catalog.Stacks())),
	}
	for _, d := range s.catalog.Domains() {
		resp.Domains = append(resp.Domains, DomainInfo{
			ID:            d.ID(),
			Source:        d.Source(),
			SearchColumns: d.SearchColumns(),
			OutputColumns: d.OutputColumns(),
			Keywords:      nonNil(d.Keywords()),
		})
	}
	for _, st := range s.catalog.Stacks() {
		resp.Stacks = append(resp.Stacks, StackInfo{ID: st.ID(), Source: st.Source()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      healthuc.Status                 `json:"status"`
	Checks      map[string]healthuc.CheckResult `json:"checks"`
	Unavailable []string                        `json:"unavailable_sources,omitempty"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:      report.Status,
		Checks:      report.Checks,
		Unavailable: report.Unavailable,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// parseLimit reads the limit parameter. Missing means the default; values above
// the configured limit are clamped. It writes a 400 and returns false on bad input.
func (s *Server) parseLimit(w http.ResponseWriter, raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.limits.DefaultMaxResults, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return min(n, s.limits.MaxResultsLimit), true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger
	if id := chiMiddleware.GetReqID(r.Context()); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

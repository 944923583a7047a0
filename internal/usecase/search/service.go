package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/designkb/internal/bm25"
	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/row"
	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	"github.com/kailas-cloud/designkb/internal/domain/search/result"
	"github.com/kailas-cloud/designkb/internal/logger"
	"github.com/kailas-cloud/designkb/internal/metrics"
)

// Service ranks the rows of one knowledge domain against a free-text query.
type Service struct {
	registry Registry
	rows     RowSource
	detector Detector
	scorer   *bm25.Scorer
}

// New creates a search service.
func New(registry Registry, rows RowSource, detector Detector, scorer *bm25.Scorer) *Service {
	return &Service{registry: registry, rows: rows, detector: detector, scorer: scorer}
}

// DetectDomain returns the domain a query would be routed to. It never fails.
func (s *Service) DetectDomain(query string) string {
	return s.detector.Detect(query)
}

// Search ranks the rows of the requested domain, auto-detecting it when omitted.
// An empty query, a query with no known terms and MaxResults == 0 all yield an
// empty result list without error.
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	domainID, detected := req.Domain(), false
	if !req.HasDomain() {
		domainID, detected = s.DetectDomain(req.Query()), true
	}

	desc, err := s.registry.Lookup(domainID)
	if err != nil {
		observe(ctx, domainID, time.Time{}, 0, err)
		return Response{}, fmt.Errorf("resolve domain: %w", err)
	}

	resp, err := s.run(ctx, desc, req.Query(), req.MaxResults())
	if err != nil {
		return Response{}, err
	}
	resp.Detected = detected
	return resp, nil
}

// SearchStack ranks the guidelines of one framework stack.
func (s *Service) SearchStack(ctx context.Context, query, stackID string, maxResults int) (Response, error) {
	req, err := request.New(query, "", maxResults)
	if err != nil {
		return Response{}, err
	}
	id := strings.ToLower(strings.TrimSpace(stackID))

	st, err := s.registry.Stack(id)
	if err != nil {
		observe(ctx, StackDomain, time.Time{}, 0, err)
		return Response{}, fmt.Errorf("resolve stack: %w", err)
	}

	resp, err := s.run(ctx, st.Descriptor(), req.Query(), req.MaxResults())
	if err != nil {
		return Response{}, err
	}
	resp.Domain = StackDomain
	resp.Stack = st.ID()
	return resp, nil
}

func (s *Service) run(ctx context.Context, desc domain.Descriptor, query string, maxResults int) (Response, error) {
	start := time.Now()

	rows, err := s.rows.Rows(ctx, desc.Source())
	if err != nil {
		observe(ctx, desc.ID(), start, 0, err)
		return Response{}, fmt.Errorf("search %s: %w", desc.ID(), err)
	}

	results := s.rank(query, rows, desc, maxResults)
	observe(ctx, desc.ID(), start, len(results), nil)

	return Response{
		Domain:  desc.ID(),
		Query:   query,
		Source:  desc.Source(),
		Count:   len(results),
		Results: results,
	}, nil
}

// rank scores every row and keeps the first maxResults hits with a positive score.
func (s *Service) rank(query string, rows []row.Row, desc domain.Descriptor, maxResults int) []result.Result {
	results := make([]result.Result, 0, min(maxResults, len(rows)))
	if maxResults == 0 || len(rows) == 0 {
		return results
	}

	docs := make([]string, len(rows))
	for i, r := range rows {
		docs[i] = searchText(r, desc.SearchColumns())
	}

	for _, h := range s.scorer.Rank(query, docs) {
		if len(results) == maxResults {
			break
		}
		if h.Score <= 0 {
			break
		}
		results = append(results, result.New(h.Index, h.Score, rows[h.Index].Project(desc.OutputColumns())))
	}
	return results
}

// searchText joins the search-column values of a row with single spaces.
func searchText(r row.Row, columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = r.Get(c)
	}
	return strings.Join(parts, " ")
}

func observe(ctx context.Context, domainID string, start time.Time, n int, err error) {
	log := logger.FromContext(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDomainNotFound) {
			// Unknown ids come from callers; keep them out of metric labels.
			metrics.SearchesTotal.WithLabelValues("unknown", metrics.StatusError).Inc()
			log.Debug("Unknown domain", zap.String("domain", domainID))
			return
		}
		metrics.SearchesTotal.WithLabelValues(domainID, metrics.StatusError).Inc()
		log.Warn("Search failed", zap.String("domain", domainID), zap.Error(err))
		return
	}

	metrics.SearchesTotal.WithLabelValues(domainID, metrics.StatusOK).Inc()
	metrics.SearchDuration.WithLabelValues(domainID).Observe(time.Since(start).Seconds())
	metrics.SearchResults.WithLabelValues(domainID).Observe(float64(n))
	log.Debug("Search completed",
		zap.String("domain", domainID),
		zap.Int("results", n),
		zap.Duration("duration", time.Since(start)),
	)
}

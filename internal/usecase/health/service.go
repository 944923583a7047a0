package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates that some data sources cannot be loaded.
	Degraded Status = "degraded"
	// Unhealthy indicates the data backend itself is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckBackend = "data_backend"
	CheckSources = "data_sources"
)

// Report aggregates health check results.
type Report struct {
	Status      Status
	Checks      map[string]CheckResult
	Unavailable []string
}

// Service coordinates health checks.
type Service struct {
	backend DataPinger
	rows    RowLoader
	sources []string
}

// New creates a Service. rows may be nil to skip the per-source check.
func New(backend DataPinger, rows RowLoader, sources []string) *Service {
	return &Service{backend: backend, rows: rows, sources: sources}
}

// Check pings the backend and then tries to load every data source.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.backend.Ping(ctx); err != nil {
		checks[CheckBackend] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks[CheckBackend] = CheckOK

	if s.rows == nil {
		return Report{Status: Healthy, Checks: checks}
	}

	var unavailable []string
	for _, src := range s.sources {
		if _, err := s.rows.Rows(ctx, src); err != nil {
			unavailable = append(unavailable, src)
		}
	}
	sort.Strings(unavailable)

	status := Healthy
	checks[CheckSources] = CheckOK
	if len(unavailable) > 0 {
		status = Degraded
		checks[CheckSources] = CheckError
	}
	return Report{Status: status, Checks: checks, Unavailable: unavailable}
}

package designkb

import (
	"context"

	healthuc "github.com/kailas-cloud/designkb/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status      string            // "ok", "degraded", "error"
	Checks      map[string]string // component -> "ok"/"error"
	Unavailable []string          // data sources that failed to load
}

// Health checks the data backend and every registered data source.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(c.context(ctx))
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:      string(report.Status),
		Checks:      checks,
		Unavailable: report.Unavailable,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

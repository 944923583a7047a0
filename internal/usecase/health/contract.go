package health

import (
	"context"

	"github.com/kailas-cloud/designkb/internal/domain/row"
)

// DataPinger checks that the data-source backend is reachable.
type DataPinger interface {
	Ping(ctx context.Context) error
}

// RowLoader loads the rows of one data source, typically through the row cache.
type RowLoader interface {
	Rows(ctx context.Context, locator string) ([]row.Row, error)
}

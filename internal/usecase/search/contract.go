package search

import (
	"context"

	"github.com/kailas-cloud/designkb/internal/domain"
	"github.com/kailas-cloud/designkb/internal/domain/row"
)

// Registry resolves domain and stack ids to descriptors.
type Registry interface {
	Lookup(id string) (domain.Descriptor, error)
	Stack(id string) (domain.Stack, error)
}

// RowSource yields the rows of a data source, typically through the row cache.
type RowSource interface {
	Rows(ctx context.Context, locator string) ([]row.Row, error)
}

// Detector picks a domain for a query that names none.
type Detector interface {
	Detect(query string) string
}

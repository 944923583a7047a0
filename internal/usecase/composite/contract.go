package composite

import (
	"context"

	"github.com/kailas-cloud/designkb/internal/domain/search/request"
	"github.com/kailas-cloud/designkb/internal/usecase/search"
)

// Searcher runs one domain search.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (search.Response, error)
}

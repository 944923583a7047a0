package designkb

import "github.com/kailas-cloud/designkb/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDomainNotFound      = domain.ErrDomainNotFound
	ErrStackNotFound       = domain.ErrStackNotFound
	ErrDataSourceMissing   = domain.ErrDataSourceMissing
	ErrMalformedDataSource = domain.ErrMalformedDataSource
	ErrInvalidRequest      = domain.ErrInvalidRequest
	ErrInvalidFormat       = domain.ErrInvalidRenderMode
)

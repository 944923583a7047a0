package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/designkb/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength    = 4096
	DefaultMaxResults = 3
)

// Request is a validated search query against one domain.
type Request struct {
	query      string
	domain     string
	maxResults int
}

// New validates search parameters. An empty domain asks for auto-detection.
// An empty query and maxResults == 0 are valid and simply produce no results.
func New(query, domainID string, maxResults int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d bytes)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if maxResults < 0 {
		return Request{}, fmt.Errorf("%w: max results must not be negative", domain.ErrInvalidRequest)
	}

	return Request{
		query:      query,
		domain:     strings.ToLower(strings.TrimSpace(domainID)),
		maxResults: maxResults,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Domain returns the requested domain id ("" when auto-detection is wanted).
func (r *Request) Domain() string { return r.domain }

// HasDomain reports whether the caller named a domain.
func (r *Request) HasDomain() bool { return r.domain != "" }

// MaxResults returns the upper bound on returned results.
func (r *Request) MaxResults() int { return r.maxResults }

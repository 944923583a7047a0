package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDomainNotFound signals an explicitly requested domain that is not registered.
	ErrDomainNotFound = errors.New("domain not found")
	// ErrStackNotFound signals an unknown stack. It matches ErrDomainNotFound via errors.Is.
	ErrStackNotFound = fmt.Errorf("stack not found: %w", ErrDomainNotFound)
	// ErrDataSourceMissing signals that a domain's backing rows cannot be fetched.
	ErrDataSourceMissing = errors.New("data source missing")
	// ErrMalformedDataSource signals rows that were fetched but are structurally unusable.
	ErrMalformedDataSource = errors.New("malformed data source")
	// ErrInvalidRequest signals invalid caller-supplied search parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidRenderMode signals an unsupported summary rendering mode.
	ErrInvalidRenderMode = errors.New("invalid render mode")
)

// SourceError attaches the data-source locator to a data-source failure.
type SourceError struct {
	Locator string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Locator, e.Err.Error())
}

func (e *SourceError) Unwrap() error { return e.Err }

// NewSourceError wraps err with the locator it was raised for.
func NewSourceError(locator string, err error) error {
	return &SourceError{Locator: locator, Err: err}
}

package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kailas-cloud/designkb/internal/domain"
)

// ErrorCode is the machine-readable error code of an API error response.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest          ErrorCode = "bad_request"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeDomainNotFound      ErrorCode = "domain_not_found"
	CodeStackNotFound       ErrorCode = "stack_not_found"
	CodeInvalidRequest      ErrorCode = "invalid_request"
	CodeInvalidRenderMode   ErrorCode = "invalid_render_mode"
	CodeDataSourceMissing   ErrorCode = "data_source_missing"
	CodeMalformedDataSource ErrorCode = "malformed_data_source"
	CodeNotFound            ErrorCode = "not_found"
	CodeMethodNotAllowed    ErrorCode = "method_not_allowed"
	CodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// clientSentinels are the errors whose text is safe to show to clients.
// ErrStackNotFound precedes ErrDomainNotFound because it wraps it.
var clientSentinels = []error{
	domain.ErrStackNotFound,
	domain.ErrDomainNotFound,
	domain.ErrInvalidRequest,
	domain.ErrInvalidRenderMode,
	domain.ErrDataSourceMissing,
	domain.ErrMalformedDataSource,
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range clientSentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrStackNotFound, http.StatusNotFound, CodeStackNotFound),
		sentinelHandler(domain.ErrDomainNotFound, http.StatusNotFound, CodeDomainNotFound),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeInvalidRequest),
		sentinelHandler(domain.ErrInvalidRenderMode, http.StatusBadRequest, CodeInvalidRenderMode),
		sentinelHandler(domain.ErrDataSourceMissing, http.StatusServiceUnavailable, CodeDataSourceMissing),
		sentinelHandler(domain.ErrMalformedDataSource, http.StatusInternalServerError, CodeMalformedDataSource),
	}
}

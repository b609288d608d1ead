package referencedata

import (
	"errors"
	"fmt"

	"precheck/pkg/platform/sentinel"
)

// ErrorCategory is the normalised failure taxonomy for reference data sources.
type ErrorCategory string

const (
	// ErrorTimeout indicates the source took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the source returned a payload we could not decode
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or permission issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorOutage indicates the source is unavailable
	ErrorOutage ErrorCategory = "outage"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// GatewayError wraps a reference data failure with its category. It never
// represents "no match"; gateways return empty results for that.
type GatewayError struct {
	Category   ErrorCategory
	Source     string
	Lookup     string
	Underlying error
	Retryable  bool
}

func (e *GatewayError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("reference data %s [%s] %s: %v", e.Source, e.Category, e.Lookup, e.Underlying)
	}
	return fmt.Sprintf("reference data %s [%s] %s", e.Source, e.Category, e.Lookup)
}

func (e *GatewayError) Unwrap() error {
	return e.Underlying
}

// Is reports retryable failures as sentinel.ErrUnavailable.
func (e *GatewayError) Is(target error) bool {
	return target == sentinel.ErrUnavailable && e.Retryable
}

// NewGatewayError creates a categorised gateway error.
func NewGatewayError(category ErrorCategory, source, lookup string, underlying error) *GatewayError {
	retryable := category == ErrorTimeout ||
		category == ErrorOutage ||
		category == ErrorRateLimited

	return &GatewayError{
		Category:   category,
		Source:     source,
		Lookup:     lookup,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Retryable
	}
	return false
}

// CategoryOf extracts the error category, defaulting to ErrorInternal.
func CategoryOf(err error) ErrorCategory {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Category
	}
	return ErrorInternal
}

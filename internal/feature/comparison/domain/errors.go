// Package domain defines domain-level errors for the comparison feature.
package domain

import "errors"

// Rejection errors. Each is terminal for the affected symbol's pipeline.
var (
	// ErrInvalidSymbol indicates that a ticker is empty after sanitization.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInvalidDateFormat indicates that a window bound is not a YYYY-MM-DD date.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrFutureDate indicates that a window bound lies after the validation day.
	ErrFutureDate = errors.New("date is in the future")

	// ErrProviderUnavailable indicates a transport-level failure: timeout, rate limit,
	// rejected credentials or a malformed payload.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrNoData indicates that no usable observations exist for the request.
	ErrNoData = errors.New("no data")
)

// Provider boundary errors. Adapters wrap these so the resolver can tell a plan
// restriction apart from a transport failure.
var (
	// ErrCapability indicates that the caller's access tier does not include the endpoint.
	ErrCapability = errors.New("endpoint not available for this access tier")

	// ErrSymbolNotFound indicates that the provider confirmed it has no history for the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Kind categorizes a rejection for callers.
type Kind string

const (
	KindNone                Kind = ""
	KindInvalidSymbol       Kind = "invalid_symbol"
	KindInvalidDateFormat   Kind = "invalid_date_format"
	KindFutureDate          Kind = "future_date"
	KindProviderUnavailable Kind = "provider_unavailable"
	KindNoData              Kind = "no_data"
)

// KindOf maps an error to its rejection kind. Errors outside the taxonomy are
// reported as KindProviderUnavailable.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidSymbol):
		return KindInvalidSymbol
	case errors.Is(err, ErrInvalidDateFormat):
		return KindInvalidDateFormat
	case errors.Is(err, ErrFutureDate):
		return KindFutureDate
	case errors.Is(err, ErrNoData):
		return KindNoData
	default:
		return KindProviderUnavailable
	}
}

// Message returns the user-facing diagnostic for the kind.
func (k Kind) Message() string {
	switch k {
	case KindNone:
		return ""
	case KindInvalidSymbol:
		return "Invalid ticker symbols. Please use Latin letters only."
	case KindInvalidDateFormat:
		return "Invalid date format. Please use YYYY-MM-DD."
	case KindFutureDate:
		return "Dates must not be in the future. Please select a valid range."
	case KindNoData:
		return "No data returned. Check ticker symbols or date range."
	default:
		return "Market data provider is unavailable. Please try again later."
	}
}

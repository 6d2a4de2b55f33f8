package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrUnsupportedPlan    = errors.New("unsupported plan")
	ErrProviderFailure    = errors.New("provider failure")
	ErrDuplicateOperation = errors.New("duplicate operation")
)

// ErrorKind tags normalized errors leaving the provider/validation boundary.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindProvider      ErrorKind = "provider"
	KindValidation    ErrorKind = "validation"
)

// AdaptError is the single error shape crossing the adapter boundary. Vendor
// specific failures are folded into it before callers see them, so callers
// never branch on vendor exception types.
type AdaptError struct {
	Kind       ErrorKind
	Provider   string
	Message    string
	HTTPStatus int
	Upstream   error
}

func (e *AdaptError) Error() string {
	if e.Provider != "" {
		return e.Provider + ": " + e.Message
	}
	return e.Message
}

func (e *AdaptError) Unwrap() error {
	return e.Upstream
}

// NewConfigurationError reports a fatal construction-time problem, typically
// a missing credential. It is never retried.
func NewConfigurationError(provider, message string) *AdaptError {
	return &AdaptError{Kind: KindConfiguration, Provider: provider, Message: message}
}

// NewProviderError wraps a vendor call failure with provider context. The
// upstream error text is preserved in the message.
func NewProviderError(provider string, httpStatus int, upstream error) *AdaptError {
	msg := "request failed"
	if upstream != nil {
		msg = upstream.Error()
	}
	return &AdaptError{
		Kind:       KindProvider,
		Provider:   provider,
		Message:    msg,
		HTTPStatus: httpStatus,
		Upstream:   upstream,
	}
}

// NewValidationError reports a user-input problem. It is surfaced verbatim to
// the user and never escalated to a system error.
func NewValidationError(message string) *AdaptError {
	return &AdaptError{Kind: KindValidation, Message: message}
}

// IsKind reports whether err carries an AdaptError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AdaptError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

package provider

import "fmt"

// ProviderErrorType represents the type of provider error.
type ProviderErrorType int

const (
	// ProviderFetchFailed indicates the archive could not be fetched.
	ProviderFetchFailed ProviderErrorType = iota
	// ProviderBadStatus indicates the server answered with a non-success status.
	ProviderBadStatus
	// ProviderTooManyRedirects indicates the redirect chain exceeded the hop limit.
	ProviderTooManyRedirects
	// ProviderWriteFailed indicates the downloaded body could not be stored.
	ProviderWriteFailed
	// ProviderBadRedirect indicates a redirect without a usable Location header.
	ProviderBadRedirect
)

// String returns the string representation of the error type.
func (t ProviderErrorType) String() string {
	switch t {
	case ProviderFetchFailed:
		return "FetchFailed"
	case ProviderBadStatus:
		return "BadStatus"
	case ProviderTooManyRedirects:
		return "TooManyRedirects"
	case ProviderWriteFailed:
		return "WriteFailed"
	case ProviderBadRedirect:
		return "BadRedirect"
	default:
		return "Unknown"
	}
}

// ProviderError represents a failure talking to the archive host.
type ProviderError struct {
	// Type is the error type classification.
	Type ProviderErrorType
	// Message is the human-readable error message.
	Message string
	// URL is the URL that caused the error.
	URL string
	// StatusCode is the HTTP status of the terminal response, 0 if none was received.
	StatusCode int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.URL, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.URL)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new ProviderError.
func NewProviderError(typ ProviderErrorType, url, message string, cause error) *ProviderError {
	return &ProviderError{
		Type:    typ,
		Message: message,
		URL:     url,
		Cause:   cause,
	}
}

// NewFetchError creates a transport-level fetch error.
func NewFetchError(url string, cause error) *ProviderError {
	return NewProviderError(ProviderFetchFailed, url, "failed to download", cause)
}

// NewStatusError creates an error for a non-success HTTP status.
func NewStatusError(url string, status int) *ProviderError {
	e := NewProviderError(ProviderBadStatus, url, fmt.Sprintf("Failed to download: %d", status), nil)
	e.StatusCode = status
	return e
}

// NewRedirectError creates an error for an overlong or broken redirect chain.
func NewRedirectError(url string, cause error) *ProviderError {
	return NewProviderError(ProviderTooManyRedirects, url, "redirect could not be followed", cause)
}

// NewBadRedirectError creates an error for a redirect that names no target.
func NewBadRedirectError(url string, cause error) *ProviderError {
	return NewProviderError(ProviderBadRedirect, url, "redirect has no usable Location", cause)
}

// NewWriteError creates an error for a failed write of the downloaded body.
func NewWriteError(url string, cause error) *ProviderError {
	return NewProviderError(ProviderWriteFailed, url, "failed to save download", cause)
}

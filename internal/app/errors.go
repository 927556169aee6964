package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// NetworkFailed indicates the archive could not be downloaded.
	NetworkFailed AppErrorType = iota
	// ArchiveStructureInvalid indicates the archive lacks the expected layout.
	ArchiveStructureInvalid
	// FilesystemFailed indicates a local read, write, or copy failed.
	FilesystemFailed
	// ValidationFailed indicates the install options are invalid.
	ValidationFailed
)

// String returns the string representation of the error type.
func (t AppErrorType) String() string {
	switch t {
	case NetworkFailed:
		return "NetworkError"
	case ArchiveStructureInvalid:
		return "ArchiveStructureError"
	case FilesystemFailed:
		return "FilesystemError"
	case ValidationFailed:
		return "ValidationError"
	default:
		return "Unknown"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewNetworkError creates a network error.
func NewNetworkError(message string, cause error) *AppError {
	return NewAppError(NetworkFailed, message, cause)
}

// NewArchiveStructureError creates an archive structure error.
func NewArchiveStructureError(message string) *AppError {
	return NewAppError(ArchiveStructureInvalid, message, nil)
}

// NewFilesystemError creates a filesystem error.
func NewFilesystemError(message string, cause error) *AppError {
	return NewAppError(FilesystemFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

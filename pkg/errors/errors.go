package errors

import "net/http"

// Kind is a machine-readable error classification. The request layer maps
// kinds to HTTP status codes; services only ever deal in kinds.
type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindInvalidState       Kind = "INVALID_STATE"
	KindForbidden          Kind = "FORBIDDEN"
	KindConflict           Kind = "CONFLICT"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
)

// AppError is a custom error type that includes an HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Kind == kind
}

// Helper functions to create specific errors
func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, msg)
}

func InvalidInput(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInvalidInput, msg)
}

func InvalidState(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindInvalidState, msg)
}

func Forbidden(msg string) *AppError {
	return NewAppError(http.StatusForbidden, KindForbidden, msg)
}

func Conflict(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindConflict, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, KindUnauthorized, msg)
}

// StorageUnavailable wraps a storage-layer failure. Never swallowed: every
// failed store call surfaces to the caller as this kind.
func StorageUnavailable(err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, KindStorageUnavailable, "Storage unavailable: "+err.Error())
}

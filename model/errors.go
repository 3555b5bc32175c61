package model

import "net/http"

// callable error codes
const (
	CodeUnauthenticated    = "unauthenticated"
	CodeInvalidArgument    = "invalid-argument"
	CodeFailedPrecondition = "failed-precondition"
	CodeNotFound           = "not-found"
	CodePermissionDenied   = "permission-denied"
	CodeInternal           = "internal"
)

// CallableError - typed failure surfaced to callable clients
type CallableError struct {
	Code    string `json:"status"`
	Message string `json:"message"`
}

func (e *CallableError) Error() string {
	return e.Code + ": " + e.Message
}

// HTTPStatus maps the error code to a response status.
func (e *CallableError) HTTPStatus() int {
	switch e.Code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeInvalidArgument, CodeFailedPrecondition:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodePermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated(msg string) *CallableError {
	return &CallableError{Code: CodeUnauthenticated, Message: msg}
}

func InvalidArgument(msg string) *CallableError {
	return &CallableError{Code: CodeInvalidArgument, Message: msg}
}

func FailedPrecondition(msg string) *CallableError {
	return &CallableError{Code: CodeFailedPrecondition, Message: msg}
}

func NotFound(msg string) *CallableError {
	return &CallableError{Code: CodeNotFound, Message: msg}
}

func PermissionDenied(msg string) *CallableError {
	return &CallableError{Code: CodePermissionDenied, Message: msg}
}

func Internal(msg string) *CallableError {
	return &CallableError{Code: CodeInternal, Message: msg}
}

package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// Timeout returns a new Failure for requests aborted by their timeout budget.
func Timeout(msg string) error {
	return &Failure{
		Code:    http.StatusRequestTimeout,
		Message: msg,
	}
}

// Unprocessable returns a new Failure for semantically invalid payloads (422).
func Unprocessable(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
	}
}

// FromStatus maps a raw HTTP status from the remote backend onto a Failure.
// Malformed responses are reported by callers via InternalError: the client
// treats an unparseable body as a server fault.
func FromStatus(status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &Failure{
		Code:    status,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsConflict reports whether the error is a 409 from the remote backend.
func IsConflict(err error) bool {
	return GetCode(err) == http.StatusConflict
}

// IsUnauthorized reports whether the error means the session is no longer valid.
func IsUnauthorized(err error) bool {
	return GetCode(err) == http.StatusUnauthorized
}

// IsTimeout reports whether the error came from an aborted request.
func IsTimeout(err error) bool {
	return GetCode(err) == http.StatusRequestTimeout
}

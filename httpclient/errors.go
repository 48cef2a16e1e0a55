package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/risan/http-client/util"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates a rejected request (other 4xx, including 422).
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
	// ErrCodeInternal indicates a failure inside the client itself, such as
	// an unencodable body or an unknown response type.
	ErrCodeInternal
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	case ErrCodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// ErrorPaths point into a JSON error body.
type ErrorPaths struct {
	// ErrorMessagePath locates a string that replaces the error message.
	ErrorMessagePath string
	// ValidationErrorsPath locates the validation errors of a 422 response.
	ValidationErrorsPath string
}

// Error is the normalized failure of a request.
type Error struct {
	// Message describes the error. It is taken from the response body when
	// ErrorMessagePath resolves to a non-empty string.
	Message string
	// Response is the decoded error response, nil when none was received.
	Response *Response
	// ValidationErrors are the field errors of a 422 response.
	ValidationErrors map[string]any
	// Err is the underlying error.
	Err error

	internal bool
}

// NewError builds an error envelope, extracting the message and the
// validation errors from a JSON response body when the paths are set.
func NewError(message string, resp *Response, paths ErrorPaths) *Error {
	e := &Error{Message: message, Response: resp}
	if resp == nil || !resp.hasJSONShapedBody() {
		return e
	}

	if paths.ErrorMessagePath != "" {
		if msg, ok := util.Get(resp.Body, paths.ErrorMessagePath, nil).(string); ok && msg != "" {
			e.Message = msg
		}
	}

	if resp.IsValidationError() && paths.ValidationErrorsPath != "" {
		if fields, ok := util.Get(resp.Body, paths.ValidationErrorsPath, nil).(map[string]any); ok && len(fields) > 0 {
			e.ValidationErrors = fields
		}
	}

	return e
}

// newInternalError wraps a failure that happened before or after the round
// trip rather than in it.
func newInternalError(err error) *Error {
	return &Error{Message: err.Error(), Err: err, internal: true}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("httpclient: %s (HTTP %d)", e.Message, e.Response.Status)
	}
	return fmt.Sprintf("httpclient: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// HasResponse reports whether a response was received.
func (e *Error) HasResponse() bool {
	return e.Response != nil
}

// HasJSONBody reports whether the response body is a JSON object or array.
func (e *Error) HasJSONBody() bool {
	return e.Response != nil && e.Response.hasJSONShapedBody()
}

// HasValidationErrors reports whether validation errors were extracted.
func (e *Error) HasValidationErrors() bool {
	return len(e.ValidationErrors) > 0
}

// Status returns the response status, or 0 without a response.
func (e *Error) Status() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.Status
}

// ValidationMessages returns the messages reported for a field.
func (e *Error) ValidationMessages(field string) []string {
	return stringValues(e.ValidationErrors[field])
}

// Code classifies the error by response status, or by cause when no
// response was received.
func (e *Error) Code() ErrorCode {
	if e.Response == nil {
		switch {
		case e.internal:
			return ErrCodeInternal
		case isTimeoutCause(e.Err):
			return ErrCodeTimeout
		default:
			return ErrCodeConnection
		}
	}

	status := e.Response.Status
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrCodeAuth
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case status >= 400 && status < 500:
		return ErrCodeValidation
	default:
		return ErrCodeServer
	}
}

// Retryable reports whether repeating the request may succeed. The client
// never retries on its own.
func (e *Error) Retryable() bool {
	switch e.Code() {
	case ErrCodeTimeout, ErrCodeConnection, ErrCodeRateLimit, ErrCodeServer:
		return true
	default:
		return false
	}
}

func isTimeoutCause(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// AsError finds the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func hasCode(err error, code ErrorCode) bool {
	e, ok := AsError(err)
	return ok && e.Code() == code
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool { return hasCode(err, ErrCodeAuth) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool { return hasCode(err, ErrCodeRateLimit) }

// IsValidation checks if an error is a rejected-request error.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	e, ok := AsError(err)
	return ok && e.Retryable()
}

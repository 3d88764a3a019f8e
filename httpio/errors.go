package httpio

import (
	"errors"
	"strconv"
)

// Predefined errors for response assembly and request handling.
var (
	// ErrInvalidStatusCode is matched by every *InvalidStatusCodeError.
	ErrInvalidStatusCode = errors.New("invalid HTTP status code")

	// ErrNotRedirect is returned when a redirect is asked for with a non-3xx code.
	ErrNotRedirect = errors.New("status code is not a redirect")

	// ErrNotExist is returned when a requested value does not exist.
	ErrNotExist = errors.New("value does not exist")

	// ErrInvalidHeader is returned when an invalid header format is encountered.
	ErrInvalidHeader = errors.New("invalid header in request")

	// ErrInvalidRequestLine is returned when the first line of a request is malformed.
	ErrInvalidRequestLine = errors.New("invalid request line")

	// ErrInvalidContentLength is returned when Content-Length is not a usable body size.
	ErrInvalidContentLength = errors.New("invalid content length")

	// ErrUnknownPolicy is returned when a multi-value policy name is not recognized.
	ErrUnknownPolicy = errors.New("unknown multi-value policy")
)

// InvalidStatusCodeError carries the code that was rejected by SetStatusCode.
type InvalidStatusCodeError struct {
	Code int
}

func (e *InvalidStatusCodeError) Error() string {
	return strconv.Itoa(e.Code) + " is not a valid HTTP status code"
}

func (e *InvalidStatusCodeError) Is(target error) bool {
	return target == ErrInvalidStatusCode
}

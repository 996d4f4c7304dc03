package status

import "errors"

// HTTPError is an error that carries the status code it must be answered with.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf extracts the status code from err. Errors that aren't HTTPError
// map to InternalServerError.
func CodeOf(err error) Code {
	if httpErr, ok := err.(HTTPError); ok {
		return httpErr.Code
	}

	return InternalServerError
}

var (
	// ErrMalformedRequestLine is returned when the request line has less than
	// two space separators.
	ErrMalformedRequestLine = NewError(BadRequest, "malformed request line")
	// ErrHeaderFieldsTooLarge is returned when the header block doesn't fit into
	// the parser's buffer. It is answered just like a malformed request.
	ErrHeaderFieldsTooLarge = NewError(BadRequest, "too large headers section")
	// ErrShutdown is returned by the event loop when it was stopped on purpose.
	ErrShutdown = errors.New("shutdown")
)

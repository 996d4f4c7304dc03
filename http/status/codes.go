package status

import "strconv"

type (
	Code   uint16
	Status string
)

// HTTP status codes the server is able to emit.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	OK                  Code = 200 // RFC 9110, 15.3.1
	BadRequest          Code = 400 // RFC 9110, 15.5.1
	InternalServerError Code = 500 // RFC 9110, 15.6.1
)

// Text returns a reason phrase for the HTTP status code. Unknown codes
// result in "Unknown Status Code".
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return "Unknown Status Code"
	}
}

// StringCode returns the decimal representation of the code.
func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}

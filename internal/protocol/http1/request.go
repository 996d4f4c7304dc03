package http1

import (
	"github.com/indigo-web/reactor/internal/datastruct"
)

const (
	HTTP10 = "HTTP/1.0"
	HTTP11 = "HTTP/1.1"
)

// Request is the parsed request line and headers. All the strings reference the
// parser's buffer and are valid only until the parser is reset.
type Request struct {
	Method  string
	Target  string
	Proto   string
	Headers *datastruct.KeyValue
}

func (r *Request) clear() {
	r.Method, r.Target, r.Proto = "", "", ""
	r.Headers.Clear()
}

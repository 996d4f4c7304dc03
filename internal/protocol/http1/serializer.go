package http1

import (
	"strconv"

	"github.com/indigo-web/reactor/http/status"
)

// Response is everything needed to build a reply. The status line always claims
// HTTP/1.1, regardless of the request's version.
type Response struct {
	Code        status.Code
	ContentType string
	Body        []byte
	KeepAlive   bool
}

// Serialize appends the response to buff and returns the extended buffer.
func Serialize(buff []byte, response Response) []byte {
	buff = append(buff, HTTP11...)
	buff = append(buff, ' ')
	buff = append(buff, status.StringCode(response.Code)...)
	buff = append(buff, ' ')
	buff = append(buff, status.Text(response.Code)...)
	buff = crlfed(buff)

	buff = appendHeader(buff, "Content-Type: ", response.ContentType)
	buff = append(buff, "Content-Length: "...)
	buff = strconv.AppendInt(buff, int64(len(response.Body)), 10)
	buff = crlfed(buff)

	if response.KeepAlive {
		buff = appendHeader(buff, "Connection: ", "keep-alive")
	} else {
		buff = appendHeader(buff, "Connection: ", "close")
	}

	buff = crlfed(buff)

	return append(buff, response.Body...)
}

func appendHeader(buff []byte, key, value string) []byte {
	buff = append(buff, key...)
	buff = append(buff, value...)

	return crlfed(buff)
}

func crlfed(buff []byte) []byte {
	return append(buff, '\r', '\n')
}

package http

import (
	"github.com/indigo-web/reactor/internal/protocol/http1"
	"github.com/indigo-web/utils/strcomp"
)

// keepAlive decides whether the connection survives the request. Of all the Connection
// headers carrying either close or keep-alive, the last one wins. Without one, only an
// HTTP/1.0 request that has no headers at all is closed.
func keepAlive(req *http1.Request) bool {
	var (
		decided bool
		alive   bool
	)

	for _, value := range req.Headers.Values("Connection") {
		switch {
		case strcomp.EqualFold(value, "close"):
			decided, alive = true, false
		case strcomp.EqualFold(value, "keep-alive"):
			decided, alive = true, true
		}
	}

	if decided {
		return alive
	}

	return !(req.Proto == http1.HTTP10 && req.Headers.Len() == 0)
}

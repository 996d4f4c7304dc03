package http

import (
	"os"

	"github.com/indigo-web/reactor/http/mime"
	"github.com/indigo-web/reactor/http/status"
	"github.com/indigo-web/reactor/internal/pathlib"
	"github.com/indigo-web/reactor/internal/protocol/http1"
	"github.com/rs/zerolog"
)

var defaultResponse = http1.Response{
	Code:        status.OK,
	ContentType: mime.Plain + "; charset=utf-8",
	Body:        []byte("Hello, world!"),
}

// errorResponse answers the error with its status code and reason phrase as a body.
func errorResponse(err error) http1.Response {
	code := status.CodeOf(err)

	return http1.Response{
		Code:        code,
		ContentType: mime.Plain,
		Body:        []byte(status.Text(code)),
	}
}

// Handler produces a response for every parsed request: the file the target refers
// to for GET requests, or the default response otherwise.
type Handler struct {
	resolver pathlib.Resolver
}

func NewHandler(resolver pathlib.Resolver) Handler {
	return Handler{resolver: resolver}
}

func (h Handler) Handle(req *http1.Request, log zerolog.Logger) http1.Response {
	if req.Method != "GET" {
		return defaultResponse
	}

	path, err := h.resolver.Resolve(req.Target)
	if err != nil {
		log.Debug().Str("target", req.Target).Msg("unresolvable target, falling back to default")
		return defaultResponse
	}

	body, ok := readRegular(path)
	if !ok {
		log.Debug().Str("path", path).Msg("not a readable regular file, falling back to default")
		return defaultResponse
	}

	return http1.Response{
		Code:        status.OK,
		ContentType: mime.ByPath(path),
		Body:        body,
	}
}

func readRegular(path string) ([]byte, bool) {
	stat, err := os.Stat(path)
	if err != nil || !stat.Mode().IsRegular() {
		return nil, false
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	return body, true
}

//go:build linux

package reactor

import (
	"context"

	"github.com/indigo-web/reactor/config"
	"github.com/indigo-web/reactor/internal/pathlib"
	"github.com/indigo-web/reactor/internal/server/http"
	"github.com/indigo-web/reactor/internal/server/tcp"
)

// Serve runs the server until the ctx is done. A clean stop results in
// status.ErrShutdown.
func (a *App) Serve(ctx context.Context) error {
	if err := config.Validate(a.cfg); err != nil {
		return err
	}

	static := a.cfg.Static
	handler := http.NewHandler(pathlib.NewResolver(static.Root, static.Index, static.Strict))

	loop, err := tcp.NewLoop(a.cfg, handler, a.log)
	if err != nil {
		return err
	}

	a.log.Info().
		Str("addr", loop.Addr().String()).
		Str("root", static.Root).
		Msg("listening")

	if a.onStart != nil {
		a.onStart(loop.Addr())
	}

	return loop.Run(ctx)
}

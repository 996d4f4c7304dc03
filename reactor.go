package reactor

import (
	"net"

	"github.com/indigo-web/reactor/config"
	"github.com/rs/zerolog"
)

// App is the server bootstrap: it holds the configuration and the logger until Serve
// binds the listener and hands everything over to the event loop.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	onStart func(addr net.Addr)
}

// New returns a new App instance with default config and logging disabled.
func New() *App {
	return &App{
		cfg: config.Default(),
		log: zerolog.Nop(),
	}
}

// Tune replaces default config. Zero fields are filled with defaults.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = config.Fill(cfg)
	return a
}

// Logger replaces the logger, passed down to the event loop and every connection.
func (a *App) Logger(log zerolog.Logger) *App {
	a.log = log
	return a
}

// NotifyOnStart calls the callback once the listener is bound, right before the first
// connection can be accepted.
func (a *App) NotifyOnStart(cb func(addr net.Addr)) *App {
	a.onStart = cb
	return a
}

// Config returns the config the app will be served with.
func (a *App) Config() *config.Config {
	return a.cfg
}

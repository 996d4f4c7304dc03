package reactor

import (
	"fmt"
	"io"
	"time"

	"github.com/indigo-web/reactor/config"
	"github.com/rs/zerolog"
)

// NewLogger builds a logger writing into out as the config says.
func NewLogger(cfg config.Log, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}

	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

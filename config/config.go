package config

import (
	"errors"
	"fmt"
	"os"

	json "github.com/json-iterator/go"
)

type (
	HeadersNumber struct {
		// Maximal is the number of header pairs kept per request. Any further header
		// lines are silently dropped.
		Maximal int `json:"maximal"`
	}

	HeadersSpace struct {
		// Maximal is the capacity of the parser's buffer, accumulating the request line
		// and headers. One byte is always kept in reserve, so the header block must be
		// strictly shorter than this value.
		Maximal int `json:"maximal"`
	}
)

type (
	NET struct {
		// Port to listen on, all interfaces. Zero picks an ephemeral port.
		Port uint16 `json:"port"`
		// Backlog is passed to listen(2).
		Backlog int `json:"backlog"`
		// ReadBufferSize is the capacity of per-connection read buffer. One byte is
		// always kept in reserve.
		ReadBufferSize int `json:"read_buffer_size"`
		// MaxEvents limits how many readiness events are fetched by a single wait call.
		MaxEvents int `json:"max_events"`
	}

	Headers struct {
		Number HeadersNumber `json:"number"`
		Space  HeadersSpace  `json:"space"`
	}

	Static struct {
		// Root is the served directory. Relative paths are resolved against the
		// working directory.
		Root string `json:"root"`
		// Index is the document served for the empty and the "/" targets.
		Index string `json:"index"`
		// Strict additionally requires a path separator right after the root when
		// checking containment. Disabled by default, the plain prefix comparison
		// accepts siblings like /srv/www2 for the /srv/www root.
		Strict bool `json:"strict" test:"nullable"`
	}

	Log struct {
		// Level is a zerolog level name: trace, debug, info, warn, error, disabled.
		Level string `json:"level"`
		// Console enables human-readable output instead of JSON lines.
		Console bool `json:"console" test:"nullable"`
	}
)

// Config holds settings of the server. Always start from Default() and modify it.
type Config struct {
	NET     NET     `json:"net"`
	Headers Headers `json:"headers"`
	Static  Static  `json:"static"`
	Log     Log     `json:"log"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Port:           8080,
			Backlog:        128,
			ReadBufferSize: 4096,
			MaxEvents:      64,
		},
		Headers: Headers{
			Number: HeadersNumber{
				Maximal: 32,
			},
			Space: HeadersSpace{
				Maximal: 4096,
			},
		},
		Static: Static{
			Root:  "www",
			Index: "index.html",
		},
		Log: Log{
			Level: "info",
		},
	}
}

var (
	ErrBufferTooSmall = errors.New("buffer sizes must be at least 2 bytes")
	ErrBadLimit       = errors.New("limits must be positive")
)

var decoder = json.Config{
	DisallowUnknownFields: true,
}.Froze()

// Load reads a JSON file on top of the defaults. Fields absent in the file or set to
// zero values keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	if err = decoder.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	cfg = Fill(cfg)

	return cfg, Validate(cfg)
}

// Fill replaces zero values with defaults. The port is left as is: zero stands for
// an ephemeral one.
func Fill(cfg *Config) *Config {
	def := Default()

	if cfg.NET.Backlog == 0 {
		cfg.NET.Backlog = def.NET.Backlog
	}
	if cfg.NET.ReadBufferSize == 0 {
		cfg.NET.ReadBufferSize = def.NET.ReadBufferSize
	}
	if cfg.NET.MaxEvents == 0 {
		cfg.NET.MaxEvents = def.NET.MaxEvents
	}
	if cfg.Headers.Number.Maximal == 0 {
		cfg.Headers.Number.Maximal = def.Headers.Number.Maximal
	}
	if cfg.Headers.Space.Maximal == 0 {
		cfg.Headers.Space.Maximal = def.Headers.Space.Maximal
	}
	if len(cfg.Static.Root) == 0 {
		cfg.Static.Root = def.Static.Root
	}
	if len(cfg.Static.Index) == 0 {
		cfg.Static.Index = def.Static.Index
	}
	if len(cfg.Log.Level) == 0 {
		cfg.Log.Level = def.Log.Level
	}

	return cfg
}

// Validate rejects values the server can't operate with.
func Validate(cfg *Config) error {
	if cfg.NET.ReadBufferSize < 2 || cfg.Headers.Space.Maximal < 2 {
		return ErrBufferTooSmall
	}

	if cfg.NET.Backlog < 0 || cfg.NET.MaxEvents < 0 || cfg.Headers.Number.Maximal < 0 {
		return ErrBadLimit
	}

	return nil
}

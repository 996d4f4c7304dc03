package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/indigo-web/reactor"
	"github.com/indigo-web/reactor/config"
	"github.com/indigo-web/reactor/http/status"
	"github.com/rs/zerolog"
)

func main() {
	path := flag.String("config", "", "path to a JSON config file")
	port := flag.Uint("port", 0, "port to listen on, overrides the config")
	root := flag.String("root", "", "directory to serve, overrides the config")
	flag.Parse()

	cfg := config.Default()
	if len(*path) > 0 {
		loaded, err := config.Load(*path)
		if err != nil {
			zerolog.New(os.Stderr).Fatal().Err(err).Msg("cannot load config")
		}

		cfg = loaded
	}

	if *port != 0 {
		cfg.NET.Port = uint16(*port)
	}

	if len(*root) > 0 {
		cfg.Static.Root = *root
	}

	log, err := reactor.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("cannot configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = reactor.New().
		Tune(cfg).
		Logger(log).
		Serve(ctx)
	if err != nil && !errors.Is(err, status.ErrShutdown) {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("shut down")
}

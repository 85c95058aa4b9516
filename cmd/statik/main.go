package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/indigo-web/statik"
	"github.com/indigo-web/statik/config"
	"github.com/indigo-web/statik/http/status"
	"github.com/rs/zerolog"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to the JSON configuration file")
		port       = flag.Int("port", 0, "port to listen on, overrides the config")
		webroot    = flag.String("webroot", "", "directory to serve files from, overrides the config")
		workers    = flag.Int("workers", 0, "number of simultaneously served connections, overrides the config")
		debug      = flag.Bool("debug", false, "enable debug logs")
		pretty     = flag.Bool("pretty", false, "human-readable logs instead of JSON")
	)
	flag.Parse()

	log := newLogger(*debug, *pretty)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load configuration")
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "webroot":
			cfg.Webroot = *webroot
		case "workers":
			cfg.Workers = *workers
		}
	})

	if err = cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	app := statik.New(cfg).Logger(log)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		log.Info().Stringer("signal", sig).Msg("shutting down")
		if err := app.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop the listener")
		}
	}()

	if err = app.Serve(); err != nil && !errors.Is(err, status.ErrShutdown) {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if len(path) == 0 {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func newLogger(debug, pretty bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if pretty {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		return zerolog.New(writer).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

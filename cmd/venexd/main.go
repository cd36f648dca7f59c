package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/saiputravu/venex/internal/api"
	"github.com/saiputravu/venex/internal/config"
	"github.com/saiputravu/venex/internal/engine"
	"github.com/saiputravu/venex/internal/streaming"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	setupLogging(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var t tomb.Tomb
	reg := engine.New(&t, cfg.DefaultDepth)
	prometheus.MustRegister(reg.Metrics().Collectors()...)

	streams := streaming.NewManager()
	reg.OnDepthChange(streams.PublishDepth)
	reg.OnTrade(streams.PublishTrade)

	router := api.NewRouter(reg)
	streams.RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.Listen, Handler: router}

	t.Go(func() error {
		log.Info().Str("listen", cfg.Listen).Msg("venexd starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	<-ctx.Done()
	log.Info().Msg("venexd shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during HTTP shutdown")
	}

	t.Kill(nil)
	if err := t.Wait(); err != nil {
		log.Error().Err(err).Msg("venexd exited with error")
		os.Exit(1)
	}
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Handshake/internal/adapters/http"
	"github.com/dkeye/Handshake/internal/app"
	"github.com/dkeye/Handshake/internal/app/orch"
	"github.com/dkeye/Handshake/internal/config"
	"github.com/dkeye/Handshake/internal/telemetry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	stats, err := telemetry.Open(cfg.Telemetry.Driver, cfg.Telemetry.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open telemetry store")
	}
	defer func() {
		if err := stats.Close(); err != nil {
			log.Error().Err(err).Msg("telemetry close")
		}
	}()

	policy, err := app.PolicyFromMode(cfg.Backpressure)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backpressure policy")
	}

	sessions := app.NewDirectory()
	o := &orch.Orchestrator{
		Sessions:     sessions,
		Rooms:        app.NewRoomRegistry(),
		Relay:        app.NewRelay(sessions, policy),
		Stats:        stats,
		StrictSender: cfg.StrictSender,
	}

	r := router.SetupRouter(ctx, cfg, o, stats)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if cfg.TLSEnabled() {
			log.Info().Str("addr", addr).Msg("Handshake relay started (TLS)")
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			log.Info().Str("addr", addr).Msg("Handshake relay started")
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}

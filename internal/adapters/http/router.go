package http

import (
	"context"
	"net/http"

	"github.com/dkeye/Handshake/internal/adapters/signal"
	"github.com/dkeye/Handshake/internal/app/orch"
	"github.com/dkeye/Handshake/internal/config"
	"github.com/dkeye/Handshake/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SetupRouter wires the signaling WebSocket and the read-only REST surface.
func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, stats telemetry.Store) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	opts := signal.Options{
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
		PongWait:   cfg.PongWait,
		WriteWait:  cfg.WriteWait,
		SendBuffer: cfg.SendBuffer,
	}
	limiter := signal.NewRoomRateLimiter(cfg.CreateRoomLimit, cfg.CreateRoomInterval)
	ctrl := signal.NewSignalWSController(o, opts, limiter)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": o.Sessions.Count()})
	})

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": o.Rooms.List()})
	})

	api.GET("/ice-servers", func(c *gin.Context) {
		servers, err := cfg.WebRTCICEServers()
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("ice servers")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid ice server config"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"iceServers": servers})
	})

	api.GET("/telemetry", func(c *gin.Context) {
		if stats == nil {
			c.JSON(http.StatusOK, gin.H{"sessions": gin.H{}})
			return
		}
		snap, err := stats.Snapshot(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("telemetry snapshot")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "telemetry unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": snap})
	})

	api.GET("/ws/signal", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("remote", c.ClientIP()).Msg("ws signal endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}

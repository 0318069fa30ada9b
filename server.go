package bustracker

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	server *http.Server
)

// StartServer serves the map page, the status API, the websocket stream and
// Prometheus metrics.
func StartServer(t *Tracker, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex(t.cfg, logger))
	mux.HandleFunc("/api/health", handleHealth(t))
	mux.HandleFunc("/api/status.json", handleStatusJSON(t))
	mux.HandleFunc("/api/sidebar", handleSidebar(t))
	mux.HandleFunc("/ws", t.Hub().Handle)
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", t.cfg.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()
	logger.Info().Str("addr", addr).Msg("server listening")
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then stops polling and
// drains the server.
func HandleGracefulShutdown(cancel context.CancelFunc, logger zerolog.Logger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("shutdown signal received")
	cancel()
	ctx, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTimeout()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		} else {
			logger.Info().Msg("server shut down successfully")
		}
	}
}

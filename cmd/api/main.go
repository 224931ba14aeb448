package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"swipestack/internal/config"
	"swipestack/internal/database"
	"swipestack/internal/deck"
	"swipestack/internal/generator"
	"swipestack/internal/producer"
	"swipestack/internal/realtime"
	"swipestack/internal/server"
	"swipestack/internal/textgen"
)

func gracefulShutdown(apiServer *http.Server, stop context.CancelFunc, done chan bool) {
	ctx, cancelSignal := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelSignal()

	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	cancelSignal() // Allow Ctrl+C to force shutdown.
	stop()         // Stop the embedded producer loop.

	// The server has 5 seconds to finish the requests it is currently handling.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	ctx := context.Background()
	db, err := database.NewService(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer db.Close()

	hub := realtime.NewHub()

	handler, err := deck.NewHandler(db.Queries(), hub)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build deck handler")
	}

	gen := generator.New(textgen.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel), cfg.PollinationsAPIKey)
	ctrl := producer.New(db.Queries(), gen, cfg.MinBuffer, cfg.HardCap, cfg.BatchSize,
		func(s producer.Stats) { hub.Broadcast(s) })

	// The replenishment loop runs in-process alongside the API. A separately
	// scheduled cmd/producer can run too; overlapping runs are tolerated.
	producerCtx, stopProducer := context.WithCancel(ctx)
	go ctrl.RunLoop(producerCtx, cfg.ProducerInterval)

	apiServer := server.NewServer(cfg, db, handler)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, stopProducer, done)

	log.Info().Int("port", cfg.Port).Msg("starting swipestack API")
	if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	log.Info().Msg("graceful shutdown complete")
}

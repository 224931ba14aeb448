// The producer binary runs the profile replenishment job: once with --once
// (for external schedulers) or as a loop on the configured interval.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"swipestack/internal/config"
	"swipestack/internal/database"
	"swipestack/internal/generator"
	"swipestack/internal/producer"
	"swipestack/internal/textgen"
)

func main() {
	once := flag.Bool("once", false, "run a single replenishment pass and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewService(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer db.Close()

	gen := generator.New(textgen.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel), cfg.PollinationsAPIKey)
	ctrl := producer.New(db.Queries(), gen, cfg.MinBuffer, cfg.HardCap, cfg.BatchSize, nil)

	if *once {
		report := ctrl.Run(ctx)
		log.Info().Int("status", report.StatusCode()).Msg(report.Body())
		if report.Err != nil {
			os.Exit(1)
		}
		return
	}

	log.Info().Dur("interval", cfg.ProducerInterval).Msg("starting producer loop")
	ctrl.RunLoop(ctx, cfg.ProducerInterval)
}

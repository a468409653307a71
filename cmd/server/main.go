package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/hucha/internal/app"
	"github.com/iho/hucha/internal/infrastructure/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := app.Run(context.Background(), cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

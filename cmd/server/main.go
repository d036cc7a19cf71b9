package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"wedding-planner/internal/auth"
	"wedding-planner/internal/config"
	"wedding-planner/internal/database"
	"wedding-planner/internal/server"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Load .env file (ignore error if the file doesn't exist). Overload
	// forces it over any existing environment variables.
	if err := godotenv.Overload(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := config.Load()

	store, err := database.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	users := auth.NewDirectory(auth.DefaultUsers())
	srv := server.New(cfg, store, users, log)

	log.Info().Str("port", cfg.Port).Str("backend", store.Dialect().Name()).Msg("starting server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

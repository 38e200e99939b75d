package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/dicegrid/assets"
	"github.com/robalobadob/dicegrid/internal/config"
	"github.com/robalobadob/dicegrid/internal/db"
	"github.com/robalobadob/dicegrid/internal/httpserver"
	"github.com/robalobadob/dicegrid/internal/store"
	"github.com/robalobadob/dicegrid/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := words.Init(cfg.WordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer conn.Close()
	if err := db.Migrate(context.Background(), conn, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	srv := httpserver.New(store.NewMemoryStore(), conn, cfg)
	log.Info().Str("port", cfg.Port).Str("dailyTZ", cfg.DailyTZ).Int("words", words.Stats()).Msg("starting dicegrid")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

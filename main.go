// main.go
//
// Process entrypoint for the Mastermind game server.
// Wiring order:
//   1. Load .env (development convenience) and parse configuration.
//   2. Configure zerolog's global level.
//   3. Pick the secret source (random.org with local fallback, or local only).
//   4. Pick the store backend: in-memory, or SQLite when DB_PATH is set.
//   5. Start the HTTP server.

package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/secretsrc"
	"github.com/robalobadob/mastermind/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var secrets secretsrc.Source = secretsrc.Local{}
	if cfg.RandomOrgEnabled {
		secrets = secretsrc.NewRandomOrg(cfg.RandomOrgAPIKey)
		log.Info().Msg("secret source: random.org with local fallback")
	}

	var st store.Store
	if cfg.DBPath != "" {
		db, err := openDB(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		defer db.Close()
		if err := store.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		st = store.NewSQLiteStore(db, secrets)
		log.Info().Str("path", cfg.DBPath).Msg("using sqlite store")
	} else {
		st = store.NewMemoryStore(secrets)
		log.Info().Msg("using in-memory store")
	}

	srv := httpserver.New(st, cfg)
	log.Info().Str("addr", cfg.Addr).Msg("starting mastermind server")
	if err := srv.Start(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

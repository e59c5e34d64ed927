package main

import (
	"context"
	"math/rand/v2"
	"os"

	"github.com/vytor/playstats/internal/app"
	"github.com/vytor/playstats/internal/config"
	"github.com/vytor/playstats/internal/console"
	"github.com/vytor/playstats/internal/guess"
)

func main() {
	cfg := config.Load()
	log := app.NewLogger(cfg)

	log.Debug("store_backend=%s", cfg.StoreBackend)
	log.Debug("guess_profile_path=%s", cfg.GuessProfilePath)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("max_rounds=%d", cfg.MaxRounds)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	st, closeStore, err := app.OpenGuessStore(cfg)
	if err != nil {
		log.Error("failed to open profile store: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close profile store: %v", err)
		}
	}()

	src := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	prompt := console.New(os.Stdin, os.Stdout, cfg.MaxInvalidInputs)
	if err := guess.NewSession(st, prompt, src, cfg.MaxRounds).Run(context.Background()); err != nil {
		log.Warn("profiles were not saved: %v", err)
	}
}

package main

import (
	"context"
	"math/rand/v2"
	"os"

	"github.com/vytor/playstats/internal/app"
	"github.com/vytor/playstats/internal/config"
	"github.com/vytor/playstats/internal/console"
	"github.com/vytor/playstats/internal/quiz"
)

func main() {
	cfg := config.Load()
	log := app.NewLogger(cfg)

	log.Debug("store_backend=%s", cfg.StoreBackend)
	log.Debug("quiz_profile_path=%s", cfg.QuizProfilePath)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("quiz_questions_path=%s", cfg.QuizQuestionsPath)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	st, closeStore, err := app.OpenQuizStore(cfg)
	if err != nil {
		log.Error("failed to open profile store: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close profile store: %v", err)
		}
	}()

	ctx := context.Background()
	var opts []quiz.Option
	if cfg.QuizShuffle {
		opts = append(opts, quiz.WithShuffle(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))))
	}

	prompt := console.New(os.Stdin, os.Stdout, cfg.MaxInvalidInputs)
	session := quiz.NewSession(st, quiz.LoadBank(ctx, cfg.QuizQuestionsPath), prompt, opts...)
	if err := session.Run(ctx); err != nil {
		log.Warn("profiles were not saved: %v", err)
	}
}

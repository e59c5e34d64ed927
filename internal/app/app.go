// Package app wires configuration to concrete profile stores.
package app

import (
	"fmt"

	"github.com/vytor/playstats/internal/config"
	"github.com/vytor/playstats/internal/logger"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/store"
	"github.com/vytor/playstats/internal/store/file"
	"github.com/vytor/playstats/internal/store/sqlite"
)

// NewLogger builds the process logger from cfg and installs it as default.
func NewLogger(cfg config.Config) *logger.Logger {
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(false),
	)
	logger.SetDefault(log)
	return log
}

// OpenQuizStore returns the quiz profile store selected by cfg and a func
// that releases its resources.
func OpenQuizStore(cfg config.Config) (*store.Store[models.QuizProfile], func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		backend := file.NewBackend[models.QuizProfile](cfg.QuizProfilePath, file.QuizCodec{})
		return store.New[models.QuizProfile](backend, models.NewQuizProfile), noop, nil
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		backend := sqlite.NewQuizBackend(db.DB, cfg.DBPath)
		return store.New[models.QuizProfile](backend, models.NewQuizProfile), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// OpenGuessStore returns the guess profile store selected by cfg and a func
// that releases its resources.
func OpenGuessStore(cfg config.Config) (*store.Store[models.GuessProfile], func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		backend := file.NewBackend[models.GuessProfile](cfg.GuessProfilePath, file.GuessCodec{})
		return store.New[models.GuessProfile](backend, models.NewGuessProfile), noop, nil
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		backend := sqlite.NewGuessBackend(db.DB, cfg.DBPath)
		return store.New[models.GuessProfile](backend, models.NewGuessProfile), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func noop() error { return nil }

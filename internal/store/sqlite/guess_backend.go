package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/logger"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/store"
)

var guessColumns = []string{"username", "games_played", "rounds_played", "wins", "losses", "total_score", "best_score"}

type guessBackend struct {
	db       *sql.DB
	location string
}

// NewGuessBackend creates a store.Backend for number-guessing profiles.
func NewGuessBackend(db *sql.DB, location string) store.Backend[models.GuessProfile] {
	return &guessBackend{db: db, location: location}
}

func (b *guessBackend) Location() string {
	return b.location
}

func (b *guessBackend) LoadAll(ctx context.Context) (store.Snapshot[models.GuessProfile], error) {
	log := logger.FromContext(ctx).WithPrefix("guess_backend")
	log.Debug("loading guess profiles")

	var snap store.Snapshot[models.GuessProfile]

	query, args, err := sqlBuilder.
		Select(guessColumns...).
		From("guess_profiles").
		OrderBy("username ASC").
		ToSql()
	if err != nil {
		return snap, errors.NewPersistenceError("load", b.location, err)
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query guess profiles: %v", err)
		return snap, errors.NewPersistenceError("load", b.location, err)
	}
	defer rows.Close()

	row := 0
	for rows.Next() {
		row++
		var p models.GuessProfile
		if err := rows.Scan(&p.Username, &p.GamesPlayed, &p.RoundsPlayed, &p.Wins, &p.Losses, &p.TotalScore, &p.BestScore); err != nil {
			log.Error("failed to scan guess profile row: %v", err)
			return snap, errors.NewPersistenceError("load", b.location, err)
		}
		if p.Username == "" {
			snap.Skipped = append(snap.Skipped, errors.NewCorruptRecordError(row, "empty username"))
			continue
		}
		snap.Profiles = append(snap.Profiles, p)
	}
	if err := rows.Err(); err != nil {
		return snap, errors.NewPersistenceError("load", b.location, err)
	}

	log.Debug("loaded %d guess profiles", len(snap.Profiles))
	return snap, nil
}

func (b *guessBackend) SaveAll(ctx context.Context, profiles []models.GuessProfile) error {
	log := logger.FromContext(ctx).WithPrefix("guess_backend")
	log.Debug("saving %d guess profiles", len(profiles))

	err := tx(ctx, b.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM guess_profiles`); err != nil {
			return err
		}
		for start := 0; start < len(profiles); start += insertBatchSize {
			end := min(start+insertBatchSize, len(profiles))

			insert := sqlBuilder.Insert("guess_profiles").Columns(guessColumns...)
			for _, p := range profiles[start:end] {
				insert = insert.Values(p.Username, p.GamesPlayed, p.RoundsPlayed, p.Wins, p.Losses, p.TotalScore, p.BestScore)
			}
			if err := execBuilder(ctx, tx, insert); err != nil {
				return fmt.Errorf("insert guess profiles: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save guess profiles: %v", err)
		return errors.NewPersistenceError("save", b.location, err)
	}
	return nil
}

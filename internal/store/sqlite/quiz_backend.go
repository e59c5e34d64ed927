package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/logger"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/store"
)

// insertBatchSize bounds the rows per INSERT to stay under SQLite's
// variable limit.
const insertBatchSize = 200

type quizBackend struct {
	db       *sql.DB
	location string
}

// NewQuizBackend creates a store.Backend for quiz profiles.
func NewQuizBackend(db *sql.DB, location string) store.Backend[models.QuizProfile] {
	return &quizBackend{db: db, location: location}
}

func (b *quizBackend) Location() string {
	return b.location
}

func (b *quizBackend) LoadAll(ctx context.Context) (store.Snapshot[models.QuizProfile], error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_backend")
	log.Debug("loading quiz profiles")

	var snap store.Snapshot[models.QuizProfile]

	query, args, err := sqlBuilder.
		Select("username", "quizzes_played", "highest_score", "average_accuracy").
		From("quiz_profiles").
		OrderBy("username ASC").
		ToSql()
	if err != nil {
		return snap, errors.NewPersistenceError("load", b.location, err)
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query quiz profiles: %v", err)
		return snap, errors.NewPersistenceError("load", b.location, err)
	}
	defer rows.Close()

	byName := make(map[string]int)
	row := 0
	for rows.Next() {
		row++
		p := models.NewQuizProfile("")
		if err := rows.Scan(&p.Username, &p.QuizzesPlayed, &p.HighestScore, &p.AverageAccuracy); err != nil {
			log.Error("failed to scan quiz profile row: %v", err)
			return snap, errors.NewPersistenceError("load", b.location, err)
		}
		if reason := validateQuiz(p); reason != "" {
			snap.Skipped = append(snap.Skipped, errors.NewCorruptRecordError(row, reason))
			continue
		}
		byName[p.Username] = len(snap.Profiles)
		snap.Profiles = append(snap.Profiles, p)
	}
	if err := rows.Err(); err != nil {
		return snap, errors.NewPersistenceError("load", b.location, err)
	}

	if err := b.loadAchievements(ctx, snap.Profiles, byName); err != nil {
		log.Error("failed to load achievements: %v", err)
		return snap, errors.NewPersistenceError("load", b.location, err)
	}

	log.Debug("loaded %d quiz profiles", len(snap.Profiles))
	return snap, nil
}

func (b *quizBackend) loadAchievements(ctx context.Context, profiles []models.QuizProfile, byName map[string]int) error {
	query, args, err := sqlBuilder.
		Select("username", "achievement").
		From("quiz_achievements").
		OrderBy("username ASC", "achievement ASC").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var username, achievement string
		if err := rows.Scan(&username, &achievement); err != nil {
			return err
		}
		if i, ok := byName[username]; ok {
			profiles[i].Achievements[models.Achievement(achievement)] = struct{}{}
		}
	}
	return rows.Err()
}

func (b *quizBackend) SaveAll(ctx context.Context, profiles []models.QuizProfile) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_backend")
	log.Debug("saving %d quiz profiles", len(profiles))

	err := tx(ctx, b.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_achievements`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_profiles`); err != nil {
			return err
		}

		for start := 0; start < len(profiles); start += insertBatchSize {
			end := min(start+insertBatchSize, len(profiles))
			batch := profiles[start:end]

			insert := sqlBuilder.
				Insert("quiz_profiles").
				Columns("username", "quizzes_played", "highest_score", "average_accuracy")
			for _, p := range batch {
				insert = insert.Values(p.Username, p.QuizzesPlayed, p.HighestScore, p.AverageAccuracy)
			}
			if err := execBuilder(ctx, tx, insert); err != nil {
				return fmt.Errorf("insert quiz profiles: %w", err)
			}

			achievements := sqlBuilder.Insert("quiz_achievements").Columns("username", "achievement")
			n := 0
			for _, p := range batch {
				for _, a := range p.Achievements.Sorted() {
					achievements = achievements.Values(p.Username, string(a))
					n++
				}
			}
			if n == 0 {
				continue
			}
			if err := execBuilder(ctx, tx, achievements); err != nil {
				return fmt.Errorf("insert quiz achievements: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save quiz profiles: %v", err)
		return errors.NewPersistenceError("save", b.location, err)
	}
	return nil
}

func validateQuiz(p models.QuizProfile) string {
	switch {
	case p.Username == "":
		return "empty username"
	case p.QuizzesPlayed < 0 || p.HighestScore < 0:
		return "negative counter"
	case math.IsNaN(p.AverageAccuracy) || p.AverageAccuracy < 0 || p.AverageAccuracy > 100:
		return fmt.Sprintf("average accuracy %v is outside 0-100", p.AverageAccuracy)
	default:
		return ""
	}
}

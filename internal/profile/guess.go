package profile

import (
	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/models"
)

// ApplyGuessGame folds one completed round-set into p and returns the updated
// profile. Invalid results leave p unchanged.
func ApplyGuessGame(p models.GuessProfile, result models.GameResult) (models.GuessProfile, error) {
	if result.Rounds < 0 || result.Wins < 0 || result.Losses < 0 || result.Score < 0 {
		return p, errors.NewValidationError("result", "counts must not be negative")
	}
	if result.Wins+result.Losses != result.Rounds {
		return p, errors.NewValidationError("result", "wins and losses must add up to rounds")
	}

	next := p
	next.GamesPlayed++
	next.RoundsPlayed += result.Rounds
	next.Wins += result.Wins
	next.Losses += result.Losses
	next.TotalScore += result.Score
	if result.Score > next.BestScore {
		next.BestScore = result.Score
	}
	return next, nil
}

// RoundScore scores a won round: MaxRange/attempts plus 10 points for every
// attempt left over. Unlimited difficulties get no leftover bonus.
func RoundScore(settings models.DifficultySettings, attempts int) int {
	if attempts < 1 {
		return 0
	}
	score := settings.MaxRange / attempts
	if !settings.Unlimited() && attempts < settings.MaxAttempts {
		score += (settings.MaxAttempts - attempts) * 10
	}
	return score
}

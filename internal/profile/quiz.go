package profile

import (
	"math"

	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/models"
)

// ApplyQuizResult folds one completed quiz into p and returns the updated
// profile. p itself is not modified. Invalid results leave p unchanged.
func ApplyQuizResult(p models.QuizProfile, result models.QuizResult) (models.QuizProfile, error) {
	if result.Score < 0 {
		return p, errors.NewValidationError("score", "must not be negative")
	}
	if math.IsNaN(result.Accuracy) || result.Accuracy < 0 || result.Accuracy > 100 {
		return p, errors.NewValidationError("accuracy", "must be between 0 and 100")
	}

	next := p
	next.Achievements = p.Achievements.Clone()

	next.QuizzesPlayed++
	if result.Score > next.HighestScore {
		next.HighestScore = result.Score
	}
	n := float64(next.QuizzesPlayed)
	next.AverageAccuracy = (p.AverageAccuracy*(n-1) + result.Accuracy) / n

	for _, a := range EarnedAchievements(result) {
		next.Achievements[a] = struct{}{}
	}
	return next, nil
}

// Accuracy returns correct/total as a percentage, or 0 when nothing was asked.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) * 100.0 / float64(total)
}

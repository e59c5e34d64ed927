package profile_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/profile"
)

func TestApplyQuizResult_NewUserScenario(t *testing.T) {
	alice := models.NewQuizProfile("alice")
	assert.Equal(t, 0, alice.QuizzesPlayed)
	assert.Equal(t, 0, alice.HighestScore)
	assert.Equal(t, 0.0, alice.AverageAccuracy)
	assert.Empty(t, alice.Achievements)

	updated, err := profile.ApplyQuizResult(alice, models.QuizResult{Score: 5, Accuracy: 100.0})
	require.NoError(t, err)

	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, 1, updated.QuizzesPlayed)
	assert.Equal(t, 5, updated.HighestScore)
	assert.Equal(t, 100.0, updated.AverageAccuracy)
	assert.Equal(t, models.NewAchievementSet(models.AchievementQuizMaster, models.AchievementPerfectAccuracy), updated.Achievements)
}

func TestApplyQuizResult_DoesNotMutateInput(t *testing.T) {
	before := models.NewQuizProfile("bob")

	_, err := profile.ApplyQuizResult(before, models.QuizResult{Score: 7, Accuracy: 100})
	require.NoError(t, err)

	assert.Equal(t, 0, before.QuizzesPlayed)
	assert.Empty(t, before.Achievements, "achievement set must be copied, not shared")
}

func TestApplyQuizResult_PlayCountEqualsUpdates(t *testing.T) {
	p := models.NewQuizProfile("carol")
	for i := 0; i < 25; i++ {
		var err error
		p, err = profile.ApplyQuizResult(p, models.QuizResult{Score: i % 3, Accuracy: 50})
		require.NoError(t, err)
	}
	assert.Equal(t, 25, p.QuizzesPlayed)
}

func TestApplyQuizResult_AverageIsArithmeticMean(t *testing.T) {
	accuracies := []float64{100, 0, 33.333, 66.667, 50, 12.5, 87.5}
	p := models.NewQuizProfile("dave")
	sum := 0.0
	for _, a := range accuracies {
		var err error
		p, err = profile.ApplyQuizResult(p, models.QuizResult{Score: 1, Accuracy: a})
		require.NoError(t, err)
		sum += a
	}

	assert.InDelta(t, sum/float64(len(accuracies)), p.AverageAccuracy, 1e-9)
	assert.GreaterOrEqual(t, p.AverageAccuracy, 0.0)
	assert.LessOrEqual(t, p.AverageAccuracy, 100.0)
}

func TestApplyQuizResult_HighestScoreIsMax(t *testing.T) {
	scores := []int{2, 9, 4, 9, 1, 0, 6}
	p := models.NewQuizProfile("erin")
	for _, s := range scores {
		var err error
		p, err = profile.ApplyQuizResult(p, models.QuizResult{Score: s, Accuracy: 10})
		require.NoError(t, err)
	}
	assert.Equal(t, 9, p.HighestScore)
}

func TestApplyQuizResult_AchievementsAreUnionAndIdempotent(t *testing.T) {
	p := models.NewQuizProfile("frank")

	p, err := profile.ApplyQuizResult(p, models.QuizResult{Score: 1, Accuracy: 100})
	require.NoError(t, err)
	assert.Equal(t, models.NewAchievementSet(models.AchievementPerfectAccuracy), p.Achievements)

	p, err = profile.ApplyQuizResult(p, models.QuizResult{Score: 5, Accuracy: 40})
	require.NoError(t, err)
	assert.Equal(t, models.NewAchievementSet(models.AchievementPerfectAccuracy, models.AchievementQuizMaster), p.Achievements)

	p, err = profile.ApplyQuizResult(p, models.QuizResult{Score: 8, Accuracy: 100})
	require.NoError(t, err)
	assert.Len(t, p.Achievements, 2)

	p, err = profile.ApplyQuizResult(p, models.QuizResult{Score: 0, Accuracy: 0})
	require.NoError(t, err)
	assert.Len(t, p.Achievements, 2, "achievements never shrink")
}

func TestApplyQuizResult_RejectsInvalidResults(t *testing.T) {
	tests := []struct {
		name   string
		result models.QuizResult
	}{
		{"negative score", models.QuizResult{Score: -1, Accuracy: 50}},
		{"accuracy below zero", models.QuizResult{Score: 1, Accuracy: -0.1}},
		{"accuracy above hundred", models.QuizResult{Score: 1, Accuracy: 100.1}},
		{"accuracy not a number", models.QuizResult{Score: 1, Accuracy: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewQuizProfile("gina")
			updated, err := profile.ApplyQuizResult(p, tt.result)

			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
			assert.Equal(t, p, updated)
		})
	}
}

func TestEarnedAchievements(t *testing.T) {
	assert.Empty(t, profile.EarnedAchievements(models.QuizResult{Score: 4, Accuracy: 99.9}))
	assert.Equal(t, []models.Achievement{models.AchievementQuizMaster},
		profile.EarnedAchievements(models.QuizResult{Score: profile.QuizMasterScore, Accuracy: 80}))
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, profile.Accuracy(0, 0))
	assert.Equal(t, 100.0, profile.Accuracy(3, 3))
	assert.InDelta(t, 33.333, profile.Accuracy(1, 3), 0.001)
}

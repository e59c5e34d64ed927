package profile

import "github.com/vytor/playstats/internal/models"

// QuizMasterScore is the score at which a quiz earns Quiz Master.
const QuizMasterScore = 5

type achievementRule struct {
	achievement models.Achievement
	earned      func(models.QuizResult) bool
}

var quizRules = []achievementRule{
	{models.AchievementQuizMaster, func(r models.QuizResult) bool { return r.Score >= QuizMasterScore }},
	{models.AchievementPerfectAccuracy, func(r models.QuizResult) bool { return r.Accuracy == 100.0 }},
}

// EarnedAchievements returns every achievement a single quiz result unlocks,
// whether or not the player already holds it.
func EarnedAchievements(result models.QuizResult) []models.Achievement {
	var earned []models.Achievement
	for _, rule := range quizRules {
		if rule.earned(result) {
			earned = append(earned, rule.achievement)
		}
	}
	return earned
}

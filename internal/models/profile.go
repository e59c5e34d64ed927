package models

import "sort"

// Achievement is a badge a quiz player earns once and keeps.
type Achievement string

const (
	AchievementQuizMaster      Achievement = "Quiz Master"
	AchievementPerfectAccuracy Achievement = "Perfect Accuracy"
)

// AchievementSet is a union-only set of achievements.
type AchievementSet map[Achievement]struct{}

// NewAchievementSet builds a set from the given achievements.
func NewAchievementSet(achievements ...Achievement) AchievementSet {
	s := make(AchievementSet, len(achievements))
	for _, a := range achievements {
		s[a] = struct{}{}
	}
	return s
}

func (s AchievementSet) Has(a Achievement) bool {
	_, ok := s[a]
	return ok
}

// Clone returns an independent copy. A nil set clones to an empty one.
func (s AchievementSet) Clone() AchievementSet {
	c := make(AchievementSet, len(s))
	for a := range s {
		c[a] = struct{}{}
	}
	return c
}

// Sorted returns the achievements in lexical order.
func (s AchievementSet) Sorted() []Achievement {
	out := make([]Achievement, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// QuizProfile holds a quiz player's accumulated statistics.
type QuizProfile struct {
	Username        string         `json:"username"`
	QuizzesPlayed   int            `json:"quizzes_played"`
	HighestScore    int            `json:"highest_score"`
	AverageAccuracy float64        `json:"average_accuracy"`
	Achievements    AchievementSet `json:"achievements"`
}

// NewQuizProfile returns a zeroed profile for username.
func NewQuizProfile(username string) QuizProfile {
	return QuizProfile{Username: username, Achievements: NewAchievementSet()}
}

func (p QuizProfile) Key() string { return p.Username }

// GuessProfile holds a number-guessing player's accumulated statistics.
type GuessProfile struct {
	Username     string `json:"username"`
	GamesPlayed  int    `json:"games_played"` // completed round-sets
	RoundsPlayed int    `json:"rounds_played"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	TotalScore   int    `json:"total_score"`
	BestScore    int    `json:"best_score"` // best single round-set
}

// NewGuessProfile returns a zeroed profile for username.
func NewGuessProfile(username string) GuessProfile {
	return GuessProfile{Username: username}
}

func (p GuessProfile) Key() string { return p.Username }

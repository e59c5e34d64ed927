package models

import "fmt"

// Difficulty selects a row of the difficulty table.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota + 1
	DifficultyMedium
	DifficultyHard
)

// DifficultySettings bounds one guessing round.
type DifficultySettings struct {
	Name        string
	MaxRange    int // targets are drawn from [1, MaxRange]
	MaxAttempts int // 0 means unlimited
}

var difficultyTable = map[Difficulty]DifficultySettings{
	DifficultyEasy:   {Name: "Easy", MaxRange: 50, MaxAttempts: 0},
	DifficultyMedium: {Name: "Medium", MaxRange: 100, MaxAttempts: 10},
	DifficultyHard:   {Name: "Hard", MaxRange: 200, MaxAttempts: 5},
}

// Difficulties lists every difficulty in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Settings returns the table row for d. Unknown values fall back to Medium.
func (d Difficulty) Settings() DifficultySettings {
	if s, ok := difficultyTable[d]; ok {
		return s
	}
	return difficultyTable[DifficultyMedium]
}

func (d Difficulty) String() string {
	return d.Settings().Name
}

// Unlimited reports whether rounds at this difficulty have no attempt limit.
func (s DifficultySettings) Unlimited() bool {
	return s.MaxAttempts == 0
}

// Describe renders the menu label, e.g. "Medium (1-100, 10 Attempts)".
func (s DifficultySettings) Describe() string {
	attempts := "Unlimited Attempts"
	if !s.Unlimited() {
		attempts = fmt.Sprintf("%d Attempts", s.MaxAttempts)
	}
	return fmt.Sprintf("%s (1-%d, %s)", s.Name, s.MaxRange, attempts)
}

// GameResult is the outcome of one completed round-set.
type GameResult struct {
	Rounds int
	Wins   int
	Losses int
	Score  int
}

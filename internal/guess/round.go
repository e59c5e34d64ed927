package guess

import (
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/profile"
)

// closeRange is how near a wrong guess must be to earn the "within" hint.
const closeRange = 10

// Source draws random integers; *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type Outcome int

const (
	TooLow Outcome = iota
	TooHigh
	Correct
)

// Feedback describes the result of one guess.
type Feedback struct {
	Outcome Outcome
	Close   bool   // wrong but within closeRange of the target
	Parity  string // "even" or "odd" when the halfway hint applies
	Over    bool   // the round ended with this guess
	Score   int    // points earned, set on a correct guess
}

// Round is one number to find.
type Round struct {
	settings models.DifficultySettings
	target   int
	attempts int
	won      bool
}

// NewRound draws a target in [1, MaxRange] from src.
func NewRound(settings models.DifficultySettings, src Source) *Round {
	return &Round{settings: settings, target: src.IntN(settings.MaxRange) + 1}
}

func (r *Round) Target() int   { return r.target }
func (r *Round) Attempts() int { return r.attempts }
func (r *Round) Won() bool     { return r.won }

// Over reports whether the round has been won or has run out of attempts.
func (r *Round) Over() bool {
	return r.won || (!r.settings.Unlimited() && r.attempts >= r.settings.MaxAttempts)
}

// Guess records one attempt. Guessing after the round is over is a no-op
// that reports Over.
func (r *Round) Guess(n int) Feedback {
	if r.Over() {
		return Feedback{Over: true}
	}
	r.attempts++

	if n == r.target {
		r.won = true
		return Feedback{Outcome: Correct, Over: true, Score: profile.RoundScore(r.settings, r.attempts)}
	}

	fb := Feedback{Outcome: TooHigh}
	if n < r.target {
		fb.Outcome = TooLow
	}
	diff := n - r.target
	if diff < 0 {
		diff = -diff
	}
	fb.Close = diff <= closeRange
	if !r.settings.Unlimited() && r.attempts == r.settings.MaxAttempts/2 {
		fb.Parity = "odd"
		if r.target%2 == 0 {
			fb.Parity = "even"
		}
	}
	fb.Over = r.Over()
	return fb
}

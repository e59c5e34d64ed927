// Package guess runs the number-guessing game.
package guess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vytor/playstats/internal/console"
	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/logger"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/profile"
	"github.com/vytor/playstats/internal/store"
)

// Session is one run of the guessing program for a single player.
type Session struct {
	store     *store.Store[models.GuessProfile]
	prompt    *console.Prompter
	src       Source
	maxRounds int
}

// NewSession creates a guessing session over st. Targets are drawn from src
// and a round-set is at most maxRounds long.
func NewSession(st *store.Store[models.GuessProfile], prompt *console.Prompter, src Source, maxRounds int) *Session {
	return &Session{store: st, prompt: prompt, src: src, maxRounds: maxRounds}
}

// Run loads profiles, logs the player in, plays round-sets until the player
// stops, then saves. The returned error is the save error, if any; it has
// already been shown to the player.
func (s *Session) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("guess").WithField("session", uuid.NewString())
	ctx = logger.NewContext(ctx, log)

	if notice := s.store.Load(ctx).Notice(); notice != "" {
		s.prompt.Println(notice)
	}

	s.prompt.Println("-------------------------------------------------")
	s.prompt.Println("Welcome to the Professional Number Guessing Game!")
	s.prompt.Println("-------------------------------------------------")

	if err := s.play(ctx); err != nil && !stderrors.Is(err, io.EOF) {
		if stderrors.Is(err, console.ErrTooManyInvalid) {
			s.prompt.Println("Too many invalid inputs. Ending the session.")
		}
		log.Warn("session ended early: %v", err)
	}

	saveErr := s.store.Save(ctx)
	if saveErr != nil {
		s.prompt.Printf("Error saving profiles: %s\n", errors.UserMessage(saveErr))
	}
	s.prompt.Println("Thanks for playing! Goodbye!")
	return saveErr
}

func (s *Session) play(ctx context.Context) error {
	username, err := s.login(ctx)
	if err != nil {
		return err
	}

	for {
		difficulty, err := s.chooseDifficulty()
		if err != nil {
			return err
		}
		rounds, err := s.prompt.Choice(fmt.Sprintf("Enter the number of rounds to play (1-%d):", s.maxRounds), 1, s.maxRounds)
		if err != nil {
			return err
		}

		result, err := s.playGame(ctx, difficulty.Settings(), rounds)
		if err != nil {
			return err
		}

		p, _ := s.store.Get(username)
		updated, err := profile.ApplyGuessGame(p, result)
		if err != nil {
			return err
		}
		if err := s.store.Put(updated); err != nil {
			return err
		}
		logger.FromContext(ctx).Info("round-set completed: username=%s, difficulty=%s, rounds=%d, score=%d",
			username, difficulty, result.Rounds, result.Score)

		s.prompt.Printf("\nGame Over! Your total score: %d\n", result.Score)
		s.prompt.Println(FormatProfile(updated))

		again, err := s.prompt.YesNo("\nDo you want to play again? (yes/no)")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) login(ctx context.Context) (string, error) {
	hasProfile, err := s.prompt.YesNo("\nDo you already have a profile? (yes/no)")
	if err != nil {
		return "", err
	}

	if hasProfile {
		username, err := s.prompt.NonEmpty("Enter your username:")
		if err != nil {
			return "", err
		}
		if _, ok := s.store.Get(username); ok {
			s.prompt.Printf("Welcome back, %s!\n", username)
			return username, nil
		}
		s.prompt.Println("No profile found for that username. Creating a new profile.")
	}

	username, err := s.prompt.NonEmpty("Enter a username to register:")
	if err != nil {
		return "", err
	}
	p, created, err := s.store.GetOrCreate(ctx, username)
	if err != nil {
		return "", err
	}
	if created {
		s.prompt.Printf("Profile created successfully! Welcome, %s!\n", p.Username)
	} else {
		s.prompt.Printf("That username is already registered. Welcome back, %s!\n", p.Username)
	}
	logger.FromContext(ctx).Info("player logged in: username=%s, new=%t", p.Username, created)
	return p.Username, nil
}

func (s *Session) chooseDifficulty() (models.Difficulty, error) {
	s.prompt.Println("\nSelect Difficulty Level:")
	for i, d := range models.Difficulties {
		s.prompt.Printf("%d. %s\n", i+1, d.Settings().Describe())
	}
	choice, err := s.prompt.Choice(fmt.Sprintf("Enter your choice (1-%d):", len(models.Difficulties)), 1, len(models.Difficulties))
	if err != nil {
		return 0, err
	}
	return models.Difficulties[choice-1], nil
}

func (s *Session) playGame(ctx context.Context, settings models.DifficultySettings, rounds int) (models.GameResult, error) {
	log := logger.FromContext(ctx)
	result := models.GameResult{Rounds: rounds}

	for i := 1; i <= rounds; i++ {
		s.prompt.Printf("\n--- Round %d ---\n", i)
		round := NewRound(settings, s.src)
		log.Debug("round %d target drawn", i)

		s.prompt.Printf("Guess the number between 1 and %d.\n", settings.MaxRange)
		if settings.Unlimited() {
			s.prompt.Println("You have unlimited attempts.")
		} else {
			s.prompt.Printf("You have %d attempts.\n", settings.MaxAttempts)
		}

		for !round.Over() {
			n, err := s.prompt.Choice("Enter your guess:", 1, settings.MaxRange)
			if err != nil {
				return result, err
			}
			fb := round.Guess(n)
			result.Score += fb.Score
			s.report(fb, round)
		}

		if round.Won() {
			result.Wins++
		} else {
			result.Losses++
			s.prompt.Printf("You ran out of attempts! The correct number was %d.\n", round.Target())
		}
	}
	return result, nil
}

func (s *Session) report(fb Feedback, round *Round) {
	switch fb.Outcome {
	case Correct:
		s.prompt.Printf("Correct! You guessed the number in %d attempts.\n", round.Attempts())
		return
	case TooLow:
		s.prompt.Println("Too low! Try again.")
	case TooHigh:
		s.prompt.Println("Too high! Try again.")
	}
	if fb.Close {
		s.prompt.Printf("Hint: You're within %d of the correct number!\n", closeRange)
	}
	if fb.Parity != "" {
		s.prompt.Printf("Hint: The number is %s.\n", fb.Parity)
	}
}

// FormatProfile renders a profile for the player.
func FormatProfile(p models.GuessProfile) string {
	return fmt.Sprintf("Player: %s\nGames Played: %d\nRounds Played: %d\nWins: %d\nLosses: %d\nTotal Score: %d\nBest Score: %d",
		p.Username, p.GamesPlayed, p.RoundsPlayed, p.Wins, p.Losses, p.TotalScore, p.BestScore)
}

// Package quiz runs the multiple-choice quiz game.
package quiz

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/playstats/internal/console"
	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/logger"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/profile"
	"github.com/vytor/playstats/internal/store"
)

// errQuit ends the session without treating it as a failure.
var errQuit = stderrors.New("quit")

// Session is one run of the quiz program for a single player.
type Session struct {
	store  *store.Store[models.QuizProfile]
	bank   *Bank
	prompt *console.Prompter
	rng    *rand.Rand // nil keeps bank order
}

// Option configures a Session.
type Option func(*Session)

// WithShuffle shuffles each quiz's questions using r.
func WithShuffle(r *rand.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// NewSession creates a quiz session over st.
func NewSession(st *store.Store[models.QuizProfile], bank *Bank, prompt *console.Prompter, opts ...Option) *Session {
	s := &Session{store: st, bank: bank, prompt: prompt}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loads profiles, logs the player in, plays quizzes until the player
// stops, then saves. Input ending early still saves. The returned error is
// the save error, if any; it has already been shown to the player.
func (s *Session) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("quiz").WithField("session", uuid.NewString())
	ctx = logger.NewContext(ctx, log)

	if notice := s.store.Load(ctx).Notice(); notice != "" {
		s.prompt.Println(notice)
	}

	s.banner()

	if err := s.play(ctx); err != nil && !isEndOfInput(err) {
		if stderrors.Is(err, console.ErrTooManyInvalid) {
			s.prompt.Println("Too many invalid inputs. Ending the session.")
		}
		log.Warn("session ended early: %v", err)
	}

	saveErr := s.store.Save(ctx)
	if saveErr != nil {
		s.prompt.Printf("Error saving user profiles: %s\n", errors.UserMessage(saveErr))
	}

	s.prompt.Println()
	s.prompt.Rule()
	s.prompt.Println("         Thank you for playing! See you next time!")
	s.prompt.Rule()
	return saveErr
}

func (s *Session) banner() {
	s.prompt.Rule()
	s.prompt.Println("            Welcome to the Ultimate Quiz Application!")
	s.prompt.Println("      Test your knowledge across various categories and win!")
	s.prompt.Rule()
}

func (s *Session) play(ctx context.Context) error {
	username, err := s.login(ctx)
	if err != nil {
		return err
	}

	for {
		category, err := s.chooseCategory()
		if err != nil {
			return err
		}

		p, _ := s.store.Get(username)
		updated, err := s.playQuiz(ctx, p, category)
		if err != nil {
			return err
		}
		if err := s.store.Put(updated); err != nil {
			return err
		}

		s.prompt.Println()
		s.prompt.Rule()
		s.prompt.Println("Your Profile:")
		s.prompt.Println(FormatProfile(updated))
		s.prompt.Rule()

		again, err := s.prompt.YesNo("Do you want to play again? (yes/no)")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) login(ctx context.Context) (string, error) {
	s.prompt.Println()
	s.prompt.Rule()
	username, err := s.prompt.NonEmpty("Enter your username:")
	if err != nil {
		return "", err
	}

	p, created, err := s.store.GetOrCreate(ctx, username)
	if err != nil {
		return "", err
	}
	if created {
		s.prompt.Println("New user created.")
	} else {
		s.prompt.Printf("Welcome back, %s!\n", p.Username)
	}
	logger.FromContext(ctx).Info("player logged in: username=%s, new=%t", p.Username, created)
	return p.Username, nil
}

func (s *Session) chooseCategory() (models.Category, error) {
	s.prompt.Println()
	s.prompt.Rule()
	s.prompt.Println("Choose a category:")
	for i, c := range models.MenuCategories {
		s.prompt.Printf("%d. %s\n", i+1, c)
	}
	exit := len(models.MenuCategories) + 1
	s.prompt.Printf("%d. Exit\n", exit)
	s.prompt.Rule()

	choice, err := s.prompt.Choice("", 1, exit)
	if err != nil {
		return "", err
	}
	if choice == exit {
		return "", errQuit
	}
	return models.MenuCategories[choice-1], nil
}

// playQuiz asks every question in category and returns p updated with the
// result. A category without questions leaves p unchanged.
func (s *Session) playQuiz(ctx context.Context, p models.QuizProfile, category models.Category) (models.QuizProfile, error) {
	log := logger.FromContext(ctx)

	s.prompt.Println()
	s.prompt.Rule()
	s.prompt.Printf("Starting quiz in category: %s\n", category)
	s.prompt.Rule()

	questions := s.bank.ForCategory(category)
	if s.rng != nil {
		questions = Shuffle(questions, s.rng)
	}
	if len(questions) == 0 {
		s.prompt.Println("There are no questions in this category yet.")
		return p, nil
	}

	correct := 0
	for _, q := range questions {
		s.prompt.Println()
		s.prompt.Println(q.Text)
		for i, opt := range q.Options {
			s.prompt.Printf("%d. %s\n", i+1, opt)
		}
		s.prompt.Rule()
		s.prompt.Printf("Enter your answer (1-%d):\n", len(q.Options))
		s.prompt.Rule()

		answer, err := s.prompt.Choice("", 1, len(q.Options))
		if err != nil {
			return p, err
		}
		if answer == q.Correct {
			s.prompt.Println("Correct!")
			correct++
		} else {
			s.prompt.Printf("Wrong! The correct answer was: %d. %s\n", q.Correct, q.CorrectOption())
		}
	}

	result := models.QuizResult{Score: correct, Accuracy: profile.Accuracy(correct, len(questions))}

	s.prompt.Println()
	s.prompt.Rule()
	s.prompt.Println("Quiz Over!")
	s.prompt.Printf("Your Score: %d\n", result.Score)
	s.prompt.Printf("Accuracy: %.2f%%\n", result.Accuracy)
	s.prompt.Rule()

	updated, err := profile.ApplyQuizResult(p, result)
	if err != nil {
		return p, err
	}
	for _, a := range EarnedNow(p, updated) {
		s.prompt.Printf("Achievement unlocked: %s\n", a)
	}
	log.Info("quiz completed: username=%s, category=%s, score=%d, accuracy=%.2f", p.Username, category, result.Score, result.Accuracy)
	return updated, nil
}

// EarnedNow lists achievements held by after but not by before.
func EarnedNow(before, after models.QuizProfile) []models.Achievement {
	var out []models.Achievement
	for _, a := range after.Achievements.Sorted() {
		if !before.Achievements.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// FormatProfile renders a profile for the player.
func FormatProfile(p models.QuizProfile) string {
	names := make([]string, 0, len(p.Achievements))
	for _, a := range p.Achievements.Sorted() {
		names = append(names, string(a))
	}
	return fmt.Sprintf("Username: %s\nTotal Quizzes Played: %d\nHighest Score: %d\nAverage Accuracy: %.2f%%\nAchievements: [%s]",
		p.Username, p.QuizzesPlayed, p.HighestScore, p.AverageAccuracy, strings.Join(names, ", "))
}

func isEndOfInput(err error) bool {
	return stderrors.Is(err, errQuit) || stderrors.Is(err, io.EOF)
}

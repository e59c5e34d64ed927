package file

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vytor/playstats/internal/models"
)

const achievementSep = ";"

// QuizCodec encodes quiz profiles as
// username, quizzes_played, highest_score, average_accuracy, achievements.
type QuizCodec struct{}

func (QuizCodec) Kind() string { return "quiz" }
func (QuizCodec) Version() int { return 1 }
func (QuizCodec) Legacy() bool { return true }

func (QuizCodec) Encode(p models.QuizProfile) []string {
	names := make([]string, 0, len(p.Achievements))
	for _, a := range p.Achievements.Sorted() {
		names = append(names, string(a))
	}
	return []string{
		p.Username,
		strconv.Itoa(p.QuizzesPlayed),
		strconv.Itoa(p.HighestScore),
		strconv.FormatFloat(p.AverageAccuracy, 'g', -1, 64),
		strings.Join(names, achievementSep),
	}
}

// Decode reads version 1 records and the legacy four-field layout, which
// carried no achievements.
func (QuizCodec) Decode(version int, fields []string) (models.QuizProfile, error) {
	want := 5
	if version == 0 {
		want = 4
	}
	if len(fields) != want {
		return models.QuizProfile{}, fmt.Errorf("expected %d fields, got %d", want, len(fields))
	}

	p := models.NewQuizProfile(strings.TrimSpace(fields[0]))
	if p.Username == "" {
		return models.QuizProfile{}, fmt.Errorf("empty username")
	}

	var err error
	if p.QuizzesPlayed, err = parseCount("quizzes_played", fields[1]); err != nil {
		return models.QuizProfile{}, err
	}
	if p.HighestScore, err = parseCount("highest_score", fields[2]); err != nil {
		return models.QuizProfile{}, err
	}
	if p.AverageAccuracy, err = parseAccuracy(fields[3]); err != nil {
		return models.QuizProfile{}, err
	}

	if version >= 1 && fields[4] != "" {
		for _, name := range strings.Split(fields[4], achievementSep) {
			if name = strings.TrimSpace(name); name != "" {
				p.Achievements[models.Achievement(name)] = struct{}{}
			}
		}
	}
	return p, nil
}

// GuessCodec encodes guess profiles as
// username, games_played, rounds_played, wins, losses, total_score, best_score.
type GuessCodec struct{}

func (GuessCodec) Kind() string { return "guess" }
func (GuessCodec) Version() int { return 1 }
func (GuessCodec) Legacy() bool { return false }

func (GuessCodec) Encode(p models.GuessProfile) []string {
	return []string{
		p.Username,
		strconv.Itoa(p.GamesPlayed),
		strconv.Itoa(p.RoundsPlayed),
		strconv.Itoa(p.Wins),
		strconv.Itoa(p.Losses),
		strconv.Itoa(p.TotalScore),
		strconv.Itoa(p.BestScore),
	}
}

func (GuessCodec) Decode(version int, fields []string) (models.GuessProfile, error) {
	if version != 1 {
		return models.GuessProfile{}, fmt.Errorf("unsupported version %d", version)
	}
	if len(fields) != 7 {
		return models.GuessProfile{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}

	p := models.NewGuessProfile(strings.TrimSpace(fields[0]))
	if p.Username == "" {
		return models.GuessProfile{}, fmt.Errorf("empty username")
	}

	counters := []struct {
		name string
		dst  *int
	}{
		{"games_played", &p.GamesPlayed},
		{"rounds_played", &p.RoundsPlayed},
		{"wins", &p.Wins},
		{"losses", &p.Losses},
		{"total_score", &p.TotalScore},
		{"best_score", &p.BestScore},
	}
	for i, c := range counters {
		v, err := parseCount(c.name, fields[i+1])
		if err != nil {
			return models.GuessProfile{}, err
		}
		*c.dst = v
	}
	return p, nil
}

func parseCount(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s: %d is negative", name, v)
	}
	return v, nil
}

func parseAccuracy(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("average_accuracy: %q is not a number", s)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("average_accuracy: %v is outside 0-100", v)
	}
	return v, nil
}

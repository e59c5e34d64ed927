package quiz

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/vytor/playstats/internal/logger"
	"github.com/vytor/playstats/internal/models"
)

// Bank is an ordered list of questions.
type Bank struct {
	questions []models.Question
}

// NewBank wraps questions in a Bank.
func NewBank(questions []models.Question) *Bank {
	return &Bank{questions: questions}
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// ForCategory returns the questions in category c, in bank order.
func (b *Bank) ForCategory(c models.Category) []models.Question {
	var out []models.Question
	for _, q := range b.questions {
		if q.Category == c {
			out = append(out, q)
		}
	}
	return out
}

// Shuffle returns a shuffled copy of questions.
func Shuffle(questions []models.Question, r *rand.Rand) []models.Question {
	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// DefaultBank returns the built-in questions.
func DefaultBank() *Bank {
	return NewBank([]models.Question{
		{Text: "What is the capital of France?", Options: []string{"Paris", "London", "Berlin", "Madrid"}, Correct: 1, Category: models.CategoryGeneral},
		{Text: "Who developed the theory of relativity?", Options: []string{"Newton", "Einstein", "Galileo", "Tesla"}, Correct: 2, Category: models.CategoryScience},
		{Text: "What is the chemical symbol for gold?", Options: []string{"Ag", "Gd", "Au", "Go"}, Correct: 3, Category: models.CategoryScience},
		{Text: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Jupiter", "Mercury", "Mars"}, Correct: 4, Category: models.CategoryScience},
		{Text: "What gas do plants absorb from the air?", Options: []string{"Carbon dioxide", "Oxygen", "Nitrogen", "Helium"}, Correct: 1, Category: models.CategoryScience},
		{Text: "How many bones are in the adult human body?", Options: []string{"186", "206", "226", "246"}, Correct: 2, Category: models.CategoryScience},
		{Text: "Who was the first president of the USA?", Options: []string{"Lincoln", "Washington", "Jefferson", "Adams"}, Correct: 2, Category: models.CategoryHistory},
		{Text: "In which year did World War II end?", Options: []string{"1939", "1942", "1945", "1950"}, Correct: 3, Category: models.CategoryHistory},
		{Text: "Which empire built the Colosseum?", Options: []string{"Roman", "Greek", "Ottoman", "Persian"}, Correct: 1, Category: models.CategoryHistory},
		{Text: "Who was the first person to walk on the Moon?", Options: []string{"Yuri Gagarin", "Buzz Aldrin", "Neil Armstrong", "John Glenn"}, Correct: 3, Category: models.CategoryHistory},
		{Text: "The Berlin Wall fell in which year?", Options: []string{"1985", "1989", "1991", "1993"}, Correct: 2, Category: models.CategoryHistory},
		{Text: "What is 5 + 7?", Options: []string{"10", "11", "12", "13"}, Correct: 3, Category: models.CategoryMath},
		{Text: "What is 9 x 8?", Options: []string{"72", "64", "81", "98"}, Correct: 1, Category: models.CategoryMath},
		{Text: "What is the square root of 144?", Options: []string{"10", "11", "12", "14"}, Correct: 3, Category: models.CategoryMath},
		{Text: "What is 15% of 200?", Options: []string{"15", "20", "25", "30"}, Correct: 4, Category: models.CategoryMath},
		{Text: "How many sides does a hexagon have?", Options: []string{"5", "6", "7", "8"}, Correct: 2, Category: models.CategoryMath},
	})
}

// ParseQuestions reads one question per line in the form
//
//	Category|Question text|option 1;option 2;...|correct option number
//
// Blank lines and lines starting with # are ignored.
func ParseQuestions(r io.Reader) ([]models.Question, error) {
	var questions []models.Question
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		q, err := parseQuestionLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		questions = append(questions, q)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no valid questions found")
	}
	return questions, nil
}

func parseQuestionLine(line string) (models.Question, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 4 {
		return models.Question{}, fmt.Errorf("expected 4 fields separated by |, got %d", len(parts))
	}

	category, ok := models.ParseCategory(parts[0])
	if !ok {
		return models.Question{}, fmt.Errorf("unknown category %q", parts[0])
	}

	text := strings.TrimSpace(parts[1])
	if text == "" {
		return models.Question{}, fmt.Errorf("question cannot be empty")
	}

	var options []string
	for _, opt := range strings.Split(parts[2], ";") {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < 2 {
		return models.Question{}, fmt.Errorf("need at least 2 options, got %d", len(options))
	}

	correct, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return models.Question{}, fmt.Errorf("invalid correct option: %v", err)
	}
	if correct < 1 || correct > len(options) {
		return models.Question{}, fmt.Errorf("correct option must be between 1 and %d, got %d", len(options), correct)
	}

	return models.Question{Text: text, Options: options, Correct: correct, Category: category}, nil
}

// LoadBank reads questions from path, or returns the built-in bank when path
// is empty or cannot be parsed.
func LoadBank(ctx context.Context, path string) *Bank {
	log := logger.FromContext(ctx).WithPrefix("quiz_bank")
	if path == "" {
		return DefaultBank()
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn("failed to open questions file %s, using built-in questions: %v", path, err)
		return DefaultBank()
	}
	defer f.Close()

	questions, err := ParseQuestions(f)
	if err != nil {
		log.Warn("failed to load questions from %s, using built-in questions: %v", path, err)
		return DefaultBank()
	}

	log.Info("loaded %d questions from %s", len(questions), path)
	return NewBank(questions)
}

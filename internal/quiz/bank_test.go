package quiz_test

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/quiz"
)

func TestDefaultBank_EveryMenuCategoryCanEarnQuizMaster(t *testing.T) {
	bank := quiz.DefaultBank()
	for _, c := range models.MenuCategories {
		questions := bank.ForCategory(c)
		assert.GreaterOrEqual(t, len(questions), 5, "category %s", c)
		for _, q := range questions {
			assert.NotEmpty(t, q.CorrectOption(), "question %q", q.Text)
		}
	}
}

func TestParseQuestions(t *testing.T) {
	input := `# comment
Science|What is H2O?|Water;Salt;Air|1

math | 2 + 2? | 3 ; 4 | 2
`
	questions, err := quiz.ParseQuestions(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, models.Question{Text: "What is H2O?", Options: []string{"Water", "Salt", "Air"}, Correct: 1, Category: models.CategoryScience}, questions[0])
	assert.Equal(t, models.CategoryMath, questions[1].Category)
	assert.Equal(t, "4", questions[1].CorrectOption())
}

func TestParseQuestions_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "\n# only comments\n", "no valid questions"},
		{"field count", "Science|Q|A;B", "expected 4 fields"},
		{"category", "Art|Q|A;B|1", "unknown category"},
		{"empty text", "Science| |A;B|1", "question cannot be empty"},
		{"one option", "Science|Q|A|1", "at least 2 options"},
		{"correct out of range", "Science|Q|A;B|3", "between 1 and 2"},
		{"correct not a number", "Science|Q|A;B|x", "invalid correct option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quiz.ParseQuestions(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadBank_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, quiz.DefaultBank().Len(), quiz.LoadBank(ctx, "").Len())
	assert.Equal(t, quiz.DefaultBank().Len(), quiz.LoadBank(ctx, filepath.Join(t.TempDir(), "missing.txt")).Len())

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("nonsense"), 0o644))
	assert.Equal(t, quiz.DefaultBank().Len(), quiz.LoadBank(ctx, bad).Len())
}

func TestLoadBank_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	require.NoError(t, os.WriteFile(path, []byte("History|Q1|A;B|1\nHistory|Q2|A;B|2\n"), 0o644))

	bank := quiz.LoadBank(context.Background(), path)

	assert.Equal(t, 2, bank.Len())
	assert.Len(t, bank.ForCategory(models.CategoryHistory), 2)
}

func TestShuffle_KeepsQuestionsAndInput(t *testing.T) {
	original := quiz.DefaultBank().ForCategory(models.CategoryMath)
	before := append([]models.Question(nil), original...)

	shuffled := quiz.Shuffle(original, rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, before, original)
	assert.ElementsMatch(t, original, shuffled)
}

package models

import "strings"

type Category string

const (
	CategoryScience Category = "Science"
	CategoryHistory Category = "History"
	CategoryMath    Category = "Math"
	CategoryGeneral Category = "General"
)

// MenuCategories are the categories offered in the quiz menu, in menu order.
var MenuCategories = []Category{CategoryScience, CategoryHistory, CategoryMath}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryScience, CategoryHistory, CategoryMath, CategoryGeneral} {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, true
		}
	}
	return "", false
}

type Question struct {
	Text     string
	Options  []string
	Correct  int // 1-based index into Options
	Category Category
}

// CorrectOption returns the text of the correct answer.
func (q Question) CorrectOption() string {
	if q.Correct < 1 || q.Correct > len(q.Options) {
		return ""
	}
	return q.Options[q.Correct-1]
}

// QuizResult is the outcome of one completed quiz.
type QuizResult struct {
	Score    int
	Accuracy float64 // percent, 0-100
}

package domain

import (
	"slices"
	"strings"
)

// Inline code spans produced by the question bank parser.
const (
	CodeSpanOpen  = "<code>"
	CodeSpanClose = "</code>"
)

// Shape classifies a question for rendering and scoring.
type Shape string

const (
	ShapeFreeText     Shape = "free_text"
	ShapeSingleSelect Shape = "single_select"
	ShapeMultiSelect  Shape = "multi_select"
)

// Question is one parsed exam question. Answers is the display order,
// Correct holds the texts of the correct options.
type Question struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
	Correct []string `json:"correct"`
}

// ExamSet is the ordered question list handed to one quiz session.
type ExamSet []Question

// Shape derives the question shape from the answer and correct counts.
func (q Question) Shape() Shape {
	switch {
	case len(q.Correct) == 1 && len(q.Answers) == 1:
		return ShapeFreeText
	case len(q.Correct) == 1:
		return ShapeSingleSelect
	default:
		return ShapeMultiSelect
	}
}

// IsCorrectOption reports whether answer is one of the correct option texts.
func (q Question) IsCorrectOption(answer string) bool {
	return slices.Contains(q.Correct, answer)
}

// DedupKey identifies a question independently of option order and of which
// options are flagged correct.
func (q Question) DedupKey() string {
	sorted := slices.Clone(q.Answers)
	slices.Sort(sorted)
	var b strings.Builder
	b.WriteString(q.Text)
	for _, a := range sorted {
		b.WriteByte(0)
		b.WriteString(a)
	}
	return b.String()
}

// Validate checks the structural invariants of a parsed question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Answers) == 0 {
		return NewInvalidInputError("at least one answer is required")
	}
	for _, c := range q.Correct {
		if !slices.Contains(q.Answers, c) {
			return NewInvalidInputError("correct answer " + c + " is not an option")
		}
	}
	return nil
}

package service

import (
	"slices"
	"strings"

	"quiz-exam/internal/domain"
)

// Score evaluates answers against questions. answers is keyed by 1-based
// question index; a missing index counts as an empty answer.
func Score(questions domain.ExamSet, answers map[int][]string) *domain.ScoredResult {
	result := &domain.ScoredResult{
		Total:   len(questions),
		Details: make([]domain.ResultDetail, 0, len(questions)),
	}

	for i, q := range questions {
		submitted := answers[i+1]
		detail := domain.ResultDetail{
			QuestionText:   q.Text,
			Shape:          q.Shape(),
			CorrectAnswers: slices.Clone(q.Correct),
		}

		switch detail.Shape {
		case domain.ShapeFreeText:
			given := firstOrEmpty(submitted)
			detail.UserAnswer = []string{given}
			detail.IsCorrect = strings.ToLower(given) == strings.ToLower(q.Correct[0])
		case domain.ShapeSingleSelect:
			given := firstOrEmpty(submitted)
			detail.UserAnswer = []string{given}
			detail.IsCorrect = q.IsCorrectOption(given)
		default:
			detail.UserAnswer = slices.Clone(submitted)
			if detail.UserAnswer == nil {
				detail.UserAnswer = []string{}
			}
			detail.IsCorrect = sameSet(submitted, q.Correct)
		}

		if detail.IsCorrect {
			result.Score++
		}
		result.Details = append(result.Details, detail)
	}
	return result
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// sameSet compares a and b ignoring order and repetition.
func sameSet(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for v := range setA {
		if _, ok := setB[v]; !ok {
			return false
		}
	}
	return true
}

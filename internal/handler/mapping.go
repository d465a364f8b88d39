package handler

import (
	"slices"

	"quiz-exam/internal/certify"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/dto"
)

func toPageResponse(course string, page *domain.Page) *dto.PageResponse {
	resp := &dto.PageResponse{
		Course:       course,
		Page:         page.Number,
		TotalPages:   page.TotalPages,
		IsLastPage:   page.Number >= page.TotalPages,
		Questions:    make([]dto.QuestionView, 0, len(page.Questions)),
		SavedAnswers: page.Saved,
	}
	for _, pq := range page.Questions {
		view := dto.QuestionView{
			Index: pq.Index,
			Text:  pq.Question.Text,
			Shape: string(pq.Shape),
		}
		// free text questions must not leak their only option
		if pq.Shape != domain.ShapeFreeText {
			view.Answers = slices.Clone(pq.Question.Answers)
		}
		resp.Questions = append(resp.Questions, view)
	}
	return resp
}

func toResultResponse(result *domain.ScoredResult) *dto.ResultResponse {
	resp := &dto.ResultResponse{
		Course:     result.Course,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: certify.FormatPercentage(result),
		FinishedAt: result.FinishedAt,
		Details:    make([]dto.ResultDetailResponse, 0, len(result.Details)),
	}
	for i, d := range result.Details {
		resp.Details = append(resp.Details, dto.ResultDetailResponse{
			Number:         i + 1,
			QuestionText:   d.QuestionText,
			Shape:          string(d.Shape),
			UserAnswer:     d.UserAnswer,
			CorrectAnswers: d.CorrectAnswers,
			IsCorrect:      d.IsCorrect,
		})
	}
	return resp
}

package domain

import "time"

// ResultDetail is the scoring outcome of one question.
type ResultDetail struct {
	QuestionText   string   `json:"question_text"`
	Shape          Shape    `json:"shape"`
	UserAnswer     []string `json:"user_answer"`
	CorrectAnswers []string `json:"correct_answers"`
	IsCorrect      bool     `json:"is_correct"`
}

// ScoredResult is produced once when a session finishes and is read-only
// afterwards.
type ScoredResult struct {
	SessionID  string         `json:"session_id"`
	Course     string         `json:"course"`
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Details    []ResultDetail `json:"details"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Percentage is score/total*100; zero for an empty result.
func (r *ScoredResult) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

// SignatureMethodRSAPSS tags signatures made with RSA-PSS over SHA-256.
const SignatureMethodRSAPSS = "RSA-PSS-SHA256"

// Certificate is the signature attached to an exported result document.
type Certificate struct {
	Signature string `json:"signature"`
	Algorithm string `json:"algorithm"`
}

package dto

import "time"

// CoursesResponse lists the available courses together with the theme text
// shown above them.
// @Description Course listing
type CoursesResponse struct {
	AppName string   `json:"app_name"`
	Theme   string   `json:"theme"`
	Header  string   `json:"header"`
	Courses []string `json:"courses"`
}

// ExamFilesResponse lists the question bank files of one course.
type ExamFilesResponse struct {
	Course string   `json:"course"`
	Files  []string `json:"files"`
}

// StartExamRequest selects the files an exam is built from. The single
// entry "all" selects every file of the course.
// @Description Request body for starting an exam
type StartExamRequest struct {
	Course string   `json:"course" form:"course"`
	Files  []string `json:"files" form:"files"`
}

// QuestionView is one question as rendered on a page. Shape tells the client
// which input to draw: free_text, single_select or multi_select.
type QuestionView struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Answers []string `json:"answers,omitempty"`
	Shape   string   `json:"shape"`
}

// PageResponse is one page of a running exam.
// @Description Quiz page
type PageResponse struct {
	Course       string           `json:"course"`
	Page         int              `json:"page"`
	TotalPages   int              `json:"total_pages"`
	IsLastPage   bool             `json:"is_last_page"`
	Questions    []QuestionView   `json:"questions"`
	SavedAnswers map[int][]string `json:"saved_answers"`
}

// SubmitPageRequest carries the answers of one page. Answer keys are
// question indices; keys that are not indices are ignored.
// @Description Request body for submitting a quiz page
type SubmitPageRequest struct {
	Page    int                 `json:"page"`
	Answers map[string][]string `json:"answers"`
	Finish  bool                `json:"finish"`
}

// SubmitPageResponse holds the next page, or the result once finished.
type SubmitPageResponse struct {
	Finished bool            `json:"finished"`
	Page     *PageResponse   `json:"page,omitempty"`
	Result   *ResultResponse `json:"result,omitempty"`
}

// ResultDetailResponse is the outcome of one question.
type ResultDetailResponse struct {
	Number         int      `json:"number"`
	QuestionText   string   `json:"question_text"`
	Shape          string   `json:"shape"`
	UserAnswer     []string `json:"user_answer"`
	CorrectAnswers []string `json:"correct_answers"`
	IsCorrect      bool     `json:"is_correct"`
}

// ResultResponse is the scored result of a finished exam.
// @Description Exam result
type ResultResponse struct {
	Course     string                 `json:"course"`
	Score      int                    `json:"score"`
	Total      int                    `json:"total"`
	Percentage string                 `json:"percentage"`
	FinishedAt time.Time              `json:"finished_at"`
	Details    []ResultDetailResponse `json:"details"`
}

// HealthResponse reports the state of the session store.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

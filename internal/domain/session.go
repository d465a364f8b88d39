package domain

import (
	"slices"
	"time"
)

// SessionState is the lifecycle position of a QuizSession.
type SessionState string

const (
	SessionCreated    SessionState = "created"
	SessionInProgress SessionState = "in_progress"
	SessionFinished   SessionState = "finished"
)

// QuizSession is the server-held state of one exam attempt. Questions never
// change after creation; Answers is keyed by 1-based question index.
type QuizSession struct {
	ID          string           `json:"id"`
	Course      string           `json:"course"`
	Questions   ExamSet          `json:"questions"`
	PageSize    int              `json:"page_size"`
	CurrentPage int              `json:"current_page"`
	State       SessionState     `json:"state"`
	Answers     map[int][]string `json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
}

// PageQuestion is a question positioned in the exam.
type PageQuestion struct {
	Index    int
	Question Question
	Shape    Shape
}

// Page is one read_page view: the page slice plus previously saved answers
// for exactly those indices.
type Page struct {
	Number     int
	TotalPages int
	Questions  []PageQuestion
	Saved      map[int][]string
}

// Snapshot is what Finish hands over to scoring.
type Snapshot struct {
	SessionID string
	Course    string
	Questions ExamSet
	Answers   map[int][]string
}

// NewQuizSession creates a session on page 1 with no answers.
func NewQuizSession(id, course string, questions ExamSet, pageSize int, now time.Time) (*QuizSession, error) {
	if len(questions) == 0 {
		return nil, NewEmptyExamError(course)
	}
	if pageSize < 1 {
		return nil, NewInvalidInputError("page size must be at least 1")
	}
	return &QuizSession{
		ID:          id,
		Course:      course,
		Questions:   questions,
		PageSize:    pageSize,
		CurrentPage: 1,
		State:       SessionCreated,
		Answers:     make(map[int][]string),
		CreatedAt:   now,
	}, nil
}

// TotalPages is ceil(len(Questions) / PageSize).
func (s *QuizSession) TotalPages() int {
	return (len(s.Questions) + s.PageSize - 1) / s.PageSize
}

// PageRange returns the inclusive 1-based index bounds [first, last] of page.
func (s *QuizSession) PageRange(page int) (first, last int, err error) {
	total := s.TotalPages()
	if page < 1 || page > total {
		return 0, 0, NewInvalidPageError(page, total)
	}
	offset := (page - 1) * s.PageSize
	return offset + 1, min(offset+s.PageSize, len(s.Questions)), nil
}

// ReadPage returns the questions of page together with their stored answers.
func (s *QuizSession) ReadPage(page int) (*Page, error) {
	if s.State == SessionFinished {
		return nil, NewInvalidSessionStateError(s.State, "read")
	}
	first, last, err := s.PageRange(page)
	if err != nil {
		return nil, err
	}

	p := &Page{
		Number:     page,
		TotalPages: s.TotalPages(),
		Questions:  make([]PageQuestion, 0, last-first+1),
		Saved:      make(map[int][]string),
	}
	for idx := first; idx <= last; idx++ {
		q := s.Questions[idx-1]
		p.Questions = append(p.Questions, PageQuestion{Index: idx, Question: q, Shape: q.Shape()})
		if saved, ok := s.Answers[idx]; ok {
			p.Saved[idx] = slices.Clone(saved)
		}
	}
	return p, nil
}

// SubmitPage merges submitted answers for page into the session. Submitted
// indices overwrite; untouched indices without a prior value become an
// explicit empty answer; indices outside the page are ignored. The returned
// map holds exactly the entries that were written.
func (s *QuizSession) SubmitPage(page int, submitted map[int][]string) (map[int][]string, error) {
	if s.State == SessionFinished {
		return nil, NewInvalidSessionStateError(s.State, "submit")
	}
	first, last, err := s.PageRange(page)
	if err != nil {
		return nil, err
	}
	if s.Answers == nil {
		s.Answers = make(map[int][]string)
	}

	written := make(map[int][]string)
	for idx := first; idx <= last; idx++ {
		if values, ok := submitted[idx]; ok {
			if values == nil {
				values = []string{}
			}
			s.Answers[idx] = slices.Clone(values)
			written[idx] = s.Answers[idx]
			continue
		}
		if _, ok := s.Answers[idx]; !ok {
			s.Answers[idx] = []string{}
			written[idx] = s.Answers[idx]
		}
	}
	s.State = SessionInProgress
	return written, nil
}

// Advance moves to the next page. It fails on the last page.
func (s *QuizSession) Advance() error {
	if s.State == SessionFinished {
		return NewInvalidSessionStateError(s.State, "advance")
	}
	if s.CurrentPage >= s.TotalPages() {
		return NewInvalidPageError(s.CurrentPage+1, s.TotalPages())
	}
	s.CurrentPage++
	s.State = SessionInProgress
	return nil
}

// IsLastPage reports whether the session is on its final page.
func (s *QuizSession) IsLastPage() bool {
	return s.CurrentPage >= s.TotalPages()
}

// Finish snapshots questions and answers, then discards the working state.
func (s *QuizSession) Finish() (*Snapshot, error) {
	if s.State == SessionFinished {
		return nil, NewInvalidSessionStateError(s.State, "finish")
	}
	snap := &Snapshot{
		SessionID: s.ID,
		Course:    s.Course,
		Questions: s.Questions,
		Answers:   s.Answers,
	}
	if snap.Answers == nil {
		snap.Answers = make(map[int][]string)
	}
	s.State = SessionFinished
	s.Answers = nil
	s.CurrentPage = 0
	return snap, nil
}

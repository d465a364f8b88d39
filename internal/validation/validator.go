package validation

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"quiz-exam/internal/domain"
	"quiz-exam/internal/dto"
)

const (
	maxNameLength  = 100
	maxFilesPerRun = 100
	maxAnswerValue = 2000
	allFiles       = "all"
)

var (
	validName = regexp.MustCompile(`^[\p{L}\p{N} ._()-]+$`)
	// answer field names: "3", "question3" or "pregunta3"
	answerKeyPattern = regexp.MustCompile(`^(?:question|pregunta)?([0-9]{1,6})$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCourse validates a course path parameter.
func (v *Validator) ValidateCourse(course string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(course) == "" {
		errors = append(errors, domain.NewMissingFieldError("course"))
	} else if !isValidName(course) {
		errors = append(errors, domain.NewInvalidFormatError("course", course))
	}
	return errors
}

// ValidateStartExam validates the exam selection.
func (v *Validator) ValidateStartExam(req *dto.StartExamRequest) domain.ValidationErrors {
	errors := v.ValidateCourse(req.Course)

	switch {
	case len(req.Files) == 0:
		errors = append(errors, domain.NewMissingFieldError("files"))
	case len(req.Files) > maxFilesPerRun:
		errors = append(errors, domain.NewOutOfRangeError("files", len(req.Files), 1, maxFilesPerRun))
	default:
		for _, f := range req.Files {
			if f == allFiles {
				continue
			}
			if !isValidName(f) || !strings.HasSuffix(f, ".md") {
				errors = append(errors, domain.NewInvalidFormatError("files", f))
			}
		}
	}
	return errors
}

// ValidatePage parses the optional page query value. An empty value yields 0,
// meaning the current page.
func (v *Validator) ValidatePage(raw string) (int, domain.ValidationErrors) {
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("page", raw)}
	}
	if page < 1 {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("page", page, 1, math.MaxInt32)}
	}
	return page, nil
}

// ParseAnswerKey extracts the 1-based question index from a submitted field name.
func ParseAnswerKey(key string) (int, bool) {
	m := answerKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil || idx < 1 {
		return 0, false
	}
	return idx, true
}

// ParseAnswers converts submitted fields into index-keyed answers. Fields that
// are not answer keys are ignored; over-long values are cut. Aliases of one
// index ("3", "pregunta3", "question3") are merged in sorted key order.
func ParseAnswers(raw map[string][]string) map[int][]string {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	answers := make(map[int][]string, len(raw))
	for _, key := range keys {
		idx, ok := ParseAnswerKey(key)
		if !ok {
			continue
		}
		vals := answers[idx]
		for _, val := range raw[key] {
			vals = append(vals, truncateValue(val))
		}
		answers[idx] = vals
	}
	return answers
}

// truncateValue cuts v to at most maxAnswerValue bytes on a rune boundary.
func truncateValue(v string) string {
	if len(v) <= maxAnswerValue {
		return v
	}
	cut := maxAnswerValue
	for cut > 0 && !utf8.RuneStart(v[cut]) {
		cut--
	}
	return v[:cut]
}

// isValidName rejects path separators and dot-only names.
func isValidName(s string) bool {
	if len(s) == 0 || len(s) > maxNameLength || strings.Trim(s, ".") == "" {
		return false
	}
	return validName.MatchString(s)
}

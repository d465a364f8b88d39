// Package bank parses line-oriented question bank files.
//
// A question starts with a "####" line holding its text. Following lines
// starting with "+" are options; an option wrapped in "**" is correct.
// "[[x]]" spans are unwrapped and backtick spans become inline code spans.
// Every other line is ignored.
package bank

import (
	"bufio"
	"bytes"
	"io"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode/utf8"

	"quiz-exam/internal/domain"
)

const (
	questionMarker = "####"
	answerMarker   = "+"
	correctMarker  = "**"

	maxLineLength = 1 << 20
)

var (
	wikiLinkPattern = regexp.MustCompile(`\[\[(.*?)\]\]`)
	codeSpanPattern = regexp.MustCompile("`(.*?)`")
	codeSpanReplace = domain.CodeSpanOpen + "${1}" + domain.CodeSpanClose
)

// Stats counts what a parse kept and discarded.
type Stats struct {
	Questions int
	// Dropped counts question blocks that had text but no options.
	Dropped int
	// Orphaned counts options that appeared before any question line.
	Orphaned int
}

type accumulator struct {
	text    string
	answers []string
	correct []bool
}

// Parse turns raw bank lines into questions. Option order inside each
// question is permuted with rng; the set of correct options is unchanged.
func Parse(lines []string, rng *rand.Rand) (domain.ExamSet, Stats) {
	var (
		out   domain.ExamSet
		stats Stats
		acc   accumulator
	)

	closeAcc := func() {
		switch {
		case acc.text == "":
			stats.Orphaned += len(acc.answers)
		case len(acc.answers) == 0:
			stats.Dropped++
		default:
			out = append(out, acc.build(rng))
		}
		acc = accumulator{}
	}

	for _, raw := range lines {
		line := normalizeLine(raw)
		switch {
		case strings.HasPrefix(line, questionMarker):
			closeAcc()
			acc.text = strings.TrimSpace(line[len(questionMarker):]) + " "
		case strings.HasPrefix(line, answerMarker):
			answer := strings.TrimSpace(line[len(answerMarker):])
			isCorrect := strings.Contains(answer, correctMarker)
			answer = strings.TrimSpace(strings.ReplaceAll(answer, correctMarker, ""))
			acc.answers = append(acc.answers, answer)
			acc.correct = append(acc.correct, isCorrect)
		}
	}
	closeAcc()

	stats.Questions = len(out)
	return out, stats
}

// ParseReader reads a whole bank file. Unreadable or non UTF-8 input yields a
// PARSE_ERROR DomainError.
func ParseReader(source string, r io.Reader, rng *rand.Rand) (domain.ExamSet, Stats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Stats{}, domain.NewParseError(source, err)
	}
	if !utf8.Valid(data) {
		return nil, Stats{}, domain.NewParseError(source, errInvalidUTF8)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, Stats{}, domain.NewParseError(source, err)
	}

	questions, stats := Parse(lines, rng)
	return questions, stats, nil
}

func normalizeLine(raw string) string {
	line := strings.TrimSpace(raw)
	line = wikiLinkPattern.ReplaceAllString(line, "${1}")
	return codeSpanPattern.ReplaceAllString(line, codeSpanReplace)
}

// build permutes (answer, correct) pairs together so labels follow their text.
func (a accumulator) build(rng *rand.Rand) domain.Question {
	type pair struct {
		answer  string
		correct bool
	}
	pairs := make([]pair, len(a.answers))
	for i := range a.answers {
		pairs[i] = pair{a.answers[i], a.correct[i]}
	}
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

	q := domain.Question{Text: a.text, Answers: make([]string, 0, len(pairs))}
	for _, p := range pairs {
		q.Answers = append(q.Answers, p.answer)
		if p.correct {
			q.Correct = append(q.Correct, p.answer)
		}
	}
	return q
}

type parseError string

func (e parseError) Error() string { return string(e) }

const errInvalidUTF8 = parseError("bank: input is not valid UTF-8")

// Package certify renders scored results into PDF documents and signs them
// with an RSA key when one is configured.
package certify

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"quiz-exam/internal/domain"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// fontFamily is DejaVu Sans, embedded so that question banks in any script
// keep their text in the document.
const fontFamily = "DejaVu"

var (
	//go:embed fonts/DejaVuSans.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	fontBold []byte
)

const (
	lineHeight   = 6.0
	headingSize  = 18
	bodySize     = 11
	questionSize = 12
	maxBMPRune   = 0xFFFF
)

var codeSpanStripper = strings.NewReplacer(domain.CodeSpanOpen, "'", domain.CodeSpanClose, "'")

// Renderer turns a ScoredResult into a PDF document. Correct answers are
// always listed; the user's answer is only shown for incorrect questions.
type Renderer struct {
	appName  string
	now      func() time.Time
	newID    func() string
	compress bool
}

// NewRenderer creates a renderer titling documents with appName.
func NewRenderer(appName string) *Renderer {
	return &Renderer{
		appName:  appName,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		compress: true,
	}
}

// Render produces the unsigned document bytes.
func (r *Renderer) Render(result *domain.ScoredResult) ([]byte, error) {
	if result == nil {
		return nil, domain.NewRenderError(fmt.Errorf("nil result"))
	}

	issuedAt := r.now().UTC()
	docID := r.newID()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(issuedAt)
	pdf.SetModificationDate(issuedAt)
	pdf.SetTitle(r.appName+" result", true)
	pdf.SetSubject(result.Course, true)
	pdf.SetCreator(r.appName, true)
	pdf.SetKeywords("document-id "+docID, true)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	if err := pdf.Error(); err != nil {
		return nil, domain.NewRenderError(err)
	}
	text := pdfText

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", headingSize)
	pdf.MultiCell(0, 10, text(r.appName), "", "L", false)

	pdf.SetFont(fontFamily, "", bodySize)
	pdf.MultiCell(0, lineHeight, text("Course: "+result.Course), "", "L", false)
	pdf.MultiCell(0, lineHeight, "Finished: "+result.FinishedAt.UTC().Format(time.RFC3339), "", "L", false)
	pdf.MultiCell(0, lineHeight, "Issued: "+issuedAt.Format(time.RFC3339), "", "L", false)
	pdf.MultiCell(0, lineHeight, "Document: "+docID, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", questionSize+2)
	pdf.MultiCell(0, 8, FormatScore(result), "", "L", false)
	pdf.Ln(4)

	for i, d := range result.Details {
		pdf.SetFont(fontFamily, "B", questionSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, lineHeight+1, text(fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(d.QuestionText))), "", "L", false)

		pdf.SetFont(fontFamily, "", bodySize)
		pdf.MultiCell(0, lineHeight, text("Correct answer: "+strings.Join(d.CorrectAnswers, ", ")), "", "L", false)
		if !d.IsCorrect {
			pdf.MultiCell(0, lineHeight, text("Your answer: "+strings.Join(d.UserAnswer, ", ")), "", "L", false)
			pdf.SetTextColor(180, 0, 0)
			pdf.MultiCell(0, lineHeight, "Incorrect", "", "L", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, domain.NewRenderError(err)
	}
	return buf.Bytes(), nil
}

// pdfText prepares s for the embedded font, which only covers the Basic
// Multilingual Plane. Other runes become U+FFFD.
func pdfText(s string) string {
	return strings.Map(func(r rune) rune {
		if r > maxBMPRune {
			return utf8.RuneError
		}
		return r
	}, codeSpanStripper.Replace(s))
}

// FormatScore renders "score of total (pp.pp%)".
func FormatScore(result *domain.ScoredResult) string {
	return fmt.Sprintf("%d of %d (%s)", result.Score, result.Total, FormatPercentage(result))
}

// FormatPercentage renders the percentage with two decimals.
func FormatPercentage(result *domain.ScoredResult) string {
	return fmt.Sprintf("%.2f%%", result.Percentage())
}

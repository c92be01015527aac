// Package report turns a completed quiz session into the artifacts handed to
// users and staff: a plain-text transcript and a downloadable PDF card.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/PoluyanbIch/ZooTotemBot/internal/service"
)

type Report struct {
	UserID      int64
	UserName    string
	SessionID   string
	Result      service.Result
	Responses   []string
	CompletedAt time.Time
}

// FromSession builds a report for a completed session. It returns
// service.ErrNotCompleted otherwise.
func FromSession(s *service.QuizSession, userName string) (Report, error) {
	result, err := s.Result()
	if err != nil {
		return Report{}, err
	}
	return Report{
		UserID:      s.UserID,
		UserName:    userName,
		SessionID:   s.ID,
		Result:      result,
		Responses:   s.Responses(),
		CompletedAt: s.CompletedAt,
	}, nil
}

// Transcript renders the report as plain text.
func Transcript(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User: %s (ID %d)\n", r.UserName, r.UserID)
	fmt.Fprintf(&b, "Session: %s\n", r.SessionID)
	if !r.CompletedAt.IsZero() {
		fmt.Fprintf(&b, "Completed: %s\n", r.CompletedAt.Format("02.01.2006 15:04"))
	}
	fmt.Fprintf(&b, "Totem animal: %s (%s)\n", r.Result.Category.DisplayName(), r.Result.Category.ID)
	fmt.Fprintf(&b, "Result: %s\n", r.Result.Vector)

	if len(r.Responses) > 0 {
		b.WriteString("\nAnswers:\n")
		for i, response := range r.Responses {
			fmt.Fprintf(&b, "%d. %s\n", i+1, response)
		}
	}
	return b.String()
}

// RenderCard renders the result card as a single-page A4 PDF.
func RenderCard(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Totem animal: "+r.Result.Category.DisplayName(), true)
	if !r.CompletedAt.IsZero() {
		pdf.SetCreationDate(r.CompletedAt)
	}
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, tr("Your totem animal: "+r.Result.Category.DisplayName()))
	pdf.Ln(16)

	if r.Result.Category.Description != "" {
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 6, tr(r.Result.Category.Description), "", "L", false)
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Profile")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for i, x := range r.Result.Vector {
		pdf.CellFormat(40, 7, service.Axis(i).String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f", x), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.0f", r.Result.Category.Vector[i]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	if len(r.Responses) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Your answers")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for i, response := range r.Responses {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%d. %s", i+1, response)), "", "L", false)
			pdf.Ln(2)
		}
	}

	if r.Result.Category.URL != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 5, tr("Become a guardian: "+r.Result.Category.URL), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render result card: %w", err)
	}
	return buf.Bytes(), nil
}

// CardFileName is the download name for a report's PDF card.
func CardFileName(r Report) string {
	return fmt.Sprintf("totem_%s.pdf", r.Result.Category.ID)
}

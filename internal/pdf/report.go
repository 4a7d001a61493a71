// Package pdf renders the maintenance work report handed to building
// management.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"maintdesk/internal/models"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	TaskReport(tasks []models.Task, generatedAt time.Time) ([]byte, error)
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// TaskReport renders every task as one line item, grouped after a summary
// header, and returns the PDF bytes.
func (g *ReportGenerator) TaskReport(tasks []models.Task, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Maintenance Work Report", false)
	pdf.SetAuthor("Maintdesk", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "MAINTENANCE WORK REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Generated "+generatedAt.Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	byStatus := map[models.TaskStatus]int{}
	var hours, cost float64
	for _, t := range tasks {
		byStatus[t.Status]++
		if t.HoursSpent != nil {
			hours += *t.HoursSpent
		}
		if t.CostAmount != nil {
			cost += *t.CostAmount
		}
	}

	g.sectionTitle(pdf, "Summary")
	g.kvLine(pdf, "Total tasks", fmt.Sprintf("%d", len(tasks)))
	g.kvLine(pdf, "Open", fmt.Sprintf("%d", byStatus[models.StatusOpen]))
	g.kvLine(pdf, "In progress", fmt.Sprintf("%d", byStatus[models.StatusInProgress]))
	g.kvLine(pdf, "Completed", fmt.Sprintf("%d", byStatus[models.StatusCompleted]))
	g.kvLine(pdf, "Blocked", fmt.Sprintf("%d", byStatus[models.StatusBlocked]))
	g.kvLine(pdf, "Hours spent", fmt.Sprintf("%.1f", hours))
	g.kvLine(pdf, "Total cost", fmt.Sprintf("%.2f", cost))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Tasks")
	pdf.SetFont("Helvetica", "", 10)
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = *t.DueDate
		}
		line := fmt.Sprintf("#%d  [%s/%s]  %s  (due %s)", t.ID, t.Status, t.Priority, t.Title, due)
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(60, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetXY()
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(left, y, pageWidth-right, y)
	pdf.SetXY(x, y+2)
}

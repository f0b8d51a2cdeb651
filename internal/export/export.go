// Package export writes snapshots of the todo collection as JSON, CSV or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/todoboard/internal/todo"
	"github.com/nibzard/todoboard/internal/utils"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "csv", "pdf"}

// Record is one exported todo with its progress as displayed at export time.
type Record struct {
	ID              todo.ID    `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Completed       bool       `json:"completed"`
	StartTime       *todo.Time `json:"start_time"`
	EndTime         *todo.Time `json:"end_time"`
	Progress        *float64   `json:"progress"`
	DisplayProgress float64    `json:"display_progress"`
	CreatedAt       *todo.Time `json:"created_at,omitempty"`
}

// Records converts tasks, computing display progress at now. A task with no
// stored progress exports a null progress.
func Records(tasks []todo.Task, now time.Time) []Record {
	records := make([]Record, len(tasks))
	for i, t := range tasks {
		r := Record{
			ID:              t.ID,
			Title:           t.Title,
			Description:     t.Description,
			Completed:       t.Completed,
			StartTime:       t.StartTime,
			EndTime:         t.EndTime,
			DisplayProgress: todo.ComputeProgress(t, now),
			CreatedAt:       t.CreatedAt,
		}
		if todo.InRange(t.Progress) {
			p := t.Progress
			r.Progress = &p
		}
		records[i] = r
	}
	return records
}

// Write renders tasks to w in format.
func Write(w io.Writer, format string, tasks []todo.Task, now time.Time) error {
	records := Records(tasks, now)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return writeJSON(w, records)
	case "csv":
		return writeCSV(w, records)
	case "pdf":
		return writePDF(w, records, now)
	default:
		return fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func writeJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

var csvHeader = []string{"id", "title", "description", "completed", "start_time", "end_time", "progress", "display_progress"}

func writeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		progress := ""
		if r.Progress != nil {
			progress = strconv.FormatFloat(*r.Progress, 'f', -1, 64)
		}
		row := []string{
			r.ID.String(),
			r.Title,
			r.Description,
			strconv.FormatBool(r.Completed),
			csvTime(r.StartTime),
			csvTime(r.EndTime),
			progress,
			fmt.Sprintf("%.1f", r.DisplayProgress),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvTime(t *todo.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(todo.InputLayout)
}

const (
	pdfBarWidth  = 60.0
	pdfBarHeight = 3.0
)

func writePDF(w io.Writer, records []Record, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Todo Report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Todo Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(40, 6, fmt.Sprintf("%d todos, generated %s UTC", len(records), now.UTC().Format("2006-01-02 15:04")))
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)

	left, _, _, _ := pdf.GetMargins()
	for _, r := range records {
		status := " "
		if r.Completed {
			status = "x"
		}
		pdf.SetFont("Arial", "B", 11)
		line := fmt.Sprintf("[%s] #%s %s", status, r.ID, utils.StripControl(r.Title))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)

		pdf.SetFont("Arial", "", 9)
		if r.Description != "" {
			pdf.MultiCell(0, 5, tr(utils.StripControl(r.Description)), "0", "L", false)
		}
		window := fmt.Sprintf("Start: %s  End: %s", pdfTime(r.StartTime), pdfTime(r.EndTime))
		pdf.MultiCell(0, 5, window, "0", "L", false)

		y := pdf.GetY() + 1
		pdf.SetDrawColor(160, 160, 160)
		pdf.Rect(left, y, pdfBarWidth, pdfBarHeight, "D")
		if fill := pdfBarWidth * todo.Clamp(r.DisplayProgress) / todo.MaxProgress; fill > 0 {
			pdf.SetFillColor(60, 160, 90)
			pdf.Rect(left, y, fill, pdfBarHeight, "F")
		}
		pdf.SetXY(left+pdfBarWidth+3, y-1)
		pdf.Cell(20, 5, fmt.Sprintf("%.1f%%", r.DisplayProgress))
		pdf.Ln(9)
	}

	return pdf.Output(w)
}

func pdfTime(t *todo.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format("2006-01-02 15:04") + " UTC"
}

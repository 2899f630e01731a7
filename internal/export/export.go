// Package export renders a task collection as JSON, CSV, or a PDF report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskcli/internal/backend/jsonfile"
	"taskcli/internal/output"
	"taskcli/internal/task"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Formats lists every supported format name.
var Formats = []string{FormatJSON, FormatCSV, FormatPDF}

// ParseFormat normalizes a format name.
func ParseFormat(name string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(name))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %s (must be one of %s)", name, strings.Join(Formats, ", "))
}

// IsBinary reports whether the format should not be written to a terminal.
func IsBinary(format string) bool {
	return format == FormatPDF
}

// Write renders tasks to w in the given format.
func Write(w io.Writer, format string, tasks []task.Task) error {
	switch format {
	case FormatJSON:
		data, err := jsonfile.Encode(tasks)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

// CSVHeader is the first row of CSV output.
var CSVHeader = []string{"id", "description", "status", "created_at", "updated_at"}

func writeCSV(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{
			strconv.Itoa(t.ID),
			t.Description,
			t.Status.String(),
			output.FormatTime(t.CreatedAt),
			output.FormatTime(t.UpdatedAt),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	counts := task.Count(tasks)
	pdf.SetFont("Arial", "", 10)
	summary := fmt.Sprintf("%d tasks: %d todo, %d in progress, %d done",
		len(tasks), counts[task.StatusTodo], counts[task.StatusInProgress], counts[task.StatusDone])
	pdf.Cell(0, 6, summary)
	pdf.Ln(10)

	if len(tasks) == 0 {
		pdf.Cell(0, 6, output.NoTasks)
	}
	for _, t := range tasks {
		line := fmt.Sprintf("#%d [%s] %s (created %s, updated %s)",
			t.ID, t.Status, t.Description,
			output.FormatTime(t.CreatedAt), output.FormatTime(t.UpdatedAt))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	return pdf.Output(w)
}

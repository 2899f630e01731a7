// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskcli/internal/task"
)

// NoTasks is printed by list when nothing matches.
const NoTasks = "No tasks found"

// FormatTask writes one task line for the list command.
// Format: "ID: {id} | Status: {status} | Description: {desc} | Created: {ts} | Updated: {ts}"
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "ID: %d | Status: %s | Description: %s | Created: %s | Updated: %s\n",
		t.ID, t.Status, normalizeDescription(t.Description),
		FormatTime(t.CreatedAt), FormatTime(t.UpdatedAt))
}

// FormatTime renders a timestamp in local ISO-8601 form.
func FormatTime(ts time.Time) string {
	return ts.Local().Format(task.TimeLayout)
}

// normalizeDescription keeps each task on one line.
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r\n", " ")
	desc = strings.ReplaceAll(desc, "\r", " ")
	return strings.ReplaceAll(desc, "\n", " ")
}

// StatusLabel is the lower-case wording used in confirmation messages.
func StatusLabel(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "todo"
	case task.StatusInProgress:
		return "in-progress"
	case task.StatusDone:
		return "done"
	}
	return strings.ToLower(s.String())
}

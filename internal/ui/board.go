// Package ui provides the interactive task board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"taskcli/internal/output"
	"taskcli/internal/task"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyles = map[task.Status]lipgloss.Style{
		task.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		task.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Board is the bubbletea model for the task board.
// It edits its own copy of the collection; callers read the result
// back through Tasks and Changed once the program exits.
type Board struct {
	tasks    []task.Task
	cursor   int
	filter   *task.Status
	changed  bool
	showHelp bool
	now      func() time.Time
}

// NewBoard returns a board over tasks. now stamps every edit.
func NewBoard(tasks []task.Task, now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{tasks: tasks, now: now}
}

// Tasks returns the edited collection.
func (b *Board) Tasks() []task.Task {
	return b.tasks
}

// Changed reports whether any edit was made.
func (b *Board) Changed() bool {
	return b.changed
}

// Run shows the board until the user quits or ctx is cancelled.
func Run(ctx context.Context, b *Board, in io.Reader, out io.Writer) (*Board, error) {
	program := tea.NewProgram(b,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := program.Run()
	if err != nil {
		return b, err
	}
	if m, ok := final.(*Board); ok {
		return m, nil
	}
	return b, nil
}

func (b *Board) Init() tea.Cmd {
	return nil
}

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.visible())-1 {
			b.cursor++
		}
	case " ":
		b.cycleSelected()
	case "d":
		b.deleteSelected()
	case "1":
		b.setFilter(task.StatusTodo)
	case "2":
		b.setFilter(task.StatusInProgress)
	case "3":
		b.setFilter(task.StatusDone)
	case "0":
		b.filter = nil
		b.clampCursor()
	case "?", "h":
		b.showHelp = !b.showHelp
	}
	return b, nil
}

func (b *Board) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Task Board") + "\n")
	sb.WriteString(b.summary() + "\n\n")

	if b.showHelp {
		sb.WriteString(helpText)
		return sb.String()
	}

	if b.filter != nil {
		sb.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", *b.filter))
	}

	visible := b.visible()
	if len(visible) == 0 {
		sb.WriteString(output.NoTasks + "\n")
	}
	for i, t := range visible {
		marker := "  "
		desc := t.Description
		if i == b.cursor {
			marker = cursorStyle.Render("> ")
			desc = cursorStyle.Render(desc)
		}
		status := statusStyles[t.Status].Render(fmt.Sprintf("%-11s", t.Status))
		sb.WriteString(fmt.Sprintf("%s%3d  %s  %s\n", marker, t.ID, status, desc))
	}

	sb.WriteString("\n" + dimStyle.Render("j/k move  space cycle  d delete  1/2/3 filter  0 all  ? help  q quit") + "\n")
	return sb.String()
}

const helpText = `Keys:
  up, k      move up
  down, j    move down
  space      cycle status TODO -> IN_PROGRESS -> DONE
  d          delete the selected task
  1, 2, 3    show only TODO, IN_PROGRESS, DONE
  0          show all tasks
  ?, h       toggle this help
  q          quit and save
`

func (b *Board) summary() string {
	counts := task.Count(b.tasks)
	return fmt.Sprintf("%d todo  %d in progress  %d done",
		counts[task.StatusTodo], counts[task.StatusInProgress], counts[task.StatusDone])
}

func (b *Board) visible() []task.Task {
	return task.Filter(b.tasks, b.filter)
}

func (b *Board) selected() (task.Task, bool) {
	visible := b.visible()
	if b.cursor < 0 || b.cursor >= len(visible) {
		return task.Task{}, false
	}
	return visible[b.cursor], true
}

func (b *Board) cycleSelected() {
	t, ok := b.selected()
	if !ok {
		return
	}
	b.tasks, _ = task.SetStatus(b.tasks, t.ID, t.Status.Next(), b.now())
	b.changed = true
	b.clampCursor()
}

func (b *Board) deleteSelected() {
	t, ok := b.selected()
	if !ok {
		return
	}
	b.tasks, _ = task.Delete(b.tasks, t.ID)
	b.changed = true
	b.clampCursor()
}

func (b *Board) setFilter(s task.Status) {
	b.filter = &s
	b.clampCursor()
}

func (b *Board) clampCursor() {
	n := len(b.visible())
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskcli/internal/task"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

func boardTasks() []task.Task {
	created := fixedNow.Add(-time.Hour)
	return []task.Task{
		{ID: 1, Description: "write spec", Status: task.StatusTodo, CreatedAt: created, UpdatedAt: created},
		{ID: 2, Description: "review", Status: task.StatusInProgress, CreatedAt: created, UpdatedAt: created},
		{ID: 4, Description: "ship", Status: task.StatusDone, CreatedAt: created, UpdatedAt: created},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(b *Board, keys ...string) {
	for _, k := range keys {
		b.Update(key(k))
	}
}

func TestBoard_CycleStatus(t *testing.T) {
	b := NewBoard(boardTasks(), func() time.Time { return fixedNow })

	press(b, " ")

	got := b.Tasks()[0]
	if got.Status != task.StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", got.Status)
	}
	if !got.UpdatedAt.Equal(fixedNow) {
		t.Errorf("expected updated_at %v, got %v", fixedNow, got.UpdatedAt)
	}
	if !b.Changed() {
		t.Error("expected board to report a change")
	}
}

func TestBoard_CycleWrapsDoneToTodo(t *testing.T) {
	b := NewBoard(boardTasks(), nil)

	press(b, "j", "j", " ")

	if got := b.Tasks()[2].Status; got != task.StatusTodo {
		t.Errorf("expected TODO, got %s", got)
	}
}

func TestBoard_Delete(t *testing.T) {
	b := NewBoard(boardTasks(), nil)

	press(b, "down", "d")

	tasks := b.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != 1 || tasks[1].ID != 4 {
		t.Errorf("expected ids [1 4], got [%d %d]", tasks[0].ID, tasks[1].ID)
	}
}

func TestBoard_DeleteLastMovesCursorUp(t *testing.T) {
	b := NewBoard(boardTasks(), nil)

	press(b, "j", "j", "d", " ")

	// Cursor is now on task 2, which cycles to DONE.
	if got := b.Tasks()[1].Status; got != task.StatusDone {
		t.Errorf("expected DONE, got %s", got)
	}
}

func TestBoard_FilterLimitsActions(t *testing.T) {
	b := NewBoard(boardTasks(), nil)

	press(b, "3", "d")

	tasks := b.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	for _, tk := range tasks {
		if tk.ID == 4 {
			t.Error("expected task 4 to be deleted")
		}
	}
}

func TestBoard_EmptyIsNoop(t *testing.T) {
	b := NewBoard(nil, nil)

	press(b, " ", "d", "j", "k")

	if b.Changed() {
		t.Error("expected no change on an empty board")
	}
	if !strings.Contains(b.View(), "No tasks found") {
		t.Errorf("expected empty message, got:\n%s", b.View())
	}
}

func TestBoard_UnchangedWithoutEdits(t *testing.T) {
	b := NewBoard(boardTasks(), nil)

	press(b, "j", "k", "1", "0", "?")

	if b.Changed() {
		t.Error("expected no change from navigation")
	}
}

func TestBoard_View(t *testing.T) {
	b := NewBoard(boardTasks(), nil)

	view := b.View()
	for _, want := range []string{"Task Board", "1 todo  1 in progress  1 done", "write spec", "review", "ship"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}

	press(b, "2")
	view = b.View()
	if !strings.Contains(view, "Filter: IN_PROGRESS") {
		t.Errorf("expected filter line, got:\n%s", view)
	}
	if strings.Contains(view, "ship") {
		t.Errorf("expected DONE task to be hidden, got:\n%s", view)
	}
}

func TestBoard_Quit(t *testing.T) {
	b := NewBoard(boardTasks(), nil)

	_, cmd := b.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("expected buffer not to be a terminal")
	}
}

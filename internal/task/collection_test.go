package task

import (
	"encoding/json"
	"testing"
	"time"
)

var (
	t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
)

func sampleTasks() []Task {
	return []Task{
		{ID: 1, Description: "write spec", Status: StatusTodo, CreatedAt: t0, UpdatedAt: t0},
		{ID: 2, Description: "review spec", Status: StatusInProgress, CreatedAt: t0, UpdatedAt: t0},
		{ID: 4, Description: "ship it", Status: StatusDone, CreatedAt: t0, UpdatedAt: t0},
	}
}

func TestNextID_Empty(t *testing.T) {
	if got := NextID(nil); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestNextID_UsesMax(t *testing.T) {
	if got := NextID(sampleTasks()); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestAdd_IDsIncreaseAfterDeletes(t *testing.T) {
	var c []Task
	var added Task
	var last int
	for i := 0; i < 3; i++ {
		c, added = Add(c, "x", t0)
		if added.ID <= last {
			t.Fatalf("id %d not greater than %d", added.ID, last)
		}
		last = added.ID
	}
	c, _ = Delete(c, 3)
	c, _ = Delete(c, 1)
	_, added = Add(c, "y", t1)
	if added.ID != 3 {
		t.Errorf("expected id 3 (max surviving 2 + 1), got %d", added.ID)
	}

	c, _ = Add(nil, "a", t0)
	c, _ = Add(c, "b", t0)
	c, _ = Delete(c, 1)
	_, added = Add(c, "c", t0)
	if added.ID != 3 {
		t.Errorf("expected id 3 after deleting 1, got %d", added.ID)
	}
}

func TestAdd_NewTaskFields(t *testing.T) {
	c, added := Add(nil, "write spec", t0)
	if len(c) != 1 {
		t.Fatalf("expected 1 task, got %d", len(c))
	}
	if added.ID != 1 || added.Status != StatusTodo {
		t.Errorf("unexpected task %+v", added)
	}
	if !added.CreatedAt.Equal(t0) || !added.UpdatedAt.Equal(t0) {
		t.Errorf("expected timestamps %v, got %v / %v", t0, added.CreatedAt, added.UpdatedAt)
	}
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	base := make([]Task, 0, 10)
	base = append(base, sampleTasks()...)
	out, _ := Add(base, "new", t1)
	out[0].Description = "changed"
	if base[0].Description != "write spec" {
		t.Error("Add shared backing array with input")
	}
}

func TestUpdate_Found(t *testing.T) {
	in := sampleTasks()
	out, found := Update(in, 2, "review again", t1)
	if !found {
		t.Fatal("expected found")
	}
	if out[1].Description != "review again" || !out[1].UpdatedAt.Equal(t1) {
		t.Errorf("unexpected task %+v", out[1])
	}
	if !out[1].CreatedAt.Equal(t0) {
		t.Error("created_at must not change")
	}
	if in[1].Description != "review spec" {
		t.Error("input collection was mutated")
	}
}

func TestUpdate_NotFoundLeavesCollection(t *testing.T) {
	in := sampleTasks()
	out, found := Update(in, 3, "nope", t1)
	if found {
		t.Fatal("expected not found")
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d tasks, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("task %d changed: %+v", i, out[i])
		}
	}
}

func TestSetStatus(t *testing.T) {
	out, found := SetStatus(sampleTasks(), 1, StatusDone, t1)
	if !found {
		t.Fatal("expected found")
	}
	if out[0].Status != StatusDone || !out[0].UpdatedAt.Equal(t1) {
		t.Errorf("unexpected task %+v", out[0])
	}

	_, found = SetStatus(sampleTasks(), 99, StatusDone, t1)
	if found {
		t.Error("expected not found for id 99")
	}
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	in := sampleTasks()
	out, found := Delete(in, 2)
	if !found {
		t.Fatal("expected found")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(out))
	}
	if out[0] != in[0] || out[1] != in[2] {
		t.Errorf("remaining tasks changed: %+v", out)
	}
	if len(in) != 3 || in[1].ID != 2 {
		t.Error("input collection was mutated")
	}
}

func TestDelete_NotFound(t *testing.T) {
	out, found := Delete(sampleTasks(), 7)
	if found {
		t.Error("expected not found")
	}
	if len(out) != 3 {
		t.Errorf("expected 3 tasks, got %d", len(out))
	}
}

func TestFilter(t *testing.T) {
	c := append(sampleTasks(), Task{ID: 5, Description: "more", Status: StatusTodo, CreatedAt: t0, UpdatedAt: t0})

	all := Filter(c, nil)
	if len(all) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(all))
	}

	todo := StatusTodo
	got := Filter(c, &todo)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 5 {
		t.Errorf("expected ids [1 5] in order, got %+v", got)
	}

	done := StatusDone
	got = Filter([]Task{{ID: 1, Status: StatusTodo}}, &done)
	if len(got) != 0 {
		t.Errorf("expected no tasks, got %d", len(got))
	}
}

func TestCount(t *testing.T) {
	counts := Count(sampleTasks())
	for _, st := range Statuses {
		if counts[st] != 1 {
			t.Errorf("expected 1 %s, got %d", st, counts[st])
		}
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"TODO":        StatusTodo,
		"todo":        StatusTodo,
		"IN_PROGRESS": StatusInProgress,
		"in-progress": StatusInProgress,
		"Done":        StatusDone,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseStatus(%q): expected %s, got %s", in, want, got)
		}
	}

	if _, err := ParseStatus("BLOCKED"); err == nil {
		t.Error("expected error for BLOCKED")
	}
}

func TestStatusNextCycles(t *testing.T) {
	s := StatusTodo
	want := []Status{StatusInProgress, StatusDone, StatusTodo}
	for _, w := range want {
		s = s.Next()
		if s != w {
			t.Errorf("expected %s, got %s", w, s)
		}
	}
}

func TestStatusJSON(t *testing.T) {
	data, err := json.Marshal(StatusInProgress)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"IN_PROGRESS"` {
		t.Errorf("expected \"IN_PROGRESS\", got %s", data)
	}

	var s Status
	if err := json.Unmarshal([]byte(`"DONE"`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != StatusDone {
		t.Errorf("expected DONE, got %s", s)
	}

	if err := json.Unmarshal([]byte(`"done"`), &s); err == nil {
		t.Error("expected lower-case literal to be rejected from storage")
	}
	if _, err := json.Marshal(Status(0)); err == nil {
		t.Error("expected zero status to fail to encode")
	}
}

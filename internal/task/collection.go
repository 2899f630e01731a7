package task

import "time"

// The functions below never modify the slice they are given. Callers assign
// the returned collection to keep mutation visible at the call site.

// NextID returns one more than the largest id in c, or 1 when c is empty.
// Ids of deleted tasks are never handed out again as long as a larger id
// survives.
func NextID(c []Task) int {
	highest := 0
	for _, t := range c {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// Find returns the task with the given id.
func Find(c []Task, id int) (Task, bool) {
	i := indexOf(c, id)
	if i < 0 {
		return Task{}, false
	}
	return c[i], true
}

// Add appends a new TODO task with both timestamps set to now.
func Add(c []Task, description string, now time.Time) ([]Task, Task) {
	t := Task{
		ID:          NextID(c),
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	out := make([]Task, len(c), len(c)+1)
	copy(out, c)
	return append(out, t), t
}

// Update replaces the description of task id.
func Update(c []Task, id int, description string, now time.Time) ([]Task, bool) {
	return modify(c, id, now, func(t *Task) { t.Description = description })
}

// SetStatus moves task id to status.
func SetStatus(c []Task, id int, status Status, now time.Time) ([]Task, bool) {
	return modify(c, id, now, func(t *Task) { t.Status = status })
}

// Delete removes task id, keeping the order of the rest.
func Delete(c []Task, id int) ([]Task, bool) {
	i := indexOf(c, id)
	if i < 0 {
		return c, false
	}
	out := make([]Task, 0, len(c)-1)
	out = append(out, c[:i]...)
	out = append(out, c[i+1:]...)
	return out, true
}

// Filter returns the tasks whose status matches. A nil status matches all.
func Filter(c []Task, status *Status) []Task {
	out := make([]Task, 0, len(c))
	for _, t := range c {
		if status == nil || t.Status == *status {
			out = append(out, t)
		}
	}
	return out
}

// Count returns how many tasks are in each status.
func Count(c []Task) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, st := range Statuses {
		counts[st] = 0
	}
	for _, t := range c {
		counts[t.Status]++
	}
	return counts
}

func modify(c []Task, id int, now time.Time, fn func(*Task)) ([]Task, bool) {
	i := indexOf(c, id)
	if i < 0 {
		return c, false
	}
	out := make([]Task, len(c))
	copy(out, c)
	fn(&out[i])
	out[i].UpdatedAt = now
	return out, true
}

func indexOf(c []Task, id int) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

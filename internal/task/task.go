// Package task defines the task record, its status lifecycle, and pure
// operations over an ordered task collection.
package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is a task lifecycle state.
type Status int

const (
	// StatusTodo is the initial state of every new task.
	StatusTodo Status = iota + 1
	StatusInProgress
	StatusDone
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// String returns the wire form of the status.
func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "TODO"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusDone:
		return "DONE"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Next returns the status that follows s in the board cycle
// TODO -> IN_PROGRESS -> DONE -> TODO.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	case StatusDone:
		return StatusTodo
	}
	return StatusTodo
}

// ParseStatus parses a status literal. Matching is case-insensitive and
// accepts "-" in place of "_".
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, st := range Statuses {
		if st.String() == norm {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid status: %s (must be one of TODO, IN_PROGRESS, DONE)", s)
}

// MarshalJSON encodes the status as its literal string.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot encode %s", s)
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status literal. Only the exact upper-case forms
// are accepted from storage.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	for _, st := range Statuses {
		if st.String() == raw {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", raw)
}

// TimeLayout is the ISO-8601 local form used when timestamps are stored
// or printed.
const TimeLayout = "2006-01-02T15:04:05.000000"

// Task is a single unit of work.
type Task struct {
	ID          int
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

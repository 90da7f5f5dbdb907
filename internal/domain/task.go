package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task-specific validation errors. Both derive from ErrValidation so
// callers can match the whole family with a single errors.Is check.
var (
	// ErrTaskTextEmpty is returned when a task's text is empty or
	// contains only whitespace.
	ErrTaskTextEmpty = fmt.Errorf("%w: task text cannot be empty", ErrValidation)

	// ErrTaskPriorityInvalid is returned when a task carries a priority
	// outside the fixed label set.
	ErrTaskPriorityInvalid = fmt.Errorf("%w: task priority must be high, medium or low", ErrValidation)
)

// Task is a single to-do item. The ID is assigned by the store on
// creation and is never reused; Text and CreatedAt are immutable after
// creation. Priority is set once at creation time (by the advisor or an
// explicit user override) and may be changed later only through an
// explicit update.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Notes     string    `json:"notes,omitempty"`
	Priority  Priority  `json:"priority"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTask creates a new Task with the given text, optional notes and
// priority. Text is trimmed before validation; the ID is left zero for
// the store to assign. Returns an error if validation fails.
func NewTask(text, notes string, priority Priority) (*Task, error) {
	task := &Task{
		Text:      strings.TrimSpace(text),
		Notes:     strings.TrimSpace(notes),
		Priority:  priority,
		Done:      false,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrTaskTextEmpty
	}

	if !t.Priority.Valid() {
		return ErrTaskPriorityInvalid
	}

	return nil
}

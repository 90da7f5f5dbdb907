package api

import (
	"time"

	"github.com/mkowalczyk/tasklist-api/internal/domain"
)

// CreateTaskRequest represents the request body for creating a new task.
// Priority is optional: when omitted the server asks the advisor.
type CreateTaskRequest struct {
	Text     string `json:"text" validate:"required,min=1"`
	Notes    string `json:"notes,omitempty"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
}

// SetDoneRequest represents the request body for changing a task's done
// state. Done defaults to true when the body is omitted entirely.
type SetDoneRequest struct {
	Done *bool `json:"done,omitempty"`
}

// UpdatePriorityRequest represents the request body for changing a
// task's priority label.
type UpdatePriorityRequest struct {
	Priority string `json:"priority" validate:"required,oneof=high medium low"`
}

// SuggestPriorityRequest represents the request body for a standalone
// priority suggestion.
type SuggestPriorityRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// SuggestPriorityResponse carries the advisor's suggestion.
type SuggestPriorityResponse struct {
	Priority string `json:"priority"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Notes     string    `json:"notes,omitempty"`
	Priority  string    `json:"priority"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Text:      task.Text,
		Notes:     task.Notes,
		Priority:  string(task.Priority),
		Done:      task.Done,
		CreatedAt: task.CreatedAt,
	}
}

// tasksToResponse converts a slice of tasks, keeping order.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

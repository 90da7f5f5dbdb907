package store

import (
	"context"
	"database/sql"

	"github.com/mkowalczyk/tasklist-api/internal/domain"
)

// ListFilter narrows the result set of TaskStore.List.
// The zero value returns every task.
type ListFilter struct {
	// IncludeDone controls whether completed tasks appear in the result.
	IncludeDone bool
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its ID and
	// creation timestamp. The task must be valid according to domain
	// validation rules; returns ErrInvalidEntity wrapping the domain
	// error otherwise. The write is durable before Create returns.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns tasks matching the filter, ordered by ID ascending
	// (creation order). The result is a finite, restartable snapshot;
	// List has no side effects.
	List(ctx context.Context, filter ListFilter) ([]*domain.Task, error)

	// SetDone updates a task's done flag and returns the updated record.
	// Setting an already-done task done again is a no-op that still
	// succeeds. Returns ErrTaskNotFound if the task does not exist.
	SetDone(ctx context.Context, id int64, done bool) (*domain.Task, error)

	// UpdatePriority changes a task's priority label and returns the
	// updated record. The label must be in the fixed set; returns
	// ErrInvalidEntity otherwise. Returns ErrTaskNotFound if the task
	// does not exist.
	UpdatePriority(ctx context.Context, id int64, priority domain.Priority) (*domain.Task, error)

	// Delete removes a task from the store permanently.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkowalczyk/tasklist-api/internal/domain"
	"github.com/mkowalczyk/tasklist-api/internal/store"
)

// Advisor suggests a priority label for task text. It never fails;
// remote problems are absorbed behind this interface.
type Advisor interface {
	Suggest(ctx context.Context, text string) domain.Priority
}

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask validates the text, determines a priority (the
	// explicit override wins over the advisor's suggestion), and
	// persists the new task. Returns domain.ErrTaskTextEmpty for
	// empty or whitespace-only text.
	CreateTask(ctx context.Context, text, notes string, priority domain.Priority) (*domain.Task, error)

	// GetTask retrieves a task by ID. Returns store.ErrTaskNotFound
	// if no such task exists.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks returns tasks in creation order. With includeDone set,
	// completed tasks appear too.
	ListTasks(ctx context.Context, includeDone bool) ([]*domain.Task, error)

	// MarkDone marks a task as completed. Idempotent: marking an
	// already-done task succeeds and returns the current record.
	MarkDone(ctx context.Context, id int64) (*domain.Task, error)

	// SetDone sets the done flag explicitly, allowing tasks to be
	// unchecked again.
	SetDone(ctx context.Context, id int64, done bool) (*domain.Task, error)

	// UpdatePriority changes a task's priority label.
	UpdatePriority(ctx context.Context, id int64, priority domain.Priority) (*domain.Task, error)

	// DeleteTask removes a task permanently.
	DeleteTask(ctx context.Context, id int64) error

	// SuggestPriority exposes the advisor directly so the UI can offer
	// a suggestion before the task is saved. Never fails.
	SuggestPriority(ctx context.Context, text string) domain.Priority
}

// taskService is the production implementation of TaskService.
type taskService struct {
	logger    *slog.Logger
	taskStore store.TaskStore
	advisor   Advisor
}

// NewTaskService creates a TaskService backed by the given store and advisor.
func NewTaskService(logger *slog.Logger, taskStore store.TaskStore, advisor Advisor) TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if advisor == nil {
		panic("advisor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		logger:    logger.With(slog.String("component", "task_service")),
		taskStore: taskStore,
		advisor:   advisor,
	}
}

// Ensure taskService implements TaskService
var _ TaskService = (*taskService)(nil)

func (s *taskService) CreateTask(
	ctx context.Context,
	text, notes string,
	priority domain.Priority,
) (*domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrTaskTextEmpty
	}

	// An explicit override skips the advisor entirely; otherwise the
	// advisor decides (remote-first, heuristic fallback, never fails).
	if priority == "" {
		priority = s.advisor.Suggest(ctx, text)
	} else if !priority.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, priority)
	}

	task, err := domain.NewTask(text, notes, priority)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "invalid task", err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("create_task", "failed to persist task", err)
	}

	s.logger.InfoContext(ctx, "task created",
		slog.Int64("task_id", task.ID),
		slog.String("priority", string(task.Priority)))
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to load task", err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, includeDone bool) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, store.ListFilter{IncludeDone: includeDone})
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskService) MarkDone(ctx context.Context, id int64) (*domain.Task, error) {
	return s.SetDone(ctx, id, true)
}

func (s *taskService) SetDone(ctx context.Context, id int64, done bool) (*domain.Task, error) {
	task, err := s.taskStore.SetDone(ctx, id, done)
	if err != nil {
		return nil, NewTaskServiceError("set_done", "failed to update done state", err)
	}

	s.logger.InfoContext(ctx, "task done state changed",
		slog.Int64("task_id", id),
		slog.Bool("done", done))
	return task, nil
}

func (s *taskService) UpdatePriority(
	ctx context.Context,
	id int64,
	priority domain.Priority,
) (*domain.Task, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, priority)
	}

	task, err := s.taskStore.UpdatePriority(ctx, id, priority)
	if err != nil {
		return nil, NewTaskServiceError("update_priority", "failed to update priority", err)
	}

	s.logger.InfoContext(ctx, "task priority changed",
		slog.Int64("task_id", id),
		slog.String("priority", string(priority)))
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.InfoContext(ctx, "task deleted", slog.Int64("task_id", id))
	return nil
}

func (s *taskService) SuggestPriority(ctx context.Context, text string) domain.Priority {
	return s.advisor.Suggest(ctx, strings.TrimSpace(text))
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkowalczyk/tasklist-api/internal/domain"
	"github.com/mkowalczyk/tasklist-api/internal/platform/logger"
	"github.com/mkowalczyk/tasklist-api/internal/store"
)

// timeLayout is how CreatedAt is stored in the tasks table. SQLite has
// no native timestamp type, so timestamps are kept as RFC 3339 text.
const timeLayout = time.RFC3339Nano

// SQLiteTaskStore implements the store.TaskStore interface
// using a SQLite database file as the storage backend.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteTaskStore creates a new SQLite implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewSQLiteTaskStore(db store.DBTX, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure SQLiteTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation, and
// backfills the assigned row ID into the task.
func (s *SQLiteTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tasks (text, notes, priority, done, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Text,
		task.Notes,
		string(task.Priority),
		task.Done,
		task.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "insert failed", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Error("failed to read assigned task ID",
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "could not read assigned ID", err)
	}
	task.ID = id

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("priority", string(task.Priority)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	query := `
		SELECT id, text, notes, priority, done, created_at
		FROM tasks
		WHERE id = ?
	`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}

	return task, nil
}

// List implements store.TaskStore.List
// Tasks come back ordered by ID ascending, which matches creation order.
func (s *SQLiteTaskStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, text, notes, priority, done, created_at
		FROM tasks
		ORDER BY id ASC
	`
	var args []any
	if !filter.IncludeDone {
		query = `
			SELECT id, text, notes, priority, done, created_at
			FROM tasks
			WHERE done = 0
			ORDER BY id ASC
		`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "row iteration failed", err)
	}

	return tasks, nil
}

// SetDone implements store.TaskStore.SetDone
// The update and the read-back of the updated record run in a single
// transaction, so a concurrent delete cannot make a committed update
// report not found. The update is idempotent; setting done on an
// already-done task succeeds and returns the current record.
func (s *SQLiteTaskStore) SetDone(ctx context.Context, id int64, done bool) (*domain.Task, error) {
	return s.inTransaction(ctx, func(txStore *SQLiteTaskStore) (*domain.Task, error) {
		return txStore.setDone(ctx, id, done)
	})
}

func (s *SQLiteTaskStore) setDone(ctx context.Context, id int64, done bool) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE tasks SET done = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, done, id)
	if err != nil {
		log.Error("failed to update task done state",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "set_done", "update failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, store.NewStoreError("task", "set_done", "could not read rows affected", err)
	}
	if rowsAffected == 0 {
		log.Debug("no task found to update done state", slog.Int64("task_id", id))
		return nil, store.ErrTaskNotFound
	}

	log.Info("task done state updated",
		slog.Int64("task_id", id),
		slog.Bool("done", done))
	return s.GetByID(ctx, id)
}

// UpdatePriority implements store.TaskStore.UpdatePriority
// Like SetDone, the update and read-back share one transaction.
func (s *SQLiteTaskStore) UpdatePriority(ctx context.Context, id int64, priority domain.Priority) (*domain.Task, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidPriority)
	}

	return s.inTransaction(ctx, func(txStore *SQLiteTaskStore) (*domain.Task, error) {
		return txStore.updatePriority(ctx, id, priority)
	})
}

func (s *SQLiteTaskStore) updatePriority(ctx context.Context, id int64, priority domain.Priority) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE tasks SET priority = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, string(priority), id)
	if err != nil {
		log.Error("failed to update task priority",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "update_priority", "update failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, store.NewStoreError("task", "update_priority", "could not read rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, store.ErrTaskNotFound
	}

	log.Info("task priority updated",
		slog.Int64("task_id", id),
		slog.String("priority", string(priority)))
	return s.GetByID(ctx, id)
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "delete", "delete failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "delete", "could not read rows affected", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new store instance bound to the provided transaction.
func (s *SQLiteTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &SQLiteTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// inTransaction runs fn against a transaction-bound copy of the store.
// A store already bound to a transaction (via WithTx) runs fn directly
// inside that transaction instead of opening a nested one.
func (s *SQLiteTaskStore) inTransaction(
	ctx context.Context,
	fn func(*SQLiteTaskStore) (*domain.Task, error),
) (*domain.Task, error) {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return fn(s)
	}

	var task *domain.Task
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		var fnErr error
		task, fnErr = fn(&SQLiteTaskStore{db: tx, logger: s.logger})
		return fnErr
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row into a domain.Task.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task      domain.Task
		priority  string
		createdAt string
	)

	if err := row.Scan(&task.ID, &task.Text, &task.Notes, &priority, &task.Done, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := domain.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("stored priority is invalid: %w", err)
	}
	task.Priority = parsed

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("stored created_at is invalid: %w", err)
	}
	task.CreatedAt = ts

	return &task, nil
}

package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mkowalczyk/tasklist-api/internal/domain"
	"github.com/mkowalczyk/tasklist-api/internal/platform/sqlite"
	"github.com/mkowalczyk/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated database in a per-test temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.db")
	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return db
}

func mustNewTask(t *testing.T, text string, priority domain.Priority) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(text, "", priority)
	require.NoError(t, err)
	return task
}

func TestTaskStoreCreate(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	task := mustNewTask(t, "pay rent", domain.PriorityHigh)
	require.NoError(t, taskStore.Create(ctx, task))

	// The store assigns the ID.
	assert.Equal(t, int64(1), task.ID)

	got, err := taskStore.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay rent", got.Text)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.False(t, got.Done)
	assert.False(t, got.CreatedAt.IsZero())

	// IDs are monotonically increasing.
	second := mustNewTask(t, "water plants", domain.PriorityLow)
	require.NoError(t, taskStore.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)
}

func TestTaskStoreCreateInvalid(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	invalid := &domain.Task{Text: "   ", Priority: domain.PriorityLow}
	err := taskStore.Create(ctx, invalid)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	// Nothing was persisted.
	tasks, listErr := taskStore.List(ctx, store.ListFilter{IncludeDone: true})
	require.NoError(t, listErr)
	assert.Empty(t, tasks)
}

func TestTaskStoreGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)

	_, err := taskStore.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreList(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		require.NoError(t, taskStore.Create(ctx, mustNewTask(t, text, domain.PriorityMedium)))
	}

	tasks, err := taskStore.List(ctx, store.ListFilter{IncludeDone: true})
	require.NoError(t, err)
	require.Len(t, tasks, len(texts))

	// Creation order is preserved.
	for i, task := range tasks {
		assert.Equal(t, texts[i], task.Text)
		assert.Equal(t, int64(i+1), task.ID)
	}

	// Completed tasks drop out when the filter excludes them.
	_, err = taskStore.SetDone(ctx, tasks[1].ID, true)
	require.NoError(t, err)

	open, err := taskStore.List(ctx, store.ListFilter{IncludeDone: false})
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "first", open[0].Text)
	assert.Equal(t, "third", open[1].Text)
}

func TestTaskStoreSetDone(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	task := mustNewTask(t, "finish report", domain.PriorityHigh)
	require.NoError(t, taskStore.Create(ctx, task))

	updated, err := taskStore.SetDone(ctx, task.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Done)

	// Idempotent: a second call succeeds and leaves done set.
	updated, err = taskStore.SetDone(ctx, task.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Done)

	// Tasks can be unchecked again.
	updated, err = taskStore.SetDone(ctx, task.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Done)

	_, err = taskStore.SetDone(ctx, 999, true)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreUpdatePriority(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	task := mustNewTask(t, "book flights", domain.PriorityLow)
	require.NoError(t, taskStore.Create(ctx, task))

	updated, err := taskStore.UpdatePriority(ctx, task.ID, domain.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)

	_, err = taskStore.UpdatePriority(ctx, task.ID, domain.Priority("urgent"))
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	_, err = taskStore.UpdatePriority(ctx, 999, domain.PriorityLow)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreDelete(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	task := mustNewTask(t, "cancel subscription", domain.PriorityMedium)
	require.NoError(t, taskStore.Create(ctx, task))

	require.NoError(t, taskStore.Delete(ctx, task.ID))

	_, err := taskStore.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// Deleting again reports not found.
	assert.ErrorIs(t, taskStore.Delete(ctx, task.ID), store.ErrTaskNotFound)
}

func TestTaskStoreWithTx(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	// A rolled-back transaction leaves no trace.
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := taskStore.WithTx(tx)
		if err := txStore.Create(ctx, mustNewTask(t, "inside tx", domain.PriorityLow)); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	tasks, err := taskStore.List(ctx, store.ListFilter{IncludeDone: true})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// A committed transaction persists.
	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return taskStore.WithTx(tx).Create(ctx, mustNewTask(t, "committed", domain.PriorityLow))
	})
	require.NoError(t, err)

	tasks, err = taskStore.List(ctx, store.ListFilter{IncludeDone: true})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "committed", tasks[0].Text)
}

func TestTaskStoreUpdatesRollBackWithTransaction(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	task := mustNewTask(t, "file expenses", domain.PriorityLow)
	require.NoError(t, taskStore.Create(ctx, task))

	// SetDone and UpdatePriority on a transaction-bound store run
	// inside that transaction and are discarded with it.
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := taskStore.WithTx(tx)

		updated, err := txStore.SetDone(ctx, task.ID, true)
		require.NoError(t, err)
		require.True(t, updated.Done)

		updated, err = txStore.UpdatePriority(ctx, task.ID, domain.PriorityHigh)
		require.NoError(t, err)
		require.Equal(t, domain.PriorityHigh, updated.Priority)

		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	got, err := taskStore.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Done)
	assert.Equal(t, domain.PriorityLow, got.Priority)
}

func TestTaskStoreSetDoneConcurrentDelete(t *testing.T) {
	db := newTestDB(t)
	taskStore := sqlite.NewSQLiteTaskStore(db, nil)
	ctx := context.Background()

	// The update and its read-back are atomic: a racing delete either
	// wins, making SetDone report not found, or loses, in which case
	// SetDone returns the updated record. The delete always finds the
	// row, so it never errors.
	for i := 0; i < 25; i++ {
		task := mustNewTask(t, "race me", domain.PriorityLow)
		require.NoError(t, taskStore.Create(ctx, task))

		var (
			wg          sync.WaitGroup
			setDoneTask *domain.Task
			setDoneErr  error
			deleteErr   error
		)

		wg.Add(2)
		go func() {
			defer wg.Done()
			setDoneTask, setDoneErr = taskStore.SetDone(ctx, task.ID, true)
		}()
		go func() {
			defer wg.Done()
			deleteErr = taskStore.Delete(ctx, task.ID)
		}()
		wg.Wait()

		require.NoError(t, deleteErr)
		if setDoneErr != nil {
			assert.ErrorIs(t, setDoneErr, store.ErrTaskNotFound)
		} else {
			require.NotNil(t, setDoneTask)
			assert.True(t, setDoneTask.Done)
		}
	}
}

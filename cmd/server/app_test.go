package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkowalczyk/tasklist-api/internal/config"
	"github.com/mkowalczyk/tasklist-api/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication wires a full application against a temp database
// with remote inference disabled, so suggestions use the heuristic.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: 0, LogLevel: "error"},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "tasks.db")},
		Inference: config.InferenceConfig{
			ModelURL:       config.DefaultModelURL,
			TimeoutSeconds: 1,
			Disabled:       true,
		},
	}

	db, err := sqlite.Open(context.Background(), cfg.Database.Path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(cfg, logger, db)
	require.NoError(t, err)
	return app
}

func TestApplicationWiring(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.taskStore)
	assert.NotNil(t, app.advisor)
	assert.NotNil(t, app.taskService)
	assert.NotNil(t, app.setupRouter())
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	defer server.Close()

	post := func(path, body string) *http.Response {
		resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		return resp
	}

	// Create a task; the heuristic spots the urgency keyword.
	resp := post("/api/tasks", `{"text":"urgent: renew certificates"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "urgent: renew certificates", created["text"])
	assert.Equal(t, "high", created["priority"])
	id := int64(created["id"].(float64))
	assert.Positive(t, id)

	// Round-trip: the new task appears in the list with its priority.
	resp, err := http.Get(server.URL + "/api/tasks")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tasks []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	require.NoError(t, resp.Body.Close())
	require.Len(t, tasks, 1)
	assert.Equal(t, "urgent: renew certificates", tasks[0]["text"])
	assert.NotEmpty(t, tasks[0]["priority"])

	// Mark done twice; both calls succeed and done stays true.
	for i := 0; i < 2; i++ {
		resp = post(fmt.Sprintf("/api/tasks/%d/done", id), "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, true, updated["done"])
	}

	// Missing IDs map to 404.
	resp = post("/api/tasks/999/done", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	// Delete and verify it is gone.
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/tasks/%d", server.URL, id), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp, err = http.Get(fmt.Sprintf("%s/api/tasks/%d", server.URL, id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func TestCreateValidationOverHTTP(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	defer server.Close()

	// Whitespace-only text is rejected and nothing is persisted.
	resp, err := http.Post(server.URL+"/api/tasks", "application/json",
		strings.NewReader(`{"text":"   "}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp, err = http.Get(server.URL + "/api/tasks")
	require.NoError(t, err)
	var tasks []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	require.NoError(t, resp.Body.Close())
	assert.Empty(t, tasks)
}

func TestSuggestEndpointFallback(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/suggest", "application/json",
		strings.NewReader(`{"text":"urgent: fix server now"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "high", body["priority"])
}

func TestHealthAndUIEndpoints(t *testing.T) {
	app := newTestApplication(t)
	server := httptest.NewServer(app.setupRouter())
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp, err = http.Get(server.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Contains(t, string(page), "Task List")
}

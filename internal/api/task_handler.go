package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkowalczyk/tasklist-api/internal/api/shared"
	"github.com/mkowalczyk/tasklist-api/internal/domain"
	"github.com/mkowalczyk/tasklist-api/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: text is required")
		return
	}

	// An empty priority string means "let the advisor decide".
	task, err := h.taskService.CreateTask(r.Context(), req.Text, req.Notes, domain.Priority(req.Priority))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /api/tasks requests.
// The include_done query parameter (default true) filters out completed
// tasks when set to false.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	includeDone := true
	if raw := r.URL.Query().Get("include_done"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "include_done must be a boolean")
			return
		}
		includeDone = parsed
	}

	tasks, err := h.taskService.ListTasks(r.Context(), includeDone)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// SetDone handles POST /api/tasks/{id}/done requests.
// An absent or empty body marks the task done; {"done": false} unchecks it.
func (h *TaskHandler) SetDone(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	done := true
	if r.Body != nil && r.ContentLength != 0 {
		var req SetDoneRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		if req.Done != nil {
			done = *req.Done
		}
	}

	task, err := h.taskService.SetDone(r.Context(), id, done)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdatePriority handles PUT /api/tasks/{id}/priority requests.
func (h *TaskHandler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req UpdatePriorityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Priority must be one of: high, medium, low")
		return
	}

	task, err := h.taskService.UpdatePriority(r.Context(), id, domain.Priority(req.Priority))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SuggestPriority handles POST /api/suggest requests. It never fails
// with a suggestion error: the advisor always returns a label.
func (h *TaskHandler) SuggestPriority(w http.ResponseWriter, r *http.Request) {
	var req SuggestPriorityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: text is required")
		return
	}

	priority := h.taskService.SuggestPriority(r.Context(), req.Text)
	shared.RespondWithJSON(w, r, http.StatusOK, SuggestPriorityResponse{
		Priority: string(priority),
	})
}

// taskID parses the {id} URL parameter. Garbage or non-positive values
// surface as domain.ErrInvalidID through the standard error mapping.
func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		idErr := fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
		shared.RespondWithError(w, r, MapErrorToStatusCode(idErr), GetSafeErrorMessage(idErr))
		return 0, false
	}
	return id, true
}

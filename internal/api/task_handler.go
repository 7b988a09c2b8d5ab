package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskwall/taskwall/internal/api/shared"
	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/platform/logger"
	"github.com/taskwall/taskwall/internal/redact"
	"github.com/taskwall/taskwall/internal/store"
)

// TaskHandler handles task-related HTTP requests. Tasks live inside columns;
// creates, deletes, reorders and moves all maintain the dense per-column
// ordering through the store.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /api/tasks/ requests. The referenced column must
// exist; without an explicit order the task is appended at the end of it.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskStore.Create(r.Context(), store.CreateTask{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
		Order:       req.Order,
	})
	if err != nil {
		safeMessage := GetSafeErrorMessage(err)
		if errors.Is(err, store.ErrInvalidEntity) {
			safeMessage = fmt.Sprintf("Column with ID %d not found", req.ColumnID)
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// List handles GET /api/tasks/ requests, returning every task on the board
// ordered by column and position.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListByColumn handles GET /api/tasks/columns/{columnID}/tasks requests
func (h *TaskHandler) ListByColumn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	columnID, ok := handlePathID(w, r, "columnID", "Column", log)
	if !ok {
		return
	}

	tasks, err := h.taskStore.ListByColumn(r.Context(), columnID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// Get handles GET /api/tasks/{id} requests
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Task", log)
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Update handles PUT /api/tasks/{id} requests. Fields absent from the body
// are left unchanged; a present order repositions the task within its current
// column. Moving between columns goes through Move instead.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Task", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskStore.Update(r.Context(), id, store.UpdateTask{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /api/tasks/{id} requests. The tasks below the
// deleted one shift up to close the gap.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Task", log)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PATCH /api/tasks/{id}/reorder requests. The body repeats
// the task ID; a mismatch with the path is rejected before any store call.
func (h *TaskHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Task", log)
	if !ok {
		return
	}

	var req ReorderTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if req.TaskID != id {
		log.Warn("task ID mismatch between path and body",
			slog.Int64("path_id", id),
			slog.Int64("body_id", req.TaskID))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Task ID in body does not match URL path")
		return
	}

	task, err := h.taskStore.Reorder(r.Context(), id, req.NewOrder)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task reordered",
		slog.Int64("task_id", id),
		slog.Int("new_order", task.Order))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Move handles PATCH /api/tasks/{id}/move requests, transferring the task to
// the target column. The body repeats the task ID; a mismatch with the path
// is rejected before any store call.
func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Task", log)
	if !ok {
		return
	}

	var req MoveTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.Int64("task_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if req.TaskID != id {
		log.Warn("task ID mismatch between path and body",
			slog.Int64("path_id", id),
			slog.Int64("body_id", req.TaskID))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Task ID in body does not match URL path")
		return
	}

	task, err := h.taskStore.Move(r.Context(), id, req.TargetColumnID, req.NewOrder)
	if err != nil {
		safeMessage := GetSafeErrorMessage(err)
		if errors.Is(err, store.ErrInvalidEntity) {
			safeMessage = fmt.Sprintf("Column with ID %d not found", req.TargetColumnID)
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), safeMessage, err)
		return
	}

	log.Debug("task moved",
		slog.Int64("task_id", id),
		slog.Int64("column_id", task.ColumnID),
		slog.Int("order", task.Order))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ColumnID:    t.ColumnID,
		Order:       t.Order,
		CreatedAt:   t.CreatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

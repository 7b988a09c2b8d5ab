package api

import (
	"log/slog"
	"net/http"

	"github.com/taskwall/taskwall/internal/api/shared"
	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/platform/logger"
	"github.com/taskwall/taskwall/internal/redact"
	"github.com/taskwall/taskwall/internal/store"
)

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoStore store.TodoStore
	logger    *slog.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoStore store.TodoStore, logger *slog.Logger) *TodoHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}

	return &TodoHandler{
		todoStore: todoStore,
		logger:    logger.With(slog.String("component", "todo_handler")),
	}
}

// Create handles POST /api/todos/ requests
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTodoRequest
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

	todo, err := h.todoStore.Create(r.Context(), store.CreateTodo{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, todoToResponse(todo))
}

// List handles GET /api/todos/ requests, returning todos newest first.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todosToResponse(todos))
}

// Get handles GET /api/todos/{id} requests
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Todo", log)
	if !ok {
		return
	}

	todo, err := h.todoStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todoToResponse(todo))
}

// Update handles PUT /api/todos/{id} requests. Fields absent from the body
// are left unchanged.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Todo", log)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("todo_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.Int64("todo_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	todo, err := h.todoStore.Update(r.Context(), id, store.UpdateTodo{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todoToResponse(todo))
}

// Delete handles DELETE /api/todos/{id} requests
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Todo", log)
	if !ok {
		return
	}

	if err := h.todoStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete handles PATCH /api/todos/{id}/complete requests
func (h *TodoHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, true)
}

// Incomplete handles PATCH /api/todos/{id}/incomplete requests
func (h *TodoHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, false)
}

func (h *TodoHandler) setCompleted(w http.ResponseWriter, r *http.Request, completed bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Todo", log)
	if !ok {
		return
	}

	todo, err := h.todoStore.SetCompleted(r.Context(), id, completed)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("todo completion updated",
		slog.Int64("todo_id", id),
		slog.Bool("completed", completed))
	shared.RespondWithJSON(w, r, http.StatusOK, todoToResponse(todo))
}

// todoToResponse converts a domain.Todo to a TodoResponse
func todoToResponse(t *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// todosToResponse converts a slice of todos, keeping the slice non-nil so an
// empty list serializes as [] rather than null.
func todosToResponse(todos []*domain.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoToResponse(t))
	}
	return out
}

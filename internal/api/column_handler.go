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

// ColumnHandler handles column-related HTTP requests. Columns form a single
// ordered container, so every write that touches order goes through the
// reorder path of the store and keeps the board dense.
type ColumnHandler struct {
	columnStore store.ColumnStore
	logger      *slog.Logger
}

// NewColumnHandler creates a new ColumnHandler
func NewColumnHandler(columnStore store.ColumnStore, logger *slog.Logger) *ColumnHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ColumnHandler")
	}

	return &ColumnHandler{
		columnStore: columnStore,
		logger:      logger.With(slog.String("component", "column_handler")),
	}
}

// Create handles POST /api/columns/ requests. Without an explicit order the
// column is appended at the end of the board.
func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateColumnRequest
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

	column, err := h.columnStore.Create(r.Context(), store.CreateColumn{
		Title: req.Title,
		Order: req.Order,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, columnToResponse(column))
}

// List handles GET /api/columns/ requests, returning columns in board order.
func (h *ColumnHandler) List(w http.ResponseWriter, r *http.Request) {
	columns, err := h.columnStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnsToResponse(columns))
}

// Get handles GET /api/columns/{id} requests
func (h *ColumnHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Column", log)
	if !ok {
		return
	}

	column, err := h.columnStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnToResponse(column))
}

// Update handles PUT /api/columns/{id} requests. Fields absent from the body
// are left unchanged; a present order repositions the column on the board.
func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Column", log)
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("column_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.Int64("column_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	column, err := h.columnStore.Update(r.Context(), id, store.UpdateColumn{
		Title: req.Title,
		Order: req.Order,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnToResponse(column))
}

// Delete handles DELETE /api/columns/{id} requests. The column's tasks go
// with it and the columns to its right shift down to close the gap.
func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Column", log)
	if !ok {
		return
	}

	if err := h.columnStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PATCH /api/columns/{id}/reorder requests. The body repeats
// the column ID; a mismatch with the path is rejected before any store call.
func (h *ColumnHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", "Column", log)
	if !ok {
		return
	}

	var req ReorderColumnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("column_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.Int64("column_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if req.ColumnID != id {
		log.Warn("column ID mismatch between path and body",
			slog.Int64("path_id", id),
			slog.Int64("body_id", req.ColumnID))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Column ID in body does not match URL path")
		return
	}

	column, err := h.columnStore.Reorder(r.Context(), id, req.NewOrder)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("column reordered",
		slog.Int64("column_id", id),
		slog.Int("new_order", column.Order))
	shared.RespondWithJSON(w, r, http.StatusOK, columnToResponse(column))
}

// columnToResponse converts a domain.Column to a ColumnResponse
func columnToResponse(c *domain.Column) ColumnResponse {
	return ColumnResponse{
		ID:        c.ID,
		Title:     c.Title,
		Order:     c.Order,
		CreatedAt: c.CreatedAt,
	}
}

func columnsToResponse(columns []*domain.Column) []ColumnResponse {
	out := make([]ColumnResponse, 0, len(columns))
	for _, c := range columns {
		out = append(out, columnToResponse(c))
	}
	return out
}

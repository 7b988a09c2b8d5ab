package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taskwall/taskwall/internal/api/shared"
	"github.com/taskwall/taskwall/internal/platform/logger"
)

// getPathID extracts a numeric entity ID from the URL path parameters.
// IDs are parsed strictly as base-10 integers and must be positive.
//
// Parameters:
//   - r: The HTTP request
//   - paramName: The name of the path parameter to extract
//
// Returns:
//   - (id, nil): The parsed ID if valid
//   - (0, error): Zero and an error if the parameter is missing, not an
//     integer, or not positive
func getPathID(r *http.Request, paramName string) (int64, error) {
	// Extract parameter from URL path using chi router
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, strconv.ErrSyntax
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}

	return id, nil
}

// handlePathID is a composite helper that extracts a numeric ID from the URL
// path and writes a 400 response when the parameter is missing or malformed.
//
// Parameters:
//   - w: The HTTP response writer
//   - r: The HTTP request
//   - paramName: The name of the path parameter to extract
//   - label: The entity name used in client-facing messages (e.g. "Task")
//   - log: The logger to use; nil falls back to the context logger
//
// Returns:
//   - (id, true): The parsed ID if valid
//   - (0, false): Zero and false if extraction failed and an error was written
func handlePathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	label string,
	log *slog.Logger,
) (int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		log.Warn(strings.ToLower(label) + " ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, label+" ID is required")
		return 0, false
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		log.Warn("invalid "+strings.ToLower(label)+" ID format",
			slog.String("param_name", paramName),
			slog.String("value", pathParam))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid "+strings.ToLower(label)+" ID format")
		return 0, false
	}

	return id, true
}

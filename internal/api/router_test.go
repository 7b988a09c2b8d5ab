package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taskwall/taskwall/internal/memstore"
)

// newTestLogger returns a logger that swallows its output so handler tests
// stay quiet.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
}

// newTestRouter mounts every handler on a chi router laid out like the
// production one, backed by a fresh in-memory store.
func newTestRouter(t *testing.T) (*chi.Mux, *memstore.Store) {
	t.Helper()

	s := memstore.New()
	log := newTestLogger()

	todoHandler := NewTodoHandler(s.Todos(), log)
	userHandler := NewUserHandler(s.Users(), log)
	columnHandler := NewColumnHandler(s.Columns(), log)
	taskHandler := NewTaskHandler(s.Tasks(), log)
	healthHandler := NewHealthHandler(nil, log)

	r := chi.NewRouter()
	r.Get("/", Root)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(api chi.Router) {
		api.Route("/todos", func(rt chi.Router) {
			rt.Post("/", todoHandler.Create)
			rt.Get("/", todoHandler.List)
			rt.Get("/{id}", todoHandler.Get)
			rt.Put("/{id}", todoHandler.Update)
			rt.Delete("/{id}", todoHandler.Delete)
			rt.Patch("/{id}/complete", todoHandler.Complete)
			rt.Patch("/{id}/incomplete", todoHandler.Incomplete)
		})

		api.Route("/users", func(rt chi.Router) {
			rt.Post("/", userHandler.Create)
			rt.Get("/", userHandler.List)
			rt.Get("/{id}", userHandler.Get)
			rt.Put("/{id}", userHandler.Update)
			rt.Delete("/{id}", userHandler.Delete)
		})

		api.Route("/columns", func(rt chi.Router) {
			rt.Post("/", columnHandler.Create)
			rt.Get("/", columnHandler.List)
			rt.Get("/{id}", columnHandler.Get)
			rt.Put("/{id}", columnHandler.Update)
			rt.Delete("/{id}", columnHandler.Delete)
			rt.Patch("/{id}/reorder", columnHandler.Reorder)
		})

		api.Route("/tasks", func(rt chi.Router) {
			rt.Post("/", taskHandler.Create)
			rt.Get("/", taskHandler.List)
			rt.Get("/columns/{columnID}/tasks", taskHandler.ListByColumn)
			rt.Get("/{id}", taskHandler.Get)
			rt.Put("/{id}", taskHandler.Update)
			rt.Delete("/{id}", taskHandler.Delete)
			rt.Patch("/{id}/reorder", taskHandler.Reorder)
			rt.Patch("/{id}/move", taskHandler.Move)
		})
	})

	return r, s
}

// doRequest runs one request against the router. A string body is sent raw
// (for malformed JSON cases); anything else is marshaled first.
func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeResponse unmarshals the recorded body into out.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// errorMessage pulls the "error" field out of an error response body.
func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	msg, _ := resp["error"].(string)
	return msg
}

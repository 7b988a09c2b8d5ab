package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestWithPathParam builds a request whose chi route context carries a
// single path parameter, the way the router would populate it.
func requestWithPathParam(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	if value != "" {
		rctx.URLParams.Add(name, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathID(t *testing.T) {
	tests := []struct {
		name       string
		paramValue string
		expectErr  bool
		expectedID int64
	}{
		{
			name:       "valid ID",
			paramValue: "42",
			expectedID: 42,
		},
		{
			name:       "large ID",
			paramValue: "9007199254740993",
			expectedID: 9007199254740993,
		},
		{
			name:       "missing parameter",
			paramValue: "",
			expectErr:  true,
		},
		{
			name:       "not a number",
			paramValue: "abc",
			expectErr:  true,
		},
		{
			name:       "trailing garbage",
			paramValue: "42x",
			expectErr:  true,
		},
		{
			name:       "zero is rejected",
			paramValue: "0",
			expectErr:  true,
		},
		{
			name:       "negative is rejected",
			paramValue: "-7",
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestWithPathParam("id", tt.paramValue)

			id, err := getPathID(req, "id")

			if tt.expectErr {
				assert.Error(t, err)
				assert.Zero(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestHandlePathID(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("valid ID passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := requestWithPathParam("id", "7")

		id, ok := handlePathID(w, req, "id", "Task", log)

		require.True(t, ok)
		assert.Equal(t, int64(7), id)
		// Nothing was written on the success path.
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("missing parameter writes 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := requestWithPathParam("id", "")

		_, ok := handlePathID(w, req, "id", "Task", log)

		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Task ID is required")
	})

	t.Run("malformed parameter writes 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := requestWithPathParam("id", "not-a-number")

		_, ok := handlePathID(w, req, "id", "Column", log)

		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid column ID format")
	})

	t.Run("nil logger falls back to the context logger", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := requestWithPathParam("id", "abc")

		assert.NotPanics(t, func() {
			_, ok := handlePathID(w, req, "id", "Task", nil)
			assert.False(t, ok)
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

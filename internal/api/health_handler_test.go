package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name           string
		pinger         Pinger
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no_database",
			pinger:         nil,
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
		{
			name:           "database_reachable",
			pinger:         &fakePinger{},
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
		{
			name:           "database_down",
			pinger:         &fakePinger{err: errors.New("connection refused")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.pinger, newTestLogger())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			handler.Check(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp map[string]string
			decodeResponse(t, w, &resp)
			assert.Equal(t, tt.expectedBody, resp["status"])
		})
	}
}

func TestRootWelcome(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	decodeResponse(t, w, &resp)
	assert.Equal(t, "Welcome to Taskwall API", resp["message"])
}

func TestNewHealthHandler_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewHealthHandler(nil, nil)
	})
}

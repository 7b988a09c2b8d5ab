package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createColumn posts a column and returns its response.
func createColumn(t *testing.T, router http.Handler, title string, order *int) ColumnResponse {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/columns/",
		CreateColumnRequest{Title: title, Order: order})
	require.Equal(t, http.StatusCreated, w.Code, "creating column %q: %s", title, w.Body.String())
	var created ColumnResponse
	decodeResponse(t, w, &created)
	return created
}

// boardTitles lists the columns and asserts the board is dense before
// returning the titles in board order.
func boardTitles(t *testing.T, router http.Handler) []string {
	t.Helper()
	w := doRequest(t, router, http.MethodGet, "/api/columns/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var columns []ColumnResponse
	decodeResponse(t, w, &columns)

	titles := make([]string, 0, len(columns))
	for i, c := range columns {
		require.Equal(t, i, c.Order, "column %q out of place", c.Title)
		titles = append(titles, c.Title)
	}
	return titles
}

func TestColumnHandler_CreateAppendsAndInserts(t *testing.T) {
	router, _ := newTestRouter(t)

	createColumn(t, router, "Todo", nil)
	createColumn(t, router, "Done", nil)
	assert.Equal(t, []string{"Todo", "Done"}, boardTitles(t, router))

	// Insert in the middle shifts Done up.
	one := 1
	created := createColumn(t, router, "In Progress", &one)
	assert.Equal(t, 1, created.Order)
	assert.Equal(t, []string{"Todo", "In Progress", "Done"}, boardTitles(t, router))

	// Past-the-tail order clamps to an append.
	big := 99
	created = createColumn(t, router, "Archive", &big)
	assert.Equal(t, 3, created.Order)
	assert.Equal(t, []string{"Todo", "In Progress", "Done", "Archive"}, boardTitles(t, router))
}

func TestColumnHandler_ReorderMovesDownAndShifts(t *testing.T) {
	router, _ := newTestRouter(t)

	ids := map[string]int64{}
	for _, title := range []string{"A", "B", "C", "D"} {
		ids[title] = createColumn(t, router, title, nil).ID
	}

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/columns/%d/reorder", ids["D"]),
		ReorderColumnRequest{ColumnID: ids["D"], NewOrder: 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var moved ColumnResponse
	decodeResponse(t, w, &moved)
	assert.Equal(t, 1, moved.Order)
	assert.Equal(t, []string{"A", "D", "B", "C"}, boardTitles(t, router))

	// Moving it back restores the original board.
	w = doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/columns/%d/reorder", ids["D"]),
		ReorderColumnRequest{ColumnID: ids["D"], NewOrder: 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"A", "B", "C", "D"}, boardTitles(t, router))
}

func TestColumnHandler_ReorderIDMismatch(t *testing.T) {
	router, _ := newTestRouter(t)

	a := createColumn(t, router, "A", nil)
	b := createColumn(t, router, "B", nil)

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/columns/%d/reorder", a.ID),
		ReorderColumnRequest{ColumnID: b.ID, NewOrder: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Column ID in body does not match URL path", errorMessage(t, w))

	// Nothing moved.
	assert.Equal(t, []string{"A", "B"}, boardTitles(t, router))
}

func TestColumnHandler_ReorderNoOps(t *testing.T) {
	router, _ := newTestRouter(t)

	a := createColumn(t, router, "A", nil)
	createColumn(t, router, "B", nil)

	// Reorder to the current position.
	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/columns/%d/reorder", a.ID),
		ReorderColumnRequest{ColumnID: a.ID, NewOrder: 0})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"A", "B"}, boardTitles(t, router))

	// Past-the-tail reorder clamps to the last slot.
	w = doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/columns/%d/reorder", a.ID),
		ReorderColumnRequest{ColumnID: a.ID, NewOrder: 99})
	require.Equal(t, http.StatusOK, w.Code)
	var moved ColumnResponse
	decodeResponse(t, w, &moved)
	assert.Equal(t, 1, moved.Order)
	assert.Equal(t, []string{"B", "A"}, boardTitles(t, router))
}

func TestColumnHandler_UpdateOrderRepositions(t *testing.T) {
	router, _ := newTestRouter(t)

	createColumn(t, router, "A", nil)
	b := createColumn(t, router, "B", nil)
	createColumn(t, router, "C", nil)

	title := "B2"
	zero := 0
	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/columns/%d", b.ID),
		UpdateColumnRequest{Title: &title, Order: &zero})
	require.Equal(t, http.StatusOK, w.Code)

	var updated ColumnResponse
	decodeResponse(t, w, &updated)
	assert.Equal(t, "B2", updated.Title)
	assert.Equal(t, 0, updated.Order)
	assert.Equal(t, []string{"B2", "A", "C"}, boardTitles(t, router))
}

func TestColumnHandler_DeleteClosesGapAndCascades(t *testing.T) {
	router, _ := newTestRouter(t)

	createColumn(t, router, "A", nil)
	b := createColumn(t, router, "B", nil)
	createColumn(t, router, "C", nil)

	for _, title := range []string{"task one", "task two"} {
		w := doRequest(t, router, http.MethodPost, "/api/tasks/",
			CreateTaskRequest{Title: title, ColumnID: b.ID})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/columns/%d", b.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"A", "C"}, boardTitles(t, router))

	// The column's tasks went with it.
	w = doRequest(t, router, http.MethodGet, "/api/tasks/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []TaskResponse
	decodeResponse(t, w, &tasks)
	assert.Empty(t, tasks)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/tasks/columns/%d/tasks", b.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestColumnHandler_NotFoundAndBadParams(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/columns/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Column not found", errorMessage(t, w))

	w = doRequest(t, router, http.MethodPatch, "/api/columns/42/reorder",
		ReorderColumnRequest{ColumnID: 42, NewOrder: 0})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/columns/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid column ID format", errorMessage(t, w))

	w = doRequest(t, router, http.MethodPost, "/api/columns/", CreateColumnRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "Invalid Title")
}

func TestColumnHandler_NegativeOrderRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	neg := -1
	w := doRequest(t, router, http.MethodPost, "/api/columns/",
		CreateColumnRequest{Title: "A", Order: &neg})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	a := createColumn(t, router, "A", nil)
	w = doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/columns/%d/reorder", a.ID),
		ReorderColumnRequest{ColumnID: a.ID, NewOrder: -2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

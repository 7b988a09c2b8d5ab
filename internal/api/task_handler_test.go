package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTask posts a task and returns its response.
func createTask(t *testing.T, router http.Handler, title string, columnID int64, order *int) TaskResponse {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/tasks/",
		CreateTaskRequest{Title: title, ColumnID: columnID, Order: order})
	require.Equal(t, http.StatusCreated, w.Code, "creating task %q: %s", title, w.Body.String())
	var created TaskResponse
	decodeResponse(t, w, &created)
	return created
}

// columnTaskTitles lists one column's tasks and asserts they are dense before
// returning the titles in position order.
func columnTaskTitles(t *testing.T, router http.Handler, columnID int64) []string {
	t.Helper()
	w := doRequest(t, router, http.MethodGet,
		fmt.Sprintf("/api/tasks/columns/%d/tasks", columnID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tasks []TaskResponse
	decodeResponse(t, w, &tasks)

	titles := make([]string, 0, len(tasks))
	for i, task := range tasks {
		require.Equal(t, i, task.Order, "task %q out of place", task.Title)
		require.Equal(t, columnID, task.ColumnID)
		titles = append(titles, task.Title)
	}
	return titles
}

func TestTaskHandler_CreateAppendsAndInserts(t *testing.T) {
	router, _ := newTestRouter(t)
	col := createColumn(t, router, "Todo", nil)

	first := createTask(t, router, "first", col.ID, nil)
	assert.Equal(t, 0, first.Order)
	second := createTask(t, router, "second", col.ID, nil)
	assert.Equal(t, 1, second.Order)

	zero := 0
	inserted := createTask(t, router, "urgent", col.ID, &zero)
	assert.Equal(t, 0, inserted.Order)
	assert.Equal(t, []string{"urgent", "first", "second"}, columnTaskTitles(t, router, col.ID))
}

func TestTaskHandler_CreateUnknownColumn(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/tasks/",
		CreateTaskRequest{Title: "orphan", ColumnID: 99})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Column with ID 99 not found", errorMessage(t, w))
}

func TestTaskHandler_CreateValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	col := createColumn(t, router, "Todo", nil)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedErrMsg string
	}{
		{
			name:           "missing_title",
			requestBody:    CreateTaskRequest{ColumnID: col.ID},
			expectedErrMsg: "Invalid Title",
		},
		{
			name:           "missing_column",
			requestBody:    CreateTaskRequest{Title: "x"},
			expectedErrMsg: "Invalid ColumnID",
		},
		{
			name:           "invalid_json",
			requestBody:    `{"title": "broken`,
			expectedErrMsg: "Invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/tasks/", tt.requestBody)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorMessage(t, w), tt.expectedErrMsg)
		})
	}
}

func TestTaskHandler_ReorderWithinColumn(t *testing.T) {
	router, _ := newTestRouter(t)
	col := createColumn(t, router, "Todo", nil)

	ids := map[string]int64{}
	for _, title := range []string{"A", "B", "C", "D"} {
		ids[title] = createTask(t, router, title, col.ID, nil).ID
	}

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/reorder", ids["D"]),
		ReorderTaskRequest{TaskID: ids["D"], NewOrder: 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var moved TaskResponse
	decodeResponse(t, w, &moved)
	assert.Equal(t, 1, moved.Order)
	assert.Equal(t, []string{"A", "D", "B", "C"}, columnTaskTitles(t, router, col.ID))
}

func TestTaskHandler_ReorderIDMismatch(t *testing.T) {
	router, _ := newTestRouter(t)
	col := createColumn(t, router, "Todo", nil)

	a := createTask(t, router, "A", col.ID, nil)
	b := createTask(t, router, "B", col.ID, nil)

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/reorder", a.ID),
		ReorderTaskRequest{TaskID: b.ID, NewOrder: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Task ID in body does not match URL path", errorMessage(t, w))
	assert.Equal(t, []string{"A", "B"}, columnTaskTitles(t, router, col.ID))
}

func TestTaskHandler_MoveBetweenColumns(t *testing.T) {
	router, _ := newTestRouter(t)
	colX := createColumn(t, router, "X", nil)
	colY := createColumn(t, router, "Y", nil)

	a := createTask(t, router, "A", colX.ID, nil)
	createTask(t, router, "B", colX.ID, nil)
	createTask(t, router, "C", colY.ID, nil)

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/move", a.ID),
		MoveTaskRequest{TaskID: a.ID, TargetColumnID: colY.ID, NewOrder: 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var moved TaskResponse
	decodeResponse(t, w, &moved)
	assert.Equal(t, colY.ID, moved.ColumnID)
	assert.Equal(t, 0, moved.Order)

	// Source closed its gap; target made room.
	assert.Equal(t, []string{"B"}, columnTaskTitles(t, router, colX.ID))
	assert.Equal(t, []string{"A", "C"}, columnTaskTitles(t, router, colY.ID))
}

func TestTaskHandler_MoveToOwnColumnRepositions(t *testing.T) {
	router, _ := newTestRouter(t)
	col := createColumn(t, router, "Todo", nil)

	createTask(t, router, "A", col.ID, nil)
	b := createTask(t, router, "B", col.ID, nil)
	createTask(t, router, "C", col.ID, nil)

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/move", b.ID),
		MoveTaskRequest{TaskID: b.ID, TargetColumnID: col.ID, NewOrder: 2})
	require.Equal(t, http.StatusOK, w.Code)

	var moved TaskResponse
	decodeResponse(t, w, &moved)
	assert.Equal(t, col.ID, moved.ColumnID)
	assert.Equal(t, 2, moved.Order)
	assert.Equal(t, []string{"A", "C", "B"}, columnTaskTitles(t, router, col.ID))
}

func TestTaskHandler_MoveUnknownTarget(t *testing.T) {
	router, _ := newTestRouter(t)
	col := createColumn(t, router, "Todo", nil)
	a := createTask(t, router, "A", col.ID, nil)

	w := doRequest(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/move", a.ID),
		MoveTaskRequest{TaskID: a.ID, TargetColumnID: 99, NewOrder: 0})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Column with ID 99 not found", errorMessage(t, w))

	// The task stayed put.
	assert.Equal(t, []string{"A"}, columnTaskTitles(t, router, col.ID))
}

func TestTaskHandler_UpdateOrderRepositions(t *testing.T) {
	router, _ := newTestRouter(t)
	col := createColumn(t, router, "Todo", nil)

	a := createTask(t, router, "A", col.ID, nil)
	createTask(t, router, "B", col.ID, nil)
	createTask(t, router, "C", col.ID, nil)

	desc := "now last"
	two := 2
	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/api/tasks/%d", a.ID),
		UpdateTaskRequest{Description: &desc, Order: &two})
	require.Equal(t, http.StatusOK, w.Code)

	var updated TaskResponse
	decodeResponse(t, w, &updated)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "now last", updated.Description)
	assert.Equal(t, 2, updated.Order)
	assert.Equal(t, []string{"B", "C", "A"}, columnTaskTitles(t, router, col.ID))
}

func TestTaskHandler_DeleteClosesGap(t *testing.T) {
	router, _ := newTestRouter(t)
	col := createColumn(t, router, "Todo", nil)

	createTask(t, router, "A", col.ID, nil)
	b := createTask(t, router, "B", col.ID, nil)
	createTask(t, router, "C", col.ID, nil)

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", b.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"A", "C"}, columnTaskTitles(t, router, col.ID))

	w = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", b.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", errorMessage(t, w))
}

func TestTaskHandler_ListOrdersByColumnThenPosition(t *testing.T) {
	router, _ := newTestRouter(t)
	colX := createColumn(t, router, "X", nil)
	colY := createColumn(t, router, "Y", nil)

	createTask(t, router, "x0", colX.ID, nil)
	createTask(t, router, "y0", colY.ID, nil)
	createTask(t, router, "x1", colX.ID, nil)

	w := doRequest(t, router, http.MethodGet, "/api/tasks/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []TaskResponse
	decodeResponse(t, w, &tasks)
	require.Len(t, tasks, 3)
	assert.Equal(t, "x0", tasks[0].Title)
	assert.Equal(t, "x1", tasks[1].Title)
	assert.Equal(t, "y0", tasks[2].Title)
}

func TestTaskHandler_ListByColumnUnknown(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/tasks/columns/99/tasks", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Column not found", errorMessage(t, w))

	w = doRequest(t, router, http.MethodGet, "/api/tasks/columns/abc/tasks", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid column ID format", errorMessage(t, w))
}

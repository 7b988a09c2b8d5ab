package api

import (
	"time"
)

// Common request/response structures

// CreateTodoRequest defines the payload for the todo creation endpoint.
type CreateTodoRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

// UpdateTodoRequest defines the payload for the todo update endpoint. Absent
// fields are left unchanged.
type UpdateTodoRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Completed   *bool   `json:"completed"`
}

// TodoResponse represents the response data for a todo.
type TodoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateUserRequest defines the payload for the user creation endpoint.
type CreateUserRequest struct {
	Name      string `json:"name"       validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

// UpdateUserRequest defines the payload for the user update endpoint. Absent
// fields are left unchanged.
type UpdateUserRequest struct {
	Name      *string `json:"name"       validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateColumnRequest defines the payload for the column creation endpoint.
// A nil Order appends the column at the end of the board.
type CreateColumnRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Order *int   `json:"order" validate:"omitempty,min=0"`
}

// UpdateColumnRequest defines the payload for the column update endpoint.
// Absent fields are left unchanged; a present Order repositions the column.
type UpdateColumnRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Order *int    `json:"order" validate:"omitempty,min=0"`
}

// ReorderColumnRequest defines the payload for the column reorder endpoint.
// ColumnID must match the column addressed by the URL path.
type ReorderColumnRequest struct {
	ColumnID int64 `json:"column_id" validate:"required,gt=0"`
	NewOrder int   `json:"new_order" validate:"min=0"`
}

// ColumnResponse represents the response data for a column.
type ColumnResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
// A nil Order appends the task at the end of its column.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	ColumnID    int64  `json:"column_id"   validate:"required,gt=0"`
	Order       *int   `json:"order"       validate:"omitempty,min=0"`
}

// UpdateTaskRequest defines the payload for the task update endpoint. Absent
// fields are left unchanged; a present Order repositions the task within its
// current column.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Order       *int    `json:"order"       validate:"omitempty,min=0"`
}

// ReorderTaskRequest defines the payload for the task reorder endpoint.
// TaskID must match the task addressed by the URL path.
type ReorderTaskRequest struct {
	TaskID   int64 `json:"task_id"   validate:"required,gt=0"`
	NewOrder int   `json:"new_order" validate:"min=0"`
}

// MoveTaskRequest defines the payload for the task move endpoint. TaskID must
// match the task addressed by the URL path.
type MoveTaskRequest struct {
	TaskID         int64 `json:"task_id"          validate:"required,gt=0"`
	TargetColumnID int64 `json:"target_column_id" validate:"required,gt=0"`
	NewOrder       int   `json:"new_order"        validate:"min=0"`
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ColumnID    int64     `json:"column_id"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

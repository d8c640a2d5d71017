package dto

import (
	"main/model"
	"time"
)

type CreateTodoRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags"`
	DueDate     string         `json:"dueDate"`
	Notes       string         `json:"notes"`
}

// UpdateTodoRequest uses pointers so absent fields are left untouched.
type UpdateTodoRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Completed   *bool           `json:"completed"`
	Priority    *model.Priority `json:"priority"`
	Category    *string         `json:"category"`
	Tags        []string        `json:"tags"`
	DueDate     *string         `json:"dueDate"`
	Notes       *string         `json:"notes"`
	IsArchived  *bool           `json:"isArchived"`
}

type TodoResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Completed   bool               `json:"completed"`
	Priority    model.Priority     `json:"priority"`
	Category    string             `json:"category"`
	Tags        []string           `json:"tags,omitempty"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	User        string             `json:"user"`
	Position    int64              `json:"position"`
	IsArchived  bool               `json:"isArchived"`
	Attachments []model.Attachment `json:"attachments,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	IsOverdue   bool               `json:"isOverdue"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func ToTodoResponse(todo *model.Todo) TodoResponse {
	response := TodoResponse{
		ID:          todo.TodoID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		Priority:    todo.Priority,
		Category:    todo.Category,
		Tags:        todo.Tags,
		User:        todo.UserID,
		Position:    todo.Position,
		IsArchived:  todo.IsArchived,
		Attachments: todo.Attachments,
		Notes:       todo.Notes,
		IsOverdue:   todo.IsOverdue(time.Now()),
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}

	if !todo.DueDate.IsZero() {
		response.DueDate = &todo.DueDate
	}
	if !todo.CompletedAt.IsZero() {
		response.CompletedAt = &todo.CompletedAt
	}

	return response
}

func ToTodoResponses(todos []*model.Todo) []TodoResponse {
	responses := make([]TodoResponse, len(todos))
	for i, todo := range todos {
		responses[i] = ToTodoResponse(todo)
	}
	return responses
}

type TodoListResponse struct {
	Todos      []TodoResponse `json:"todos"`
	Pagination Pagination     `json:"pagination"`
}

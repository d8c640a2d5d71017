package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxCategoryLength    = 50
	MaxNotesLength       = 500
)

// ValidationError reports a rejected field; the request is rejected
// with no partial write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type TodoService struct {
	repo     *repository.TodosRepo
	counters *repository.CountersRepo
}

func NewTodoService(repo *repository.TodosRepo, counters *repository.CountersRepo) *TodoService {
	return &TodoService{repo: repo, counters: counters}
}

// ListTodos returns one page of a user's todos plus the total match
// count for the pagination envelope. An empty userID lists across all
// owners (admin listing).
func (svc *TodoService) ListTodos(ctx context.Context, userID string, filter repository.TodoFilter, sortBy, sortOrder string, page, limit int) ([]*model.Todo, int64, error) {
	query := filter.Query(userID)
	sort := repository.SortSpec(sortBy, sortOrder)
	return svc.repo.ListTodos(ctx, query, sort, page, limit)
}

// GetUserTodos returns every todo for a user in manual order.
func (svc *TodoService) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	return svc.repo.GetUserTodos(ctx, userID)
}

// CreateTodo validates input, fills defaults, assigns the next manual
// position for the owner, and inserts the todo.
func (svc *TodoService) CreateTodo(ctx context.Context, todo *model.Todo) error {
	if todo.UserID == "" {
		return &ValidationError{Field: "user", Message: "user is required"}
	}
	if err := ValidateTodoFields(todo); err != nil {
		return err
	}

	ApplyTodoDefaults(todo)
	todo.Tags = NormalizeTags(todo.Tags)

	position, err := svc.counters.NextPosition(ctx, todo.UserID)
	if err != nil {
		return err
	}
	todo.Position = position

	now := time.Now()
	if todo.TodoID == "" {
		todo.TodoID = uuid.New().String()
	}
	todo.CreatedAt = now
	todo.UpdatedAt = now

	// A todo can never start out completed
	todo.Completed = false
	todo.CompletedAt = time.Time{}

	if err := svc.repo.CreateTodo(ctx, todo); err != nil {
		return err
	}
	utils.TrackTodoOperation("create")
	return nil
}

// GetTodo fetches one todo scoped to its owner.
func (svc *TodoService) GetTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	todo, err := svc.repo.GetTodoByID(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, repository.ErrTodoNotFound
	}
	return todo, nil
}

// TodoUpdate carries the mutable fields of a partial update. Nil
// pointers leave the stored value untouched; DueDate set to the zero
// time clears the stored due date.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *model.Priority
	Category    *string
	Tags        []string
	DueDate     *time.Time
	Notes       *string
	IsArchived  *bool
}

// UpdateTodo validates and applies a partial update, returning the
// updated todo. userID "" lets an admin update any owner's todo.
func (svc *TodoService) UpdateTodo(ctx context.Context, todoID, userID string, updates *TodoUpdate) (*model.Todo, error) {
	existing, err := svc.GetTodo(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}

	set, err := BuildUpdateSet(updates)
	if err != nil {
		return nil, err
	}

	if len(set) > 0 {
		set["updated_at"] = time.Now()
		if err := svc.repo.UpdateTodo(ctx, todoID, userID, set); err != nil {
			return nil, err
		}
	}

	// Completion transitions manage completed_at atomically.
	if updates.Completed != nil && *updates.Completed != existing.Completed {
		if err := svc.repo.SetCompletion(ctx, todoID, userID, *updates.Completed, time.Now()); err != nil {
			return nil, err
		}
	}

	utils.TrackTodoOperation("update")
	return svc.GetTodo(ctx, todoID, userID)
}

// ToggleTodo flips completion, setting completed_at on complete and
// clearing it on un-complete.
func (svc *TodoService) ToggleTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	existing, err := svc.GetTodo(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	completed := !existing.Completed
	if err := svc.repo.SetCompletion(ctx, todoID, userID, completed, now); err != nil {
		return nil, err
	}

	existing.Completed = completed
	existing.UpdatedAt = now
	if completed {
		existing.CompletedAt = now
	} else {
		existing.CompletedAt = time.Time{}
	}

	utils.TrackTodoOperation("toggle")
	return existing, nil
}

// DeleteTodo hard-deletes one todo; there is no tombstone.
func (svc *TodoService) DeleteTodo(ctx context.Context, todoID, userID string) error {
	if err := svc.repo.DeleteTodo(ctx, todoID, userID); err != nil {
		return err
	}
	utils.TrackTodoOperation("delete")
	return nil
}

// Categories lists the distinct category names a user has stored.
func (svc *TodoService) Categories(ctx context.Context, userID string) ([]string, error) {
	return svc.repo.DistinctCategories(ctx, userID)
}

// ApplyTodoDefaults fills the priority and category defaults on
// creation.
func ApplyTodoDefaults(todo *model.Todo) {
	if todo.Priority == "" {
		todo.Priority = model.PriorityMedium
	}
	if strings.TrimSpace(todo.Category) == "" {
		todo.Category = model.DefaultCategory
	}
}

// NormalizeTags trims each tag and drops blank entries.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}

// ValidateTodoFields checks the length and enum constraints shared by
// create and update.
func ValidateTodoFields(todo *model.Todo) error {
	if strings.TrimSpace(todo.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(todo.Title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength)}
	}
	if len(todo.Description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("description cannot exceed %d characters", MaxDescriptionLength)}
	}
	if len(todo.Category) > MaxCategoryLength {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("category cannot exceed %d characters", MaxCategoryLength)}
	}
	if len(todo.Notes) > MaxNotesLength {
		return &ValidationError{Field: "notes", Message: fmt.Sprintf("notes cannot exceed %d characters", MaxNotesLength)}
	}
	if todo.Priority != "" {
		if err := ValidatePriority(todo.Priority); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePriority rejects values outside the four-level enum.
func ValidatePriority(p model.Priority) error {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent:
		return nil
	default:
		return &ValidationError{Field: "priority", Message: "priority must be low, medium, high, or urgent"}
	}
}

// BuildUpdateSet validates a partial update and translates it into a
// store-level $set document.
func BuildUpdateSet(updates *TodoUpdate) (bson.M, error) {
	set := bson.M{}

	if updates.Title != nil {
		title := strings.TrimSpace(*updates.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Message: "title is required"}
		}
		if len(title) > MaxTitleLength {
			return nil, &ValidationError{Field: "title", Message: fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength)}
		}
		set["title"] = title
	}
	if updates.Description != nil {
		if len(*updates.Description) > MaxDescriptionLength {
			return nil, &ValidationError{Field: "description", Message: fmt.Sprintf("description cannot exceed %d characters", MaxDescriptionLength)}
		}
		set["description"] = *updates.Description
	}
	if updates.Priority != nil {
		if err := ValidatePriority(*updates.Priority); err != nil {
			return nil, err
		}
		set["priority"] = *updates.Priority
	}
	if updates.Category != nil {
		category := strings.TrimSpace(*updates.Category)
		if len(category) > MaxCategoryLength {
			return nil, &ValidationError{Field: "category", Message: fmt.Sprintf("category cannot exceed %d characters", MaxCategoryLength)}
		}
		if category == "" {
			category = model.DefaultCategory
		}
		set["category"] = category
	}
	if updates.Tags != nil {
		set["tags"] = NormalizeTags(updates.Tags)
	}
	if updates.DueDate != nil {
		if updates.DueDate.IsZero() {
			set["due_date"] = nil
		} else {
			set["due_date"] = *updates.DueDate
		}
	}
	if updates.Notes != nil {
		if len(*updates.Notes) > MaxNotesLength {
			return nil, &ValidationError{Field: "notes", Message: fmt.Sprintf("notes cannot exceed %d characters", MaxNotesLength)}
		}
		set["notes"] = *updates.Notes
	}
	if updates.IsArchived != nil {
		set["is_archived"] = *updates.IsArchived
	}

	return set, nil
}

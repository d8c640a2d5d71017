package handler

import (
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	service *usecase.TodoService
}

func NewTodoHandler(service *usecase.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// listParams reads the shared filter/pagination/sort query parameters.
func listParams(c *gin.Context) (repository.TodoFilter, string, string, int, int) {
	filter := repository.TodoFilter{
		Completed: parseCompleted(c.Query("completed")),
		Category:  c.Query("category"),
		Priority:  model.Priority(c.Query("priority")),
		Search:    c.Query("search"),
	}
	sortBy := c.Query("sortBy")
	sortOrder := c.Query("sortOrder")
	page := parsePositiveInt(c.Query("page"), defaultPage)
	limit := parsePositiveInt(c.Query("limit"), defaultLimit)
	return filter, sortBy, sortOrder, page, limit
}

func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	filter, sortBy, sortOrder, page, limit := listParams(c)

	todos, total, err := h.service.ListTodos(c.Request.Context(), userID, filter, sortBy, sortOrder, page, limit)
	if err != nil {
		respondError(c, err, "Server error while fetching todos")
		return
	}

	utils.Success(c, dto.TodoListResponse{
		Todos:      dto.ToTodoResponses(todos),
		Pagination: dto.NewPagination(total, page, limit),
	})
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	todo := &model.Todo{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Tags:        req.Tags,
		Notes:       req.Notes,
	}

	if req.DueDate != "" {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			respondError(c, err, "Server error while creating todo")
			return
		}
		todo.DueDate = dueDate
	}

	if err := h.service.CreateTodo(c.Request.Context(), todo); err != nil {
		respondError(c, err, "Server error while creating todo")
		return
	}

	utils.Created(c, "Todo created successfully", dto.ToTodoResponse(todo))
}

func (h *TodoHandler) GetTodo(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	todo, err := h.service.GetTodo(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Server error while fetching todo")
		return
	}

	utils.Success(c, gin.H{"todo": dto.ToTodoResponse(todo)})
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updates, err := toTodoUpdate(&req)
	if err != nil {
		respondError(c, err, "Server error while updating todo")
		return
	}

	updated, err := h.service.UpdateTodo(c.Request.Context(), c.Param("id"), userID, updates)
	if err != nil {
		respondError(c, err, "Server error while updating todo")
		return
	}

	utils.Success(c, gin.H{"todo": dto.ToTodoResponse(updated)})
}

func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	updated, err := h.service.ToggleTodo(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Server error while toggling todo")
		return
	}

	message := "Todo marked as incomplete"
	if updated.Completed {
		message = "Todo completed"
	}
	utils.Success(c, gin.H{"message": message, "todo": dto.ToTodoResponse(updated)})
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTodo(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Server error while deleting todo")
		return
	}

	utils.Success(c, gin.H{"message": "Todo deleted successfully"})
}

func (h *TodoHandler) GetCategories(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	categories, err := h.service.Categories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Server error while fetching categories")
		return
	}

	utils.Success(c, gin.H{"categories": categories})
}

// GetNotifications derives the due/overdue digest from the caller's
// current todo list; nothing is stored server-side.
func (h *TodoHandler) GetNotifications(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	todos, err := h.service.GetUserTodos(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Server error while deriving notifications")
		return
	}

	digest := usecase.DeriveNotifications(todos, time.Now())
	utils.Success(c, gin.H{
		"notifications": dto.ToTodoResponses(digest.Todos),
		"overdueCount":  digest.OverdueCount,
		"dueTodayCount": digest.DueTodayCount,
	})
}

// toTodoUpdate converts the wire request, parsing the due date string.
// An explicit empty string clears the stored due date.
func toTodoUpdate(req *dto.UpdateTodoRequest) (*usecase.TodoUpdate, error) {
	updates := &usecase.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		Category:    req.Category,
		Tags:        req.Tags,
		Notes:       req.Notes,
		IsArchived:  req.IsArchived,
	}

	if req.DueDate != nil {
		if *req.DueDate == "" {
			cleared := time.Time{}
			updates.DueDate = &cleared
		} else {
			parsed, err := parseDueDate(*req.DueDate)
			if err != nil {
				return nil, err
			}
			updates.DueDate = &parsed
		}
	}

	return updates, nil
}

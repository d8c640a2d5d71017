package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin *usecase.AdminService
	todos *usecase.TodoService
}

func NewAdminHandler(admin *usecase.AdminService, todos *usecase.TodoService) *AdminHandler {
	return &AdminHandler{admin: admin, todos: todos}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Server error while listing users")
		return
	}

	utils.Success(c, gin.H{"users": dto.ToUserResponses(users)})
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	actorID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid role")
		return
	}

	updated, err := h.admin.UpdateUserRole(c.Request.Context(), actorID, c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err, "Server error while updating role")
		return
	}

	utils.Success(c, gin.H{"message": "Role updated", "user": dto.ToUserResponse(updated)})
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Server error while fetching stats")
		return
	}

	utils.Success(c, gin.H{"stats": stats})
}

func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.admin.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err, "Server error while fetching analytics")
		return
	}

	utils.Success(c, analytics)
}

// ListTodos lists todos across all users; an optional userId query
// parameter narrows to one owner.
func (h *AdminHandler) ListTodos(c *gin.Context) {
	filter, sortBy, sortOrder, page, limit := listParams(c)

	todos, total, err := h.todos.ListTodos(c.Request.Context(), c.Query("userId"), filter, sortBy, sortOrder, page, limit)
	if err != nil {
		respondError(c, err, "Server error while listing todos")
		return
	}

	utils.Success(c, dto.TodoListResponse{
		Todos:      dto.ToTodoResponses(todos),
		Pagination: dto.NewPagination(total, page, limit),
	})
}

// ToggleTodo toggles any user's todo.
func (h *AdminHandler) ToggleTodo(c *gin.Context) {
	updated, err := h.todos.ToggleTodo(c.Request.Context(), c.Param("id"), "")
	if err != nil {
		respondError(c, err, "Server error while toggling todo")
		return
	}

	utils.Success(c, gin.H{"message": "Todo toggled", "todo": dto.ToTodoResponse(updated)})
}

// DeleteTodo deletes any user's todo.
func (h *AdminHandler) DeleteTodo(c *gin.Context) {
	if err := h.todos.DeleteTodo(c.Request.Context(), c.Param("id"), ""); err != nil {
		respondError(c, err, "Server error while deleting todo")
		return
	}

	utils.Success(c, gin.H{"message": "Todo deleted"})
}

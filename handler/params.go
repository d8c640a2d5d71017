package handler

import (
	"errors"
	"log"
	"strconv"
	"time"

	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// parsePositiveInt fails closed: non-numeric, missing, or non-positive
// values fall back to the default instead of erroring.
func parsePositiveInt(value string, defaultVal int) int {
	if value == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return defaultVal
	}
	return parsed
}

// parseCompleted reads the optional completed filter; only the literal
// strings "true" and "false" count as given.
func parseCompleted(value string) *bool {
	switch value {
	case "true":
		completed := true
		return &completed
	case "false":
		completed := false
		return &completed
	}
	return nil
}

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDueDate accepts the date formats clients send; anything else is
// a validation error naming the field.
func parseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, &usecase.ValidationError{Field: "dueDate", Message: "due date must be a valid date"}
}

// respondError maps service errors onto the response envelope. Unknown
// errors are logged and surfaced as a generic 500.
func respondError(c *gin.Context, err error, genericMessage string) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		utils.ValidationFailed(c, []utils.FieldError{
			{Field: validationErr.Field, Message: validationErr.Message},
		})
		return
	}

	var conflictErr *usecase.ConflictError
	if errors.As(err, &conflictErr) {
		utils.Conflict(c, "User already exists with this value", conflictErr.Fields)
		return
	}

	switch {
	case errors.Is(err, repository.ErrTodoNotFound):
		utils.NotFound(c, "Todo not found")
	case errors.Is(err, repository.ErrUserNotFound):
		utils.NotFound(c, "User not found")
	case errors.Is(err, usecase.ErrSelfDemotion):
		utils.BadRequest(c, "Admins cannot demote themselves")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.Unauthorized(c, "Invalid credentials")
	default:
		log.Printf("%s: %v", genericMessage, err)
		utils.InternalError(c, genericMessage)
	}
}

// authedUser returns the verified caller ID set by the auth middleware.
func authedUser(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return "", false
	}
	return userID.(string), true
}

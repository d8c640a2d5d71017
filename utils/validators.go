package utils

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("username", ValidateUsernameRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", ValidateUsernameRule)
	}
}

// ValidateUsernameRule allows letters, numbers, and underscores only.
func ValidateUsernameRule(fl validator.FieldLevel) bool {
	return ValidateUsername(fl.Field().String())
}

func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

package middleware

import (
	"main/model"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route group on the admin role carried in the
// verified token.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}
		if role != string(model.RoleAdmin) {
			utils.Forbidden(c, "Admins only")
			c.Abort()
			return
		}
		c.Next()
	}
}

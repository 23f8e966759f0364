package middleware

import (
	"github.com/rajnishk05/anaadyanta1/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CurrentUser resolves the session's stored user ID back into a full
// user and places it in the request context. A missing or unresolvable
// ID leaves the request anonymous rather than failing it.
func CurrentUser(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get("user_id").(uint); ok {
			if user, err := authService.GetUserByID(id); err == nil {
				c.Set("user", user)
			}
		}
		c.Next()
	}
}

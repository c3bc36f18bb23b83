package middleware

import (
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
)

// RequireProfile loads the authenticated caller's profile row once per
// request. Role comes from the users table only; a missing profile is a
// hard 404 rather than a defaulted role.
func RequireProfile(users user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		profile, err := users.GetProfile(c.Request.Context(), userID)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		c.Set("role", profile.Role)
		c.Set("full_name", profile.FullName)
		if profile.ManagerID != nil {
			c.Set("manager_id", *profile.ManagerID)
		}

		c.Next()
	}
}

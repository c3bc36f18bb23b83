package middleware

import (
	"strings"

	"leavedesk/internal/identity"
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authenticate resolves the caller through the identity resolver and
// stores the verified id and email in the request context. Everything
// downstream trusts only these values, never a client-supplied field.
func Authenticate(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cred identity.Credential

		authHeader := c.GetHeader("Authorization")
		if token, found := strings.CutPrefix(authHeader, "Bearer "); found {
			cred.BearerToken = token
		}

		if cred.BearerToken == "" {
			if cookie, err := c.Cookie("session_token"); err == nil {
				cred.SessionToken = cookie
			}
		}

		id, err := resolver.Resolve(c.Request.Context(), cred)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		c.Set("user_id", id.ID.String())
		c.Set("email", id.Email)

		ctx := contextutil.WithUserID(c.Request.Context(), id.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ur-campus-api/internal/access"
	"github.com/noah-isme/ur-campus-api/internal/models"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
	"github.com/noah-isme/ur-campus-api/pkg/response"
)

// Self lets a caller through when the :id route parameter is their own id.
const Self = "SELF"

// RBAC enforces role-based access control for routes through the access gate.
func RBAC(allowed ...string) gin.HandlerFunc {
	allowSelf := false
	roles := make([]models.UserRole, 0, len(allowed))
	for _, a := range allowed {
		if a == Self {
			allowSelf = true
			continue
		}
		roles = append(roles, models.UserRole(a))
	}

	return func(c *gin.Context) {
		state := SessionState(c)
		decision := access.Gate{}.Evaluate(roles, state, requestedPath(c))
		switch decision.Outcome {
		case access.OutcomeAllow:
			c.Next()
			return
		case access.OutcomeDenied:
			if allowSelf {
				if targetID := c.Param("id"); targetID != "" && targetID == state.Identity.ID {
					c.Next()
					return
				}
			}
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, decision.Message), map[string]interface{}{
				"redirect": decision.Redirect,
			})
		default:
			response.Error(c, appErrors.ErrUnauthorized, map[string]interface{}{
				"redirect": decision.Redirect,
				"from":     decision.From,
			})
		}
		c.Abort()
	}
}

// RequireRoles is a helper that accepts a list of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(allowed...)
}

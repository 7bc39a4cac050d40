package middleware

import (
	"net/http"

	"github.com/atlascrm/backend/internal/domain/identity"
	"github.com/atlascrm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireAction authorizes the request against the caller's role and grants.
// The decision is a pure evaluation of the JWT claims; no storage is hit.
func RequireAction(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		grants := identity.ParseGrants(GetJWTPermissions(c))

		decision := identity.Evaluate(role, grants, resource, action)
		if !decision.Authorized {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, decision.Reason))
			return
		}
		c.Next()
	}
}

// RequireAnyAction authorizes if any of the actions is granted on the resource
func RequireAnyAction(resource string, actions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		grants := identity.ParseGrants(GetJWTPermissions(c))

		decision := identity.EvaluateAny(role, grants, resource, actions...)
		if !decision.Authorized {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, decision.Reason))
			return
		}
		c.Next()
	}
}

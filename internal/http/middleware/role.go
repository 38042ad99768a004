package middleware

import (
	"net/http"

	"blogapi/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles is the role-based access control gate. It must run after
// Authenticate; a missing identity is treated as not authorized, never
// a panic. Each route supplies its own explicit allow-list, e.g.:
//
//	r.POST("/posts", RequireRoles(domain.RoleAdmin, domain.RoleEditor), handler)
//
// There is no hierarchy: ADMIN is not implicitly allowed where only
// EDITOR is listed.
func RequireRoles(allowedRoles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			abortError(c, http.StatusUnauthorized, "EntityNotAuthorized", domain.MsgNoToken)
			return
		}

		if _, ok := allowed[domain.Role(identity.Role)]; !ok {
			abortError(c, http.StatusForbidden, "EntityForbiddenAction", domain.MsgForbidden)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"context"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// principalKey is the key used to store the authenticated principal in the
// request context. Using a custom type prevents collisions.
const principalKey = contextKey("principal")

// GetPrincipalFromContext retrieves the authenticated principal from the Gin
// context. It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	if val, exists := c.Get(string(principalKey)); exists {
		if p, ok := val.(domain.Principal); ok {
			return p, true
		}
		return domain.Principal{}, false
	}
	// check the request context as well
	if val := c.Request.Context().Value(principalKey); val != nil {
		if p, ok := val.(domain.Principal); ok {
			return p, true
		}
	}
	return domain.Principal{}, false
}

// PrincipalFromCtx retrieves the principal from a standard context, for code
// that runs below the handler layer.
func PrincipalFromCtx(ctx context.Context) (domain.Principal, bool) {
	if val := ctx.Value(principalKey); val != nil {
		if p, ok := val.(domain.Principal); ok {
			return p, true
		}
	}
	return domain.Principal{}, false
}

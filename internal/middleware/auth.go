package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const ContextCaller = "caller"

type TokenParser interface {
	Parse(raw string) (identity.Caller, error)
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthenticated(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthenticated(c, "invalid_authorization_header")
			return
		}

		caller, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthenticated(c, "invalid_token")
			return
		}

		c.Set(ContextCaller, caller)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid bearer token is present
// and otherwise lets the request through anonymously.
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if caller, err := tokens.Parse(strings.TrimSpace(parts[1])); err == nil {
				c.Set(ContextCaller, caller)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := CallerFrom(c).RequireAdmin(); err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom returns the authenticated caller, or the zero Caller (which
// passes no permission check) when the route is unauthenticated.
func CallerFrom(c *gin.Context) identity.Caller {
	v, ok := c.Get(ContextCaller)
	if !ok {
		return identity.Caller{}
	}
	caller, _ := v.(identity.Caller)
	return caller
}

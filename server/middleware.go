package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/storefront/pkg/auth"
)

const principalKey = "principal"

// requireAuth verifies the bearer token and attaches the principal to the
// request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authorized, no token provided"})
			return
		}

		principal, err := s.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authorized, token failed"})
			return
		}

		c.Set(principalKey, *principal)
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !principalFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "not authorized as admin"})
			return
		}
		c.Next()
	}
}

// principalFrom returns the principal set by requireAuth. Routes without the
// middleware yield the zero principal, which passes no authorization check.
func principalFrom(c *gin.Context) auth.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Principal{}
}

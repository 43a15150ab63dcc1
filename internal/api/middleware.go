package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"order-service/internal/auth"
	"order-service/internal/util"

	"github.com/gin-gonic/gin"
)

const identityContextKey = "identity"

// Authenticate parses the bearer token, if present, and stores the caller
// identity in the request context. Requests without a token continue
// unauthenticated; route guards decide what that means.
func Authenticate(parser *auth.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		identity, err := parser.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// callerIdentity returns the authenticated identity, or nil.
func callerIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*auth.Identity)
	return identity
}

// requireRole aborts with 401 for anonymous callers and 403 for callers
// lacking all of the given roles.
func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := callerIdentity(c)
		if identity.Anonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, role := range roles {
			if identity.HasRole(role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// requirePolicy aborts with 401 for anonymous callers and 403 when the
// predicate denies.
func requirePolicy(check func(c *gin.Context, id *auth.Identity) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := callerIdentity(c)
		if identity.Anonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !check(c, identity) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"festa/services/auth"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key the resolved session is stored under.
const SessionKey = "session"

// SessionMiddleware resolves the bearer token into a typed session and
// aborts with 401 when there is none. Handlers downstream can rely on
// SessionKey being set.
func SessionMiddleware(authSvc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		sess, err := authSvc.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session placed by SessionMiddleware.
func CurrentSession(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(auth.Session)
	return sess, ok
}

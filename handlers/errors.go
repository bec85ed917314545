package handlers

import (
	"net/http"

	"festa/errs"
	"festa/middleware"
	"festa/services/auth"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error kind to its HTTP status.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errs.IsValidation(err):
		status = http.StatusBadRequest
	case errs.IsAuthentication(err):
		status = http.StatusUnauthorized
	case errs.IsAuthorization(err):
		status = http.StatusForbidden
	case errs.IsNotFound(err):
		status = http.StatusNotFound
	case errs.IsConflict(err), errs.IsInvalidState(err):
		status = http.StatusConflict
	case errs.IsConcurrentModification(err):
		status = http.StatusPreconditionFailed
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentSessionOrAbort returns whatever session the middleware resolved.
func currentSessionOrAbort(c *gin.Context) (auth.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session"})
		return nil, false
	}
	return sess, true
}

// clientSession pulls a ClientSession off the request, aborting with 403
// for provider callers.
func clientSession(c *gin.Context) (auth.ClientSession, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session"})
		return auth.ClientSession{}, false
	}
	client, ok := sess.(auth.ClientSession)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This action requires a client account"})
		return auth.ClientSession{}, false
	}
	return client, true
}

// providerSession pulls a ProviderSession off the request, aborting with
// 403 for client callers.
func providerSession(c *gin.Context) (auth.ProviderSession, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session"})
		return auth.ProviderSession{}, false
	}
	provider, ok := sess.(auth.ProviderSession)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This action requires a provider account"})
		return auth.ProviderSession{}, false
	}
	return provider, true
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"property-expert/internal/store"
)

// respondStoreError maps store failures onto user-visible responses.
// Transport and permission problems are surfaced distinctly; recovery is a
// manual retry, never an automatic one.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable, please try again later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

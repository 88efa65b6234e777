package handlers

import (
	"errors"
	"net/http"

	"github.com/dealcraft/dealcraft-server/internal/access"
	"github.com/dealcraft/dealcraft-server/internal/store"
	"github.com/dealcraft/dealcraft-server/pkg/logger"
	"github.com/dealcraft/dealcraft-server/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// mapErrorToHTTP maps domain/service errors to HTTP status code and message
func mapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return http.StatusBadRequest, "invalid id"
	case errors.Is(err, access.ErrForbidden):
		return http.StatusForbidden, "forbidden access"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondError writes the mapped status with a {"message": ...} body. Server-side failures are logged.
func respondError(c *gin.Context, op string, err error) {
	status, msg := mapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		logger.WithFields(map[string]any{
			"op":         op,
			"error":      err.Error(),
			"request_id": c.GetString(middleware.RequestIDKey),
		}).Error("request failed")
	}
	c.JSON(status, gin.H{"message": msg})
}

// handleBindError rejects a body that is not a JSON object.
func handleBindError(c *gin.Context, op string, err error) {
	logger.WithFields(map[string]any{"op": op, "error": err.Error()}).Warn("binding error")
	c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request payload"})
}

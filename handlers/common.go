package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// serverError logs a store failure server-side and returns an opaque 500.
// No internal detail ever reaches the caller.
func serverError(c *gin.Context, log *slog.Logger, op string, err error) {
	log.Error("store failure", "op", op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/chat"
)

// respondError maps the chat error taxonomy onto HTTP status classes:
// validation -> 400, missing conversation -> 404, everything else is a
// storage-side 500 with a generic action message.
func respondError(c *gin.Context, logger *zap.Logger, action string, err error) {
	var ve *chat.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": ve.Reason,
		})
		return
	}

	var nfe *chat.NotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": nfe.Error(),
		})
		return
	}

	logger.Error("request failed",
		zap.String("action", action),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Failed to " + action,
		"error":   err.Error(),
	})
}

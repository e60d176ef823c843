package handlers

import (
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/notify"
)

// PushHandler stores browser push subscriptions so the notification
// hook can reach the offline counterparty.
type PushHandler struct {
	push   *notify.WebPushNotifier
	logger *zap.Logger
}

func NewPushHandler(push *notify.WebPushNotifier, logger *zap.Logger) *PushHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PushHandler{push: push, logger: logger}
}

func (h *PushHandler) Subscribe(c *gin.Context) {
	var req struct {
		PartyID string               `json:"partyId"`
		Sub     webpush.Subscription `json:"subscription"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	if req.PartyID == "" || req.Sub.Endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "partyId and subscription endpoint are required"})
		return
	}

	if err := h.push.SaveSubscription(c.Request.Context(), req.PartyID, req.Sub); err != nil {
		h.logger.Error("save push subscription failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save subscription"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

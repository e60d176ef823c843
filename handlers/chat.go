package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/chat"
	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/models"
)

// Handler serves the request/response surface of the chat service. The
// send endpoint here is the durable fallback path: it persists exactly
// like the live channel but performs no broadcast, so clients without a
// socket poll for delivery.
type Handler struct {
	service *chat.Service
	logger  *zap.Logger
}

func NewHandler(service *chat.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

func (h *Handler) ConversationsForUser(c *gin.Context) {
	conversations, err := h.service.ConversationsForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, "fetch conversations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"conversations": conversations,
	})
}

func (h *Handler) ConversationsForSeller(c *gin.Context) {
	conversations, err := h.service.ConversationsForSeller(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		respondError(c, h.logger, "fetch conversations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"conversations": conversations,
	})
}

func (h *Handler) FindOrCreateConversation(c *gin.Context) {
	var req struct {
		UserID     string `json:"userId"`
		SellerID   string `json:"sellerId"`
		UserName   string `json:"userName"`
		SellerName string `json:"sellerName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	conv, err := h.service.FindOrCreateConversation(c.Request.Context(), req.UserID, req.SellerID, req.UserName, req.SellerName)
	if err != nil {
		respondError(c, h.logger, "create conversation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"conversation": conv,
	})
}

func (h *Handler) Messages(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)

	messages, err := h.service.History(c.Request.Context(), c.Param("conversationId"), limit, skip)
	if err != nil {
		respondError(c, h.logger, "fetch messages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
	})
}

func (h *Handler) SendMessage(c *gin.Context) {
	var in chat.SendInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	msg, _, err := h.service.Send(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, "send message", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": msg,
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	var req struct {
		ReaderType models.SenderType `json:"readerType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), c.Param("id"), req.ReaderType); err != nil {
		respondError(c, h.logger, "mark conversation read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

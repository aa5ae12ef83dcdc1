package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pedebot/internal/bot"
	"pedebot/internal/monitoring"
	"pedebot/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// WebhookRequest is one chat turn. A quick-reply click arrives as its label
// in Message. ConversationID is optional on the first turn.
type WebhookRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" binding:"required"`
}

type WebhookResponse struct {
	ConversationID string    `json:"conversation_id"`
	Reply          bot.Reply `json:"reply"`
}

func (h *ChatHandler) HandleWebhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	monitoring.TurnsProcessed.Inc()

	conversationID, reply, err := h.chatService.ProcessTurn(c.Request.Context(), req.ConversationID, req.Message)
	if err != nil {
		h.logger.Error("failed to process turn",
			zap.String("conversation_id", conversationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{ConversationID: conversationID, Reply: reply})
}

func (h *ChatHandler) EndSession(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	if err := h.chatService.ResetSession(c.Request.Context(), conversationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"metizcare/internal/llm"
	"metizcare/internal/service"
)

type AssistantHandler struct {
	logger    *zap.Logger
	assistant *service.AssistantService
}

func NewAssistantHandler(logger *zap.Logger, assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{logger: logger, assistant: assistant}
}

// Chat maneja POST /api/ai/chat.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req struct {
		Messages []llm.Message `json:"messages" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyConversation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "messages are required"})
		case errors.Is(err, service.ErrLastTurnNotUser):
			c.JSON(http.StatusBadRequest, gin.H{"error": "last message must come from the user"})
		case errors.Is(err, llm.ErrDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get response from AI"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

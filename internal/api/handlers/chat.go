// backend/internal/api/handlers/chat.go
package handlers

import (
	"net/http"

	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/casaplan/casaplan/backend/internal/services"
	"github.com/casaplan/casaplan/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	chatService *services.ChatService
	logger      *logrus.Logger
}

func NewChatHandler(chatService *services.ChatService, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// HandleChat relays one user message through the resolved model provider.
// Any persistence or provider failure surfaces as an internal error; the
// stored user message is never rolled back.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	reply, modelTag, err := h.chatService.SendMessage(c.Request.Context(), req.ConversationID, req.Message, req.Model)
	if err != nil {
		h.logger.WithError(err).WithField("conversation_id", req.ConversationID).Error("Chat failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Chat failed", err)
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		Message: reply,
		Model:   modelTag,
	})
}

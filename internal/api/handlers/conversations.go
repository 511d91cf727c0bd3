// backend/internal/api/handlers/conversations.go
package handlers

import (
	"net/http"

	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/casaplan/casaplan/backend/internal/repository"
	"github.com/casaplan/casaplan/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// defaultConversationTitle is the localized title used when none is given.
const defaultConversationTitle = "Nuova conversazione"

type ConversationHandler struct {
	repoManager *repository.RepositoryManager
	logger      *logrus.Logger
}

func NewConversationHandler(repoManager *repository.RepositoryManager, logger *logrus.Logger) *ConversationHandler {
	return &ConversationHandler{
		repoManager: repoManager,
		logger:      logger,
	}
}

func (h *ConversationHandler) HandleCreate(c *gin.Context) {
	var req models.ConversationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	title := req.Title
	if title == "" {
		title = defaultConversationTitle
	}

	conv := &models.Conversation{
		UserID: req.UserID,
		Title:  title,
	}

	if err := h.repoManager.Conversation.Create(conv); err != nil {
		h.logger.WithError(err).Error("Failed to create conversation")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create conversation", err)
		return
	}

	c.JSON(http.StatusOK, conv)
}

// HandleList returns a user's conversations, newest first. The user id is
// required.
func (h *ConversationHandler) HandleList(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query parameter 'user_id' is required", nil)
		return
	}

	conversations, err := h.repoManager.Conversation.ListByUser(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list conversations")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list conversations", err)
		return
	}

	if conversations == nil {
		conversations = []models.Conversation{}
	}
	c.JSON(http.StatusOK, conversations)
}

// HandleListMessages returns a conversation's messages ordered by timestamp
// ascending. The conversation id is not checked for existence.
func (h *ConversationHandler) HandleListMessages(c *gin.Context) {
	messages, err := h.repoManager.Message.ListByConversation(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list messages")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list messages", err)
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

// backend/internal/api/handlers/feedback.go
package handlers

import (
	"net/http"

	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/casaplan/casaplan/backend/internal/repository"
	"github.com/casaplan/casaplan/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FeedbackHandler struct {
	repoManager *repository.RepositoryManager
	logger      *logrus.Logger
}

func NewFeedbackHandler(repoManager *repository.RepositoryManager, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		repoManager: repoManager,
		logger:      logger,
	}
}

// HandleCreate persists the feedback record. Suggestion feedback additionally
// appends one learning-data record; no other type is consumed downstream.
func (h *FeedbackHandler) HandleCreate(c *gin.Context) {
	var req models.FeedbackCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if !models.ValidFeedbackTypes[req.FeedbackType] {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid feedback type", nil)
		return
	}

	feedback := &models.Feedback{
		UserID:       req.UserID,
		FloorPlanID:  req.FloorPlanID,
		FeedbackType: req.FeedbackType,
		Content:      req.Content,
		Rating:       req.Rating,
	}

	if err := h.repoManager.Feedback.Create(feedback); err != nil {
		h.logger.WithError(err).Error("Failed to save feedback")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to save feedback", err)
		return
	}

	if feedback.FeedbackType == "suggestion" {
		learning := &models.LearningData{
			UserID:  feedback.UserID,
			Type:    "suggestion",
			Content: feedback.Content,
		}
		if err := h.repoManager.LearningData.Create(learning); err != nil {
			h.logger.WithError(err).Error("Failed to store learning data")
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to store learning data", err)
			return
		}
	}

	h.logger.WithFields(logrus.Fields{
		"feedback_id":   feedback.ID,
		"feedback_type": feedback.FeedbackType,
		"user_id":       feedback.UserID,
	}).Info("Feedback recorded")

	c.JSON(http.StatusOK, feedback)
}

// HandleList returns feedback, optionally filtered by user id, newest first.
func (h *FeedbackHandler) HandleList(c *gin.Context) {
	feedback, err := h.repoManager.Feedback.List(c.Query("user_id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list feedback")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list feedback", err)
		return
	}

	if feedback == nil {
		feedback = []models.Feedback{}
	}
	c.JSON(http.StatusOK, feedback)
}

// backend/internal/api/handlers/preferences.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/casaplan/casaplan/backend/internal/repository"
	"github.com/casaplan/casaplan/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PreferencesHandler struct {
	repoManager *repository.RepositoryManager
	logger      *logrus.Logger
}

func NewPreferencesHandler(repoManager *repository.RepositoryManager, logger *logrus.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		repoManager: repoManager,
		logger:      logger,
	}
}

// HandleGet returns the user's preferences, synthesizing and persisting the
// defaults on first read.
func (h *PreferencesHandler) HandleGet(c *gin.Context) {
	prefs, err := h.getOrCreate(c.Param("user_id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load preferences")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load preferences", err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// HandleUpdate applies a partial upsert keyed on user id and returns the
// resulting record.
func (h *PreferencesHandler) HandleUpdate(c *gin.Context) {
	var req models.UserPreferenceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	fields := map[string]interface{}{
		"updated_at": models.NowISO(),
	}
	if req.PreferredModel != nil {
		fields["preferred_model"] = *req.PreferredModel
	}
	if req.RenderQuality != nil {
		fields["render_quality"] = *req.RenderQuality
	}
	if req.DefaultWallHeight != nil {
		fields["default_wall_height"] = *req.DefaultWallHeight
	}
	if req.Preferences != nil {
		fields["preferences"] = datatypes.JSONMap(req.Preferences)
	}

	userID := c.Param("user_id")
	if err := h.repoManager.UserPreference.Upsert(userID, fields); err != nil {
		h.logger.WithError(err).Error("Failed to update preferences")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update preferences", err)
		return
	}

	prefs, err := h.getOrCreate(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload preferences")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to reload preferences", err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

func (h *PreferencesHandler) getOrCreate(userID string) (*models.UserPreference, error) {
	prefs, err := h.repoManager.UserPreference.GetByUser(userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := repository.DefaultUserPreference(userID)
	if err := h.repoManager.UserPreference.Create(defaults); err != nil {
		return nil, err
	}

	h.logger.WithField("user_id", userID).Info("Created default preferences")
	return defaults, nil
}

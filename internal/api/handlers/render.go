// backend/internal/api/handlers/render.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/casaplan/casaplan/backend/internal/repository"
	"github.com/casaplan/casaplan/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	validRenderQualities = map[string]bool{
		"low":    true,
		"medium": true,
		"high":   true,
	}

	validRenderStyles = map[string]bool{
		"realistic": true,
		"wireframe": true,
		"stylized":  true,
	}
)

type RenderHandler struct {
	repoManager *repository.RepositoryManager
	logger      *logrus.Logger
}

func NewRenderHandler(repoManager *repository.RepositoryManager, logger *logrus.Logger) *RenderHandler {
	return &RenderHandler{
		repoManager: repoManager,
		logger:      logger,
	}
}

// HandleRender returns the stub render result. Nothing is persisted and no
// rendering occurs; the floor plan must already carry 3D data.
func (h *RenderHandler) HandleRender(c *gin.Context) {
	var req models.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if req.Quality == "" {
		req.Quality = "high"
	}
	if req.Style == "" {
		req.Style = "realistic"
	}

	if !validRenderQualities[req.Quality] {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid render quality", nil)
		return
	}
	if !validRenderStyles[req.Style] {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid render style", nil)
		return
	}

	plan, err := h.repoManager.FloorPlan.GetByID(req.FloorPlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Floor plan not found", nil)
			return
		}
		h.logger.WithError(err).Error("Failed to fetch floor plan")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch floor plan", err)
		return
	}

	if plan.ThreeDData == nil || *plan.ThreeDData == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Floor plan not converted to 3D yet", nil)
		return
	}

	renderURL := ""
	if plan.FileURL != nil {
		renderURL = *plan.FileURL
	}

	h.logger.WithFields(logrus.Fields{
		"floor_plan_id": req.FloorPlanID,
		"quality":       req.Quality,
		"style":         req.Style,
	}).Info("Render completed")

	c.JSON(http.StatusOK, models.RenderResult{
		Status:         "completed",
		Quality:        req.Quality,
		Style:          req.Style,
		RenderURL:      renderURL,
		ProcessingTime: "15s",
	})
}

// backend/internal/api/handlers/floorplans.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/casaplan/casaplan/backend/internal/cloudinary"
	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/casaplan/casaplan/backend/internal/repository"
	"github.com/casaplan/casaplan/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FloorPlanHandler struct {
	repoManager *repository.RepositoryManager
	uploader    *cloudinary.Service
	logger      *logrus.Logger
}

func NewFloorPlanHandler(
	repoManager *repository.RepositoryManager,
	uploader *cloudinary.Service,
	logger *logrus.Logger,
) *FloorPlanHandler {
	return &FloorPlanHandler{
		repoManager: repoManager,
		uploader:    uploader,
		logger:      logger,
	}
}

// HandleCreate creates a floor plan record with status "uploaded".
func (h *FloorPlanHandler) HandleCreate(c *gin.Context) {
	var req models.FloorPlanCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if !models.ValidFileTypes[req.FileType] {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid file type", nil)
		return
	}

	plan := &models.FloorPlan{
		UserID:     req.UserID,
		Name:       req.Name,
		FileType:   req.FileType,
		CanvasData: req.CanvasData,
	}

	if err := h.repoManager.FloorPlan.Create(plan); err != nil {
		h.logger.WithError(err).Error("Failed to create floor plan")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create floor plan", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"floor_plan_id": plan.ID,
		"user_id":       plan.UserID,
		"file_type":     plan.FileType,
	}).Info("Floor plan created")

	c.JSON(http.StatusOK, plan)
}

// HandleList returns floor plans, optionally filtered by user id, newest first.
func (h *FloorPlanHandler) HandleList(c *gin.Context) {
	plans, err := h.repoManager.FloorPlan.List(c.Query("user_id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list floor plans")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list floor plans", err)
		return
	}

	if plans == nil {
		plans = []models.FloorPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

func (h *FloorPlanHandler) HandleGet(c *gin.Context) {
	plan, err := h.repoManager.FloorPlan.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Floor plan not found", nil)
			return
		}
		h.logger.WithError(err).Error("Failed to fetch floor plan")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch floor plan", err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// HandleUpdate applies a partial update; only non-null fields are written and
// updated_at is always refreshed.
func (h *FloorPlanHandler) HandleUpdate(c *gin.Context) {
	var req models.FloorPlanUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if req.Status != nil && !models.ValidStatuses[*req.Status] {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid status", nil)
		return
	}

	fields := map[string]interface{}{
		"updated_at": models.NowISO(),
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.ThreeDData != nil {
		fields["three_d_data"] = *req.ThreeDData
	}

	id := c.Param("id")
	matched, err := h.repoManager.FloorPlan.UpdateFields(id, fields)
	if err != nil {
		h.logger.WithError(err).Error("Failed to update floor plan")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update floor plan", err)
		return
	}
	if matched == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "Floor plan not found", nil)
		return
	}

	plan, err := h.repoManager.FloorPlan.GetByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload floor plan")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to reload floor plan", err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *FloorPlanHandler) HandleDelete(c *gin.Context) {
	deleted, err := h.repoManager.FloorPlan.Delete(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete floor plan")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete floor plan", err)
		return
	}
	if deleted == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "Floor plan not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Floor plan deleted successfully"})
}

// HandleUpload proxies the multipart file to the media host and persists the
// returned URLs. The record must exist before anything is uploaded.
func (h *FloorPlanHandler) HandleUpload(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.repoManager.FloorPlan.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Floor plan not found", nil)
			return
		}
		h.logger.WithError(err).Error("Failed to fetch floor plan")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch floor plan", err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing file field", err)
		return
	}

	source, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}
	defer source.Close()

	contents, err := io.ReadAll(source)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	fileURL, thumbnailURL, err := h.uploader.UploadFloorPlanFile(c.Request.Context(), fileHeader.Filename, contents)
	if err != nil {
		h.logger.WithError(err).WithField("floor_plan_id", id).Error("Media upload failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	fields := map[string]interface{}{
		"file_url":      fileURL,
		"thumbnail_url": thumbnailURL,
		"updated_at":    models.NowISO(),
	}
	if _, err := h.repoManager.FloorPlan.UpdateFields(id, fields); err != nil {
		h.logger.WithError(err).Error("Failed to persist upload URLs")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"floor_plan_id": id,
		"file_url":      fileURL,
	}).Info("Floor plan file uploaded")

	c.JSON(http.StatusOK, models.UploadResponse{
		Message:      "File uploaded successfully",
		FileURL:      fileURL,
		ThumbnailURL: thumbnailURL,
	})
}

// HandleConvert3D writes the stub geometry and marks the plan ready. The
// payload does not depend on the uploaded file contents.
func (h *FloorPlanHandler) HandleConvert3D(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.repoManager.FloorPlan.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Floor plan not found", nil)
			return
		}
		h.logger.WithError(err).Error("Failed to fetch floor plan")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch floor plan", err)
		return
	}

	geometry := mockThreeDData()

	encoded, err := json.Marshal(geometry)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Conversion failed", err)
		return
	}

	fields := map[string]interface{}{
		"three_d_data": string(encoded),
		"status":       "ready",
		"updated_at":   models.NowISO(),
	}
	if _, err := h.repoManager.FloorPlan.UpdateFields(id, fields); err != nil {
		h.logger.WithError(err).Error("Failed to persist 3D data")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Conversion failed", err)
		return
	}

	h.logger.WithField("floor_plan_id", id).Info("Floor plan converted to 3D")

	c.JSON(http.StatusOK, models.ConvertResponse{
		Message:    "Conversion completed",
		ThreeDData: geometry,
	})
}

// mockThreeDData is the fixed conversion payload: two rooms, two walls, one
// door, one window.
func mockThreeDData() map[string]interface{} {
	return map[string]interface{}{
		"rooms": []map[string]interface{}{
			{"id": "room1", "type": "living", "width": 5, "depth": 4, "height": 2.8},
			{"id": "room2", "type": "bedroom", "width": 3.5, "depth": 3, "height": 2.8},
		},
		"walls": []map[string]interface{}{
			{"start": []float64{0, 0}, "end": []float64{5, 0}, "height": 2.8, "thickness": 0.2},
			{"start": []float64{5, 0}, "end": []float64{5, 4}, "height": 2.8, "thickness": 0.2},
		},
		"doors": []map[string]interface{}{
			{"position": []float64{2.5, 0}, "width": 0.9, "height": 2.1},
		},
		"windows": []map[string]interface{}{
			{"position": []float64{1, 2.8}, "width": 1.2, "height": 1.5},
		},
	}
}

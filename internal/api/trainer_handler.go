package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/service"
)

// TrainerHandler serves the trainer's own account, profile and dashboard.
type TrainerHandler struct {
	trainerService service.TrainerService
	clientService  service.ClientService
	planService    service.PlanService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(
	trainerService service.TrainerService,
	clientService service.ClientService,
	planService service.PlanService,
) *TrainerHandler {
	return &TrainerHandler{
		trainerService: trainerService,
		clientService:  clientService,
		planService:    planService,
	}
}

type UpdateProfileRequest struct {
	PhotoKey string `json:"photoKey"`
	Quote1   string `json:"quote1"`
	Quote2   string `json:"quote2"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// Me returns the authenticated trainer's account.
func (h *TrainerHandler) Me(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	trainer, err := h.trainerService.GetByID(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// GetProfile returns the trainer's public profile; a never-saved profile
// comes back empty rather than as a 404.
func (h *TrainerHandler) GetProfile(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	profile, err := h.trainerService.GetProfile(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *TrainerHandler) UpdateProfile(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.trainerService.UpdateProfile(c.Request.Context(), trainerID, req.PhotoKey, req.Quote1, req.Quote2)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PhotoUploadURL hands out a presigned PUT URL for a new profile photo.
func (h *TrainerHandler) PhotoUploadURL(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	key, uploadURL, err := h.trainerService.PhotoUploadURL(c.Request.Context(), trainerID, req.ContentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "uploadUrl": uploadURL})
}

// PhotoDownloadURL hands out a presigned GET URL for the stored profile photo.
func (h *TrainerHandler) PhotoDownloadURL(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	downloadURL, err := h.trainerService.PhotoDownloadURL(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}

// Dashboard combines the client count with the actively pinned plans feed.
func (h *TrainerHandler) Dashboard(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	count, err := h.clientService.Count(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	pinned, err := h.planService.PinnedPlans(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientCount": count,
		"pinnedPlans": pinned,
	})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/service"
)

// ExerciseHandler serves the shared exercise library.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// Import pulls the external exercise catalog into the local library. The
// library imports once; a second call reports conflict.
func (h *ExerciseHandler) Import(c *gin.Context) {
	if _, err := getTrainerIDFromContext(c); err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	count, err := h.exerciseService.Import(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

func (h *ExerciseHandler) List(c *gin.Context) {
	if _, err := getTrainerIDFromContext(c); err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	if bodyPart := c.Query("bodyPart"); bodyPart != "" {
		exercises, err := h.exerciseService.ByBodyPart(c.Request.Context(), bodyPart)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, exercises)
		return
	}

	exercises, err := h.exerciseService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// Grouped returns the library keyed by display group (Arms, Legs, ...).
func (h *ExerciseHandler) Grouped(c *gin.Context) {
	if _, err := getTrainerIDFromContext(c); err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	groups, err := h.exerciseService.Grouped(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

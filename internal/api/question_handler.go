package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/repository"
	"smartgains/trainer-app/internal/service"
)

// QuestionHandler serves the resolved intake-question set and the trainer's
// overlay customizations.
type QuestionHandler struct {
	questionService service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Resolve returns the trainer's effective question set. Query parameters
// category, template and defaults narrow the catalog side of the merge.
func (h *QuestionHandler) Resolve(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	filter := repository.QuestionFilter{
		Category:     c.Query("category"),
		Template:     c.Query("template"),
		DefaultsOnly: c.Query("defaults") == "true",
	}

	questions, err := h.questionService.Resolve(c.Request.Context(), trainerID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// Overlays lists the trainer's raw overlay rows.
func (h *QuestionHandler) Overlays(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	overlays, err := h.questionService.Overlays(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overlays)
}

// SaveOverlay records an add/edit/delete customization.
func (h *QuestionHandler) SaveOverlay(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input service.OverlayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	overlay, err := h.questionService.SaveOverlay(c.Request.Context(), trainerID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overlay)
}

// Remove hides a catalog question or removes a trainer-own question. The key
// path parameter is a resolved-set key ("global_<id>" or "trainer_<id>").
func (h *QuestionHandler) Remove(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.questionService.RemoveQuestion(c.Request.Context(), trainerID, c.Param("key")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question removed"})
}

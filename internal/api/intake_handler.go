package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/service"
)

// IntakeHandler serves intake forms and the per-client questionnaires:
// consultation, medical history, assessments and the nutrition profile. The
// questionnaire bodies are wide and map one-to-one onto their domain structs,
// so they bind directly.
type IntakeHandler struct {
	intakeService service.IntakeService
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(intakeService service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

type CreateFormRequest struct {
	FormType string `json:"formType" binding:"required"`
}

type SaveAnswersRequest struct {
	// Answers are keyed by resolved question key ("global_<id>" or
	// "trainer_<id>").
	Answers map[string]string `json:"answers" binding:"required"`
}

func (h *IntakeHandler) CreateForm(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	form, err := h.intakeService.CreateForm(c.Request.Context(), trainerID, clientID, req.FormType)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, form)
}

func (h *IntakeHandler) FormsByClient(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	forms, err := h.intakeService.FormsByClient(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

func (h *IntakeHandler) SaveAnswers(c *gin.Context) {
	trainerID, formID, ok := trainerAndPathID(c, "formId")
	if !ok {
		return
	}

	var req SaveAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.intakeService.SaveAnswers(c.Request.Context(), trainerID, formID, req.Answers); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answers saved"})
}

func (h *IntakeHandler) FormAnswers(c *gin.Context) {
	trainerID, formID, ok := trainerAndPathID(c, "formId")
	if !ok {
		return
	}

	answers, err := h.intakeService.FormAnswers(c.Request.Context(), trainerID, formID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

func (h *IntakeHandler) SaveConsultation(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var consultation domain.Consultation
	if err := c.ShouldBindJSON(&consultation); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	consultation.ClientID = clientID

	if err := h.intakeService.SaveConsultation(c.Request.Context(), trainerID, &consultation); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, consultation)
}

func (h *IntakeHandler) GetConsultation(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	consultation, err := h.intakeService.Consultation(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, consultation)
}

func (h *IntakeHandler) SaveMedicalHistory(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var history domain.MedicalHistory
	if err := c.ShouldBindJSON(&history); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	history.ClientID = clientID

	if err := h.intakeService.SaveMedicalHistory(c.Request.Context(), trainerID, &history); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *IntakeHandler) GetMedicalHistory(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	history, err := h.intakeService.MedicalHistory(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *IntakeHandler) SaveFlexibility(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var assessment domain.FlexibilityAssessment
	if err := c.ShouldBindJSON(&assessment); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	assessment.ClientID = clientID

	if err := h.intakeService.SaveFlexibility(c.Request.Context(), trainerID, &assessment); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *IntakeHandler) SaveBeginner(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var assessment domain.BeginnerAssessment
	if err := c.ShouldBindJSON(&assessment); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	assessment.ClientID = clientID

	if err := h.intakeService.SaveBeginner(c.Request.Context(), trainerID, &assessment); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *IntakeHandler) SaveAdvanced(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var assessment domain.AdvancedAssessment
	if err := c.ShouldBindJSON(&assessment); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	assessment.ClientID = clientID

	if err := h.intakeService.SaveAdvanced(c.Request.Context(), trainerID, &assessment); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// Assessments returns all three assessment records; missing ones come back
// null rather than as an error.
func (h *IntakeHandler) Assessments(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	flexibility, beginner, advanced, err := h.intakeService.Assessments(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"flexibility": flexibility,
		"beginner":    beginner,
		"advanced":    advanced,
	})
}

func (h *IntakeHandler) SaveNutritionProfile(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var profile domain.NutritionProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	profile.ClientID = clientID

	if err := h.intakeService.SaveNutritionProfile(c.Request.Context(), trainerID, &profile); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *IntakeHandler) GetNutritionProfile(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	profile, err := h.intakeService.NutritionProfile(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

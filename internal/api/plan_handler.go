package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/service"
)

// PlanHandler serves generated and demo plans: CRUD, AI generation, day
// completion, pinning and email delivery. Plans are addressed by kind
// ("generated" or "demo") plus id; ownership is checked through the client
// the plan belongs to.
type PlanHandler struct {
	planService       service.PlanService
	clientService     service.ClientService
	generationService service.GenerationService
	emailService      *service.EmailService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(
	planService service.PlanService,
	clientService service.ClientService,
	generationService service.GenerationService,
	emailService *service.EmailService,
) *PlanHandler {
	return &PlanHandler{
		planService:       planService,
		clientService:     clientService,
		generationService: generationService,
		emailService:      emailService,
	}
}

type GeneratePlanRequest struct {
	Request string `json:"request"`
}

type UpdatePlanRequest struct {
	Name    string `json:"name" binding:"required"`
	Details string `json:"details" binding:"required"`
}

type MarkDayRequest struct {
	// Day accepts a bare number or the "Day N" label form.
	Day interface{} `json:"day" binding:"required"`
}

// GenerateQuick creates a fixed-length starter plan for a client.
func (h *PlanHandler) GenerateQuick(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.generationService.GenerateQuickPlan(c.Request.Context(), trainerID, clientID, req.Request)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// Generate creates a full plan from the client's intake data.
func (h *PlanHandler) Generate(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.generationService.GeneratePlan(c.Request.Context(), trainerID, clientID, req.Request)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// ListByClient returns all of a client's plans of one kind.
func (h *PlanHandler) ListByClient(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	if _, err := h.clientService.Authorize(c.Request.Context(), trainerID, clientID); err != nil {
		handleServiceError(c, err)
		return
	}

	plans, err := h.planService.GetByClientID(c.Request.Context(), planKind(c), clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// LatestByClient returns the client's most recent plan of one kind.
func (h *PlanHandler) LatestByClient(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	if _, err := h.clientService.Authorize(c.Request.Context(), trainerID, clientID); err != nil {
		handleServiceError(c, err)
		return
	}

	plan, err := h.planService.GetLatestByClientID(c.Request.Context(), planKind(c), clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Get(c *gin.Context) {
	plan, _, ok := h.authorizePlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Update(c *gin.Context) {
	plan, _, ok := h.authorizePlan(c)
	if !ok {
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.planService.Update(c.Request.Context(), planKind(c), plan.ID, req.Name, req.Details); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan updated"})
}

func (h *PlanHandler) Delete(c *gin.Context) {
	plan, _, ok := h.authorizePlan(c)
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), planKind(c), plan.ID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

// MarkDayComplete flags one day of the plan as done.
func (h *PlanHandler) MarkDayComplete(c *gin.Context) {
	plan, _, ok := h.authorizePlan(c)
	if !ok {
		return
	}

	var req MarkDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	updated, err := h.planService.MarkDayComplete(c.Request.Context(), planKind(c), plan.ID, req.Day)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Pin features the plan on the today dashboard for the next 24 hours. An
// already-active pin is reported without extending the deadline.
func (h *PlanHandler) Pin(c *gin.Context) {
	plan, _, ok := h.authorizePlan(c)
	if !ok {
		return
	}

	pinned, err := h.planService.PinForToday(c.Request.Context(), planKind(c), plan.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pinned": pinned})
}

func (h *PlanHandler) Unpin(c *gin.Context) {
	plan, _, ok := h.authorizePlan(c)
	if !ok {
		return
	}

	if err := h.planService.Unpin(c.Request.Context(), planKind(c), plan.ID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan unpinned"})
}

func (h *PlanHandler) PinStatus(c *gin.Context) {
	plan, _, ok := h.authorizePlan(c)
	if !ok {
		return
	}

	active, err := h.planService.CheckPinStatus(c.Request.Context(), planKind(c), plan.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pinned": active})
}

// Pinned returns the trainer's today-dashboard feed.
func (h *PlanHandler) Pinned(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	plans, err := h.planService.PinnedPlans(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// CompletionStatus reports per-day done flags joined with logged dates.
func (h *PlanHandler) CompletionStatus(c *gin.Context) {
	plan, _, ok := h.authorizePlan(c)
	if !ok {
		return
	}

	report, err := h.planService.CompletionStatus(c.Request.Context(), planKind(c), plan.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Email sends the plan body to the client it belongs to.
func (h *PlanHandler) Email(c *gin.Context) {
	plan, trainerID, ok := h.authorizePlan(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), trainerID, plan.ClientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.emailService.SendPlan(c.Request.Context(), client, plan); err != nil {
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("Failed to send plan: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan sent"})
}

// authorizePlan loads the plan named by the kind and planId path parameters
// and verifies it belongs to one of the calling trainer's clients. On failure
// it writes the error response and reports ok=false.
func (h *PlanHandler) authorizePlan(c *gin.Context) (*domain.Plan, int64, bool) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return nil, 0, false
	}

	planID, err := strconv.ParseInt(c.Param("planId"), 10, 64)
	if err != nil || planID < 1 {
		abortWithError(c, http.StatusBadRequest, "Invalid planId")
		return nil, 0, false
	}

	plan, err := h.planService.GetByID(c.Request.Context(), planKind(c), planID)
	if err != nil {
		handleServiceError(c, err)
		return nil, 0, false
	}

	if _, err := h.clientService.Authorize(c.Request.Context(), trainerID, plan.ClientID); err != nil {
		handleServiceError(c, err)
		return nil, 0, false
	}
	return plan, trainerID, true
}

// planKind reads the kind path parameter. Validation happens in the service;
// an unknown kind surfaces as a 400.
func planKind(c *gin.Context) domain.PlanKind {
	return domain.PlanKind(c.Param("kind"))
}

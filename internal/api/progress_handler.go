package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/service"
)

// ProgressHandler serves the workout session log.
type ProgressHandler struct {
	progressService service.ProgressService
	clientService   service.ClientService
	emailService    *service.EmailService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(
	progressService service.ProgressService,
	clientService service.ClientService,
	emailService *service.EmailService,
) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		clientService:   clientService,
		emailService:    emailService,
	}
}

type ProgressRequest struct {
	Name            string `json:"name" binding:"required"`
	Date            string `json:"date" binding:"required"`
	WorkoutType     string `json:"workoutType"`
	DurationMinutes int    `json:"durationMinutes"`
	ExercisesLog    string `json:"exercisesLog"`
	IntensityLevel  string `json:"intensityLevel"`
	Location        string `json:"location"`
	WorkoutRating   int    `json:"workoutRating"`
	TrainerNotes    string `json:"trainerNotes"`
}

func (r ProgressRequest) toDomain() *domain.WorkoutProgress {
	return &domain.WorkoutProgress{
		Name:            r.Name,
		Date:            r.Date,
		WorkoutType:     r.WorkoutType,
		DurationMinutes: r.DurationMinutes,
		ExercisesLog:    r.ExercisesLog,
		IntensityLevel:  r.IntensityLevel,
		Location:        r.Location,
		WorkoutRating:   r.WorkoutRating,
		TrainerNotes:    r.TrainerNotes,
	}
}

type LogPlanDayRequest struct {
	// Day accepts a bare number or the "Day N" label form.
	Day interface{} `json:"day" binding:"required"`

	// Optional session details; name and date fall back to the plan's name
	// and today.
	Session *struct {
		Name            string `json:"name"`
		Date            string `json:"date"`
		WorkoutType     string `json:"workoutType"`
		DurationMinutes int    `json:"durationMinutes"`
		ExercisesLog    string `json:"exercisesLog"`
		IntensityLevel  string `json:"intensityLevel"`
		Location        string `json:"location"`
		WorkoutRating   int    `json:"workoutRating"`
		TrainerNotes    string `json:"trainerNotes"`
	} `json:"session"`
}

// Log records a manually entered session for a client.
func (h *ProgressHandler) Log(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session := req.toDomain()
	session.ClientID = clientID
	logged, err := h.progressService.Log(c.Request.Context(), trainerID, session)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, logged)
}

// ListByClient returns a client's full session history.
func (h *ProgressHandler) ListByClient(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	sessions, err := h.progressService.GetByClient(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// SingleDayGenerated returns a client's one-off generated sessions, the ones
// tied to a generated plan but not to a numbered day.
func (h *ProgressHandler) SingleDayGenerated(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	sessions, err := h.progressService.SingleDayGenerated(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// MultiDay returns a client's sessions logged against numbered plan days.
func (h *ProgressHandler) MultiDay(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	sessions, err := h.progressService.MultiDay(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// ListByPlan returns the sessions logged against one plan.
func (h *ProgressHandler) ListByPlan(c *gin.Context) {
	trainerID, planID, ok := trainerAndPathID(c, "planId")
	if !ok {
		return
	}

	sessions, err := h.progressService.GetByPlan(c.Request.Context(), trainerID, planKind(c), planID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *ProgressHandler) Update(c *gin.Context) {
	trainerID, progressID, ok := trainerAndPathID(c, "progressId")
	if !ok {
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session := req.toDomain()
	session.ID = progressID
	if err := h.progressService.Update(c.Request.Context(), trainerID, session); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *ProgressHandler) Delete(c *gin.Context) {
	trainerID, progressID, ok := trainerAndPathID(c, "progressId")
	if !ok {
		return
	}

	if err := h.progressService.Delete(c.Request.Context(), trainerID, progressID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "workout session deleted"})
}

// LogPlanDay records a session against a specific plan day, marks the day
// complete and releases the plan's dashboard pin.
func (h *ProgressHandler) LogPlanDay(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	planID, err := strconv.ParseInt(c.Param("planId"), 10, 64)
	if err != nil || planID < 1 {
		abortWithError(c, http.StatusBadRequest, "Invalid planId")
		return
	}

	var req LogPlanDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var session *domain.WorkoutProgress
	if req.Session != nil {
		session = &domain.WorkoutProgress{
			Name:            req.Session.Name,
			Date:            req.Session.Date,
			WorkoutType:     req.Session.WorkoutType,
			DurationMinutes: req.Session.DurationMinutes,
			ExercisesLog:    req.Session.ExercisesLog,
			IntensityLevel:  req.Session.IntensityLevel,
			Location:        req.Session.Location,
			WorkoutRating:   req.Session.WorkoutRating,
			TrainerNotes:    req.Session.TrainerNotes,
		}
	}

	plan, err := h.progressService.LogPlanDay(c.Request.Context(), trainerID, planKind(c), planID, req.Day, session)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// EmailRecap mails a recap of one logged session to the client.
func (h *ProgressHandler) EmailRecap(c *gin.Context) {
	trainerID, progressID, ok := trainerAndPathID(c, "progressId")
	if !ok {
		return
	}

	session, err := h.progressService.Get(c.Request.Context(), trainerID, progressID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), trainerID, session.ClientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.emailService.SendSessionRecap(c.Request.Context(), client, session); err != nil {
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("Failed to send recap: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recap sent"})
}

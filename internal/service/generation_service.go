package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"smartgains/trainer-app/internal/ai"
	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

var ErrGenerationFailed = errors.New("plan generation failed")

const planSystemPrompt = `You are an experienced personal trainer writing workout programs.
Respond in markdown. Start with a single "# <plan title>" heading, then one
"## Day N" section per training day. Each day lists exercises with sets, reps
and rest. Do not add commentary outside the plan.`

// GenerationService builds prompts from the client's intake data and turns
// the model's markdown into stored plans.
type GenerationService interface {
	// GenerateQuickPlan creates a fixed three-day demo plan from a free-form
	// request plus whatever assessment findings exist.
	GenerateQuickPlan(ctx context.Context, trainerID, clientID int64, request string) (*domain.Plan, error)
	// GeneratePlan creates a full variable-length plan from the client's
	// consultation, medical history and nutrition profile.
	GeneratePlan(ctx context.Context, trainerID, clientID int64, request string) (*domain.Plan, error)
}

type generationService struct {
	aiClient         *ai.Client
	plans            PlanService
	clients          ClientService
	consultationRepo repository.ConsultationRepository
	medicalRepo      repository.MedicalHistoryRepository
	assessmentRepo   repository.AssessmentRepository
	nutritionRepo    repository.NutritionRepository
}

// NewGenerationService creates a new instance of generationService.
func NewGenerationService(
	aiClient *ai.Client,
	plans PlanService,
	clients ClientService,
	consultationRepo repository.ConsultationRepository,
	medicalRepo repository.MedicalHistoryRepository,
	assessmentRepo repository.AssessmentRepository,
	nutritionRepo repository.NutritionRepository,
) GenerationService {
	return &generationService{
		aiClient:         aiClient,
		plans:            plans,
		clients:          clients,
		consultationRepo: consultationRepo,
		medicalRepo:      medicalRepo,
		assessmentRepo:   assessmentRepo,
		nutritionRepo:    nutritionRepo,
	}
}

func (s *generationService) GenerateQuickPlan(ctx context.Context, trainerID, clientID int64, request string) (*domain.Plan, error) {
	client, err := s.clients.Authorize(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Write a quick %d-day starter program for %s.\n", domain.DemoPlanDays, client.FullName())
	fmt.Fprintf(&prompt, "Use exactly %d \"## Day N\" sections.\n", domain.DemoPlanDays)
	if request != "" {
		fmt.Fprintf(&prompt, "Trainer's request: %s\n", request)
	}
	s.appendAssessments(ctx, &prompt, clientID)

	details, err := s.aiClient.Complete(ctx, planSystemPrompt, prompt.String())
	if err != nil {
		slog.Error("quick plan generation failed", "client_id", clientID, "error", err)
		return nil, ErrGenerationFailed
	}

	plan := &domain.Plan{
		ClientID: clientID,
		Name:     planTitle(details, client.FullName()) + " (Quick)",
		Details:  details,
	}
	return s.plans.Create(ctx, domain.PlanDemo, plan)
}

func (s *generationService) GeneratePlan(ctx context.Context, trainerID, clientID int64, request string) (*domain.Plan, error) {
	client, err := s.clients.Authorize(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Write a full training program for %s.\n", client.FullName())
	prompt.WriteString("Organize it into \"## Day N\" sections, one per training day.\n")
	if request != "" {
		fmt.Fprintf(&prompt, "Trainer's request: %s\n", request)
	}
	if client.Age > 0 {
		fmt.Fprintf(&prompt, "Age: %d. Gender: %s. Occupation: %s.\n", client.Age, client.Gender, client.Occupation)
	}

	if c, err := s.consultationRepo.GetByClientID(ctx, clientID); err == nil {
		fmt.Fprintf(&prompt, "Goals: %s\n", c.FitnessGoals)
		fmt.Fprintf(&prompt, "Exercise habits: %s\n", c.ExerciseHabits)
		fmt.Fprintf(&prompt, "Likes: %s. Dislikes: %s.\n", c.ExerciseLikes, c.ExerciseDislikes)
	}
	if h, err := s.medicalRepo.GetByClientID(ctx, clientID); err == nil {
		fmt.Fprintf(&prompt, "Medical considerations: %s. Injuries/surgeries: %s.\n", h.ExistingConditions, h.SurgeriesOrInjuries)
	}
	if p, err := s.nutritionRepo.GetByClientID(ctx, clientID); err == nil {
		fmt.Fprintf(&prompt, "Activity level: %s. Training days per week: %d.\n", p.ActivityLevelEAT, p.ExerciseDaysPerWeek)
	}
	s.appendAssessments(ctx, &prompt, clientID)

	details, err := s.aiClient.Complete(ctx, planSystemPrompt, prompt.String())
	if err != nil {
		slog.Error("plan generation failed", "client_id", clientID, "error", err)
		return nil, ErrGenerationFailed
	}
	if domain.CountPlanDays(details) == 0 {
		// Without day headers the completion tracker has nothing to track.
		slog.Error("generated plan has no day sections", "client_id", clientID)
		return nil, ErrGenerationFailed
	}

	plan := &domain.Plan{
		ClientID: clientID,
		Name:     planTitle(details, client.FullName()),
		Details:  details,
	}
	return s.plans.Create(ctx, domain.PlanGenerated, plan)
}

func (s *generationService) appendAssessments(ctx context.Context, prompt *strings.Builder, clientID int64) {
	if a, err := s.assessmentRepo.FlexibilityByClientID(ctx, clientID); err == nil {
		fmt.Fprintf(prompt, "Flexibility: shoulders %s, lower body %s, joints %s.\n",
			a.ShoulderFlexibility, a.LowerBodyFlexibility, a.JointMobility)
	}
	if a, err := s.assessmentRepo.BeginnerByClientID(ctx, clientID); err == nil {
		fmt.Fprintf(prompt, "Baseline tests: technique %s, sit-to-stand %d, arm curls %d.\n",
			a.BasicTechnique, a.ChairSitToStand, a.ArmCurl)
	}
	if a, err := s.assessmentRepo.AdvancedByClientID(ctx, clientID); err == nil {
		fmt.Fprintf(prompt, "Strength tests: max %s, endurance %s, circuit %s.\n",
			a.StrengthMax, a.StrengthEndurance, a.Circuit)
	}
}

// planTitle pulls the "# title" heading off the model output, falling back to
// a name derived from the client.
func planTitle(details, clientName string) string {
	for _, line := range strings.Split(details, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return clientName + " Training Plan"
}

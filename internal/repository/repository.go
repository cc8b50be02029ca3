package repository

import (
	"context"
	"time"

	"smartgains/trainer-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// QuestionFilter narrows the global catalog fetch. Zero value means "all".
type QuestionFilter struct {
	Category     string
	Template     string
	DefaultsOnly bool
}

// TrainerRepository defines the interface for trainer accounts and profiles.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Trainer, error)
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
	UpsertProfile(ctx context.Context, profile *domain.TrainerProfile) error
	GetProfileByTrainerID(ctx context.Context, trainerID int64) (*domain.TrainerProfile, error)
}

// ClientRepository defines the interface for a trainer's client roster.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByTrainerID(ctx context.Context, trainerID int64) ([]domain.Client, error)
	CountByTrainerID(ctx context.Context, trainerID int64) (int, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id, trainerID int64) error
}

// QuestionRepository defines the interface for the global question catalog
// and trainer overlay rows. Global rows are read-only here; only platform
// tooling writes them.
type QuestionRepository interface {
	Globals(ctx context.Context, filter QuestionFilter) ([]domain.GlobalQuestion, error)
	GlobalByID(ctx context.Context, id int64) (*domain.GlobalQuestion, error)
	OverlaysByTrainerID(ctx context.Context, trainerID int64) ([]domain.TrainerQuestion, error)
	OverlayByID(ctx context.Context, id, trainerID int64) (*domain.TrainerQuestion, error)
	OverlayByGlobalID(ctx context.Context, trainerID, globalQuestionID int64) (*domain.TrainerQuestion, error)
	// UpsertOverlay inserts the overlay, or updates it in place when a row for
	// (trainer_id, global_question_id) already exists. Overlays with a nil
	// GlobalQuestionID always insert. The row id is returned.
	UpsertOverlay(ctx context.Context, overlay *domain.TrainerQuestion) (int64, error)
	DeleteOverlay(ctx context.Context, id, trainerID int64) error
}

// PlanRepository defines the interface for generated and demo plans. All
// methods address a plan by kind + id because the two tables are structurally
// identical for the operations here.
type PlanRepository interface {
	Create(ctx context.Context, kind domain.PlanKind, plan *domain.Plan) (int64, error)
	GetByID(ctx context.Context, kind domain.PlanKind, id int64) (*domain.Plan, error)
	GetLatestByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) (*domain.Plan, error)
	GetByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) ([]domain.Plan, error)
	Update(ctx context.Context, kind domain.PlanKind, id int64, name, details string) error
	Delete(ctx context.Context, kind domain.PlanKind, id int64) error
	// UpdateCompletion persists the completion map and the derived flag in a
	// single UPDATE. Zero affected rows is ErrNotFound.
	UpdateCompletion(ctx context.Context, kind domain.PlanKind, id int64, days domain.DayCompletion, completed bool) error
	SetPinnedUntil(ctx context.Context, kind domain.PlanKind, id int64, until *time.Time) error
	PinnedByTrainerID(ctx context.Context, trainerID int64, now time.Time) ([]domain.PinnedPlan, error)
}

// ProgressRepository defines the interface for the workout session log.
type ProgressRepository interface {
	Create(ctx context.Context, p *domain.WorkoutProgress) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkoutProgress, error)
	GetByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error)
	Update(ctx context.Context, p *domain.WorkoutProgress) error
	Delete(ctx context.Context, id int64) error
	GetByPlanID(ctx context.Context, kind domain.PlanKind, planID int64) ([]domain.WorkoutProgress, error)
	// SingleDayGeneratedByClientID returns generated-plan sessions logged
	// without a day index (single-day plans); MultiDayByClientID the opposite.
	SingleDayGeneratedByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error)
	MultiDayByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error)
	// CompletionDates maps day index to the earliest logged date for the plan.
	CompletionDates(ctx context.Context, kind domain.PlanKind, planID int64) (map[int]time.Time, error)
}

// IntakeRepository defines the interface for intake forms and their answers.
type IntakeRepository interface {
	CreateForm(ctx context.Context, form *domain.IntakeForm) (int64, error)
	FormByID(ctx context.Context, id int64) (*domain.IntakeForm, error)
	FormsByClientID(ctx context.Context, clientID int64) ([]domain.IntakeForm, error)
	// UpsertAnswer inserts or replaces the answer for (form_id, question_id).
	UpsertAnswer(ctx context.Context, answer *domain.IntakeFormAnswer) (int64, error)
	AnswersByFormID(ctx context.Context, formID int64) ([]domain.IntakeFormAnswer, error)
}

// ConsultationRepository stores one consultation row per client.
type ConsultationRepository interface {
	Upsert(ctx context.Context, c *domain.Consultation) error
	GetByClientID(ctx context.Context, clientID int64) (*domain.Consultation, error)
}

// MedicalHistoryRepository stores one medical-history row per client.
type MedicalHistoryRepository interface {
	Upsert(ctx context.Context, h *domain.MedicalHistory) error
	GetByClientID(ctx context.Context, clientID int64) (*domain.MedicalHistory, error)
}

// AssessmentRepository stores the three intake assessment types, one row of
// each per client at most.
type AssessmentRepository interface {
	UpsertFlexibility(ctx context.Context, a *domain.FlexibilityAssessment) error
	FlexibilityByClientID(ctx context.Context, clientID int64) (*domain.FlexibilityAssessment, error)
	UpsertBeginner(ctx context.Context, a *domain.BeginnerAssessment) error
	BeginnerByClientID(ctx context.Context, clientID int64) (*domain.BeginnerAssessment, error)
	UpsertAdvanced(ctx context.Context, a *domain.AdvancedAssessment) error
	AdvancedByClientID(ctx context.Context, clientID int64) (*domain.AdvancedAssessment, error)
}

// NutritionRepository stores one nutrition profile per client.
type NutritionRepository interface {
	Upsert(ctx context.Context, p *domain.NutritionProfile) error
	GetByClientID(ctx context.Context, clientID int64) (*domain.NutritionProfile, error)
}

// ExerciseRepository defines the interface for the imported exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, e *domain.Exercise) (int64, error)
	All(ctx context.Context) ([]domain.Exercise, error)
	ByBodyPart(ctx context.Context, bodyPart string) ([]domain.Exercise, error)
	BodyParts(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

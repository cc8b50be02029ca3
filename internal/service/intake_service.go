package service

import (
	"context"
	"errors"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

var (
	ErrFormNotFound       = errors.New("intake form not found")
	ErrInvalidAnswerInput = errors.New("answer must reference a question")
)

// IntakeService runs the multi-step client onboarding: dynamic intake forms
// answered against the trainer's resolved question set, plus the fixed-shape
// questionnaires (consultation, medical history, assessments, nutrition).
type IntakeService interface {
	CreateForm(ctx context.Context, trainerID, clientID int64, formType string) (*domain.IntakeForm, error)
	FormsByClient(ctx context.Context, trainerID, clientID int64) ([]domain.IntakeForm, error)
	// SaveAnswers records answers keyed by the resolved question set's keys
	// ("global_<id>"/"trainer_<id>"). Saving a key twice overwrites.
	SaveAnswers(ctx context.Context, trainerID, formID int64, answers map[string]string) error
	FormAnswers(ctx context.Context, trainerID, formID int64) ([]domain.IntakeFormAnswer, error)

	SaveConsultation(ctx context.Context, trainerID int64, c *domain.Consultation) error
	Consultation(ctx context.Context, trainerID, clientID int64) (*domain.Consultation, error)
	SaveMedicalHistory(ctx context.Context, trainerID int64, h *domain.MedicalHistory) error
	MedicalHistory(ctx context.Context, trainerID, clientID int64) (*domain.MedicalHistory, error)

	SaveFlexibility(ctx context.Context, trainerID int64, a *domain.FlexibilityAssessment) error
	SaveBeginner(ctx context.Context, trainerID int64, a *domain.BeginnerAssessment) error
	SaveAdvanced(ctx context.Context, trainerID int64, a *domain.AdvancedAssessment) error
	Assessments(ctx context.Context, trainerID, clientID int64) (*domain.FlexibilityAssessment, *domain.BeginnerAssessment, *domain.AdvancedAssessment, error)

	SaveNutritionProfile(ctx context.Context, trainerID int64, p *domain.NutritionProfile) error
	NutritionProfile(ctx context.Context, trainerID, clientID int64) (*domain.NutritionProfile, error)
}

type intakeService struct {
	intakeRepo       repository.IntakeRepository
	consultationRepo repository.ConsultationRepository
	medicalRepo      repository.MedicalHistoryRepository
	assessmentRepo   repository.AssessmentRepository
	nutritionRepo    repository.NutritionRepository
	clients          ClientService
}

// NewIntakeService creates a new instance of intakeService.
func NewIntakeService(
	intakeRepo repository.IntakeRepository,
	consultationRepo repository.ConsultationRepository,
	medicalRepo repository.MedicalHistoryRepository,
	assessmentRepo repository.AssessmentRepository,
	nutritionRepo repository.NutritionRepository,
	clients ClientService,
) IntakeService {
	return &intakeService{
		intakeRepo:       intakeRepo,
		consultationRepo: consultationRepo,
		medicalRepo:      medicalRepo,
		assessmentRepo:   assessmentRepo,
		nutritionRepo:    nutritionRepo,
		clients:          clients,
	}
}

func (s *intakeService) CreateForm(ctx context.Context, trainerID, clientID int64, formType string) (*domain.IntakeForm, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, err
	}

	form := &domain.IntakeForm{
		FormType:  formType,
		ClientID:  clientID,
		TrainerID: trainerID,
	}
	id, err := s.intakeRepo.CreateForm(ctx, form)
	if err != nil {
		return nil, err
	}
	form.ID = id
	return form, nil
}

func (s *intakeService) FormsByClient(ctx context.Context, trainerID, clientID int64) ([]domain.IntakeForm, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	return s.intakeRepo.FormsByClientID(ctx, clientID)
}

func (s *intakeService) SaveAnswers(ctx context.Context, trainerID, formID int64, answers map[string]string) error {
	form, err := s.authorizeForm(ctx, trainerID, formID)
	if err != nil {
		return err
	}

	for key, text := range answers {
		source, questionID, err := parseQuestionKey(key)
		if err != nil {
			return ErrInvalidAnswerInput
		}
		answer := &domain.IntakeFormAnswer{
			FormID:         form.ID,
			QuestionID:     questionID,
			QuestionSource: source,
			Answer:         text,
		}
		if _, err := s.intakeRepo.UpsertAnswer(ctx, answer); err != nil {
			return err
		}
	}
	return nil
}

func (s *intakeService) FormAnswers(ctx context.Context, trainerID, formID int64) ([]domain.IntakeFormAnswer, error) {
	form, err := s.authorizeForm(ctx, trainerID, formID)
	if err != nil {
		return nil, err
	}
	return s.intakeRepo.AnswersByFormID(ctx, form.ID)
}

func (s *intakeService) authorizeForm(ctx context.Context, trainerID, formID int64) (*domain.IntakeForm, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}

	form, err := s.intakeRepo.FormByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if form.TrainerID != trainerID {
		return nil, ErrClientAccessDenied
	}
	return form, nil
}

func (s *intakeService) SaveConsultation(ctx context.Context, trainerID int64, c *domain.Consultation) error {
	if _, err := s.clients.Authorize(ctx, trainerID, c.ClientID); err != nil {
		return err
	}
	return s.consultationRepo.Upsert(ctx, c)
}

func (s *intakeService) Consultation(ctx context.Context, trainerID, clientID int64) (*domain.Consultation, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	c, err := s.consultationRepo.GetByClientID(ctx, clientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFormNotFound
	}
	return c, err
}

func (s *intakeService) SaveMedicalHistory(ctx context.Context, trainerID int64, h *domain.MedicalHistory) error {
	if _, err := s.clients.Authorize(ctx, trainerID, h.ClientID); err != nil {
		return err
	}
	return s.medicalRepo.Upsert(ctx, h)
}

func (s *intakeService) MedicalHistory(ctx context.Context, trainerID, clientID int64) (*domain.MedicalHistory, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	h, err := s.medicalRepo.GetByClientID(ctx, clientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFormNotFound
	}
	return h, err
}

func (s *intakeService) SaveFlexibility(ctx context.Context, trainerID int64, a *domain.FlexibilityAssessment) error {
	if _, err := s.clients.Authorize(ctx, trainerID, a.ClientID); err != nil {
		return err
	}
	return s.assessmentRepo.UpsertFlexibility(ctx, a)
}

func (s *intakeService) SaveBeginner(ctx context.Context, trainerID int64, a *domain.BeginnerAssessment) error {
	if _, err := s.clients.Authorize(ctx, trainerID, a.ClientID); err != nil {
		return err
	}
	return s.assessmentRepo.UpsertBeginner(ctx, a)
}

func (s *intakeService) SaveAdvanced(ctx context.Context, trainerID int64, a *domain.AdvancedAssessment) error {
	if _, err := s.clients.Authorize(ctx, trainerID, a.ClientID); err != nil {
		return err
	}
	return s.assessmentRepo.UpsertAdvanced(ctx, a)
}

// Assessments returns whichever of the three assessment types exist for the
// client; missing ones come back nil without an error.
func (s *intakeService) Assessments(ctx context.Context, trainerID, clientID int64) (*domain.FlexibilityAssessment, *domain.BeginnerAssessment, *domain.AdvancedAssessment, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, nil, nil, err
	}

	flex, err := s.assessmentRepo.FlexibilityByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, nil, err
	}
	beginner, err := s.assessmentRepo.BeginnerByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, nil, err
	}
	advanced, err := s.assessmentRepo.AdvancedByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, nil, err
	}
	return flex, beginner, advanced, nil
}

func (s *intakeService) SaveNutritionProfile(ctx context.Context, trainerID int64, p *domain.NutritionProfile) error {
	if _, err := s.clients.Authorize(ctx, trainerID, p.ClientID); err != nil {
		return err
	}
	return s.nutritionRepo.Upsert(ctx, p)
}

func (s *intakeService) NutritionProfile(ctx context.Context, trainerID, clientID int64) (*domain.NutritionProfile, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	p, err := s.nutritionRepo.GetByClientID(ctx, clientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFormNotFound
	}
	return p, err
}

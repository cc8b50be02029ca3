package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

var (
	ErrProgressNotFound     = errors.New("workout session not found")
	ErrInvalidProgressInput = errors.New("workout session needs a date")
)

// ProgressService is the workout session log plus the log-and-mark flow that
// ties sessions back to plan days.
type ProgressService interface {
	Log(ctx context.Context, trainerID int64, p *domain.WorkoutProgress) (*domain.WorkoutProgress, error)
	Get(ctx context.Context, trainerID, progressID int64) (*domain.WorkoutProgress, error)
	GetByClient(ctx context.Context, trainerID, clientID int64) ([]domain.WorkoutProgress, error)
	Update(ctx context.Context, trainerID int64, p *domain.WorkoutProgress) error
	Delete(ctx context.Context, trainerID, progressID int64) error
	GetByPlan(ctx context.Context, trainerID int64, kind domain.PlanKind, planID int64) ([]domain.WorkoutProgress, error)
	SingleDayGenerated(ctx context.Context, trainerID, clientID int64) ([]domain.WorkoutProgress, error)
	MultiDay(ctx context.Context, trainerID, clientID int64) ([]domain.WorkoutProgress, error)

	// LogPlanDay is the full "client did day N today" flow: append the
	// session row, mark the day complete on the plan, then unpin the plan
	// regardless of whether it is now fully complete. Logging a session is
	// today's job done.
	LogPlanDay(ctx context.Context, trainerID int64, kind domain.PlanKind, planID int64, rawDay interface{}, session *domain.WorkoutProgress) (*domain.Plan, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	plans        PlanService
	clients      ClientService
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(progressRepo repository.ProgressRepository, plans PlanService, clients ClientService) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		plans:        plans,
		clients:      clients,
	}
}

func (s *progressService) Log(ctx context.Context, trainerID int64, p *domain.WorkoutProgress) (*domain.WorkoutProgress, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, p.ClientID); err != nil {
		return nil, err
	}
	if p.Date == "" {
		return nil, ErrInvalidProgressInput
	}
	if p.WorkoutSource == "" {
		p.WorkoutSource = "manual"
	}

	id, err := s.progressRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (s *progressService) Get(ctx context.Context, trainerID, progressID int64) (*domain.WorkoutProgress, error) {
	return s.authorizeSession(ctx, trainerID, progressID)
}

func (s *progressService) GetByClient(ctx context.Context, trainerID, clientID int64) ([]domain.WorkoutProgress, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	return s.progressRepo.GetByClientID(ctx, clientID)
}

func (s *progressService) Update(ctx context.Context, trainerID int64, p *domain.WorkoutProgress) error {
	existing, err := s.authorizeSession(ctx, trainerID, p.ID)
	if err != nil {
		return err
	}
	p.ClientID = existing.ClientID

	err = s.progressRepo.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgressNotFound
	}
	return err
}

func (s *progressService) Delete(ctx context.Context, trainerID, progressID int64) error {
	if _, err := s.authorizeSession(ctx, trainerID, progressID); err != nil {
		return err
	}

	err := s.progressRepo.Delete(ctx, progressID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgressNotFound
	}
	return err
}

func (s *progressService) GetByPlan(ctx context.Context, trainerID int64, kind domain.PlanKind, planID int64) ([]domain.WorkoutProgress, error) {
	plan, err := s.plans.GetByID(ctx, kind, planID)
	if err != nil {
		return nil, err
	}
	if _, err := s.clients.Authorize(ctx, trainerID, plan.ClientID); err != nil {
		return nil, err
	}
	return s.progressRepo.GetByPlanID(ctx, kind, planID)
}

func (s *progressService) SingleDayGenerated(ctx context.Context, trainerID, clientID int64) ([]domain.WorkoutProgress, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	return s.progressRepo.SingleDayGeneratedByClientID(ctx, clientID)
}

func (s *progressService) MultiDay(ctx context.Context, trainerID, clientID int64) ([]domain.WorkoutProgress, error) {
	if _, err := s.clients.Authorize(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	return s.progressRepo.MultiDayByClientID(ctx, clientID)
}

func (s *progressService) LogPlanDay(ctx context.Context, trainerID int64, kind domain.PlanKind, planID int64, rawDay interface{}, session *domain.WorkoutProgress) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, kind, planID)
	if err != nil {
		return nil, err
	}
	if _, err := s.clients.Authorize(ctx, trainerID, plan.ClientID); err != nil {
		return nil, err
	}

	day, err := domain.ParseDayIndex(rawDay)
	if err != nil {
		return nil, ErrInvalidDayIndex
	}

	if session == nil {
		session = &domain.WorkoutProgress{}
	}
	session.ClientID = plan.ClientID
	session.WorkoutSource = "AI"
	session.DayIndex = &day
	switch kind {
	case domain.PlanGenerated:
		session.GeneratedPlanID = &planID
	case domain.PlanDemo:
		session.DemoPlanID = &planID
	}
	if session.Date == "" {
		session.Date = time.Now().Format("2006-01-02")
	}
	if session.Name == "" {
		session.Name = plan.Name
	}

	// The session row and the completion flag are separate statements; a
	// crash between them leaves a day flagged done without a logged date,
	// which the completion report surfaces rather than repairs.
	if _, err := s.progressRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	updated, err := s.plans.MarkDayComplete(ctx, kind, planID, day)
	if err != nil {
		return nil, err
	}

	if err := s.plans.Unpin(ctx, kind, planID); err != nil {
		// The day is marked; a failed unpin only leaves the plan featured
		// until the pin lapses on its own.
		slog.Warn("unpin after day completion failed", "plan_id", planID, "error", err)
	}
	return updated, nil
}

func (s *progressService) authorizeSession(ctx context.Context, trainerID, progressID int64) (*domain.WorkoutProgress, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}

	p, err := s.progressRepo.GetByID(ctx, progressID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	if _, err := s.clients.Authorize(ctx, trainerID, p.ClientID); err != nil {
		return nil, err
	}
	return p, nil
}

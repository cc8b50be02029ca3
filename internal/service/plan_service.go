package service

import (
	"context"
	"errors"
	"time"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrInvalidPlanKind = errors.New("invalid plan kind")
	ErrInvalidDayIndex = errors.New("invalid day index")
)

// PinWindow is how long a plan stays featured on the today dashboard.
const PinWindow = 24 * time.Hour

// PlanService owns per-day completion tracking and the 24-hour pin window
// for generated and demo plans.
type PlanService interface {
	Create(ctx context.Context, kind domain.PlanKind, plan *domain.Plan) (*domain.Plan, error)
	GetByID(ctx context.Context, kind domain.PlanKind, id int64) (*domain.Plan, error)
	GetByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) ([]domain.Plan, error)
	GetLatestByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) (*domain.Plan, error)
	Update(ctx context.Context, kind domain.PlanKind, id int64, name, details string) error
	Delete(ctx context.Context, kind domain.PlanKind, id int64) error

	// MarkDayComplete sets one day's flag and recomputes the aggregate
	// completed flag. Marking an already-complete day is a no-op in effect.
	// The raw day reference accepts a bare integer or a "Day N" string.
	MarkDayComplete(ctx context.Context, kind domain.PlanKind, id int64, rawDay interface{}) (*domain.Plan, error)

	// PinForToday pins the plan for the next 24 hours. An active pin is never
	// extended: the call reports false and leaves the deadline untouched.
	PinForToday(ctx context.Context, kind domain.PlanKind, id int64) (bool, error)
	// CheckPinStatus reads the pin lazily: an expired deadline reports false
	// without writing anything back.
	CheckPinStatus(ctx context.Context, kind domain.PlanKind, id int64) (bool, error)
	// Unpin clears the pin unconditionally.
	Unpin(ctx context.Context, kind domain.PlanKind, id int64) error
	// PinnedPlans is the today's-dashboard feed: every actively pinned plan
	// across the trainer's clients, most recently pinned first.
	PinnedPlans(ctx context.Context, trainerID int64) ([]domain.PinnedPlan, error)

	// CompletionStatus joins the plan's completion map with the workout log
	// to report, per day, when it was actually logged. A day can be flagged
	// done with no logged date; the two writes are separate statements and
	// the gap is reported as-is.
	CompletionStatus(ctx context.Context, kind domain.PlanKind, id int64) (*domain.CompletionReport, error)
}

type planService struct {
	planRepo     repository.PlanRepository
	progressRepo repository.ProgressRepository
	now          func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, progressRepo repository.ProgressRepository) PlanService {
	return &planService{
		planRepo:     planRepo,
		progressRepo: progressRepo,
		now:          time.Now,
	}
}

func (s *planService) Create(ctx context.Context, kind domain.PlanKind, plan *domain.Plan) (*domain.Plan, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPlanKind
	}
	if plan.DayCompletion == nil {
		plan.DayCompletion = domain.DayCompletion{}
	}

	id, err := s.planRepo.Create(ctx, kind, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) GetByID(ctx context.Context, kind domain.PlanKind, id int64) (*domain.Plan, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPlanKind
	}
	plan, err := s.planRepo.GetByID(ctx, kind, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPlanNotFound
	}
	return plan, err
}

func (s *planService) GetByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) ([]domain.Plan, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPlanKind
	}
	return s.planRepo.GetByClientID(ctx, kind, clientID)
}

func (s *planService) GetLatestByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) (*domain.Plan, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPlanKind
	}
	plan, err := s.planRepo.GetLatestByClientID(ctx, kind, clientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPlanNotFound
	}
	return plan, err
}

func (s *planService) Update(ctx context.Context, kind domain.PlanKind, id int64, name, details string) error {
	if !kind.Valid() {
		return ErrInvalidPlanKind
	}
	err := s.planRepo.Update(ctx, kind, id, name, details)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

func (s *planService) Delete(ctx context.Context, kind domain.PlanKind, id int64) error {
	if !kind.Valid() {
		return ErrInvalidPlanKind
	}
	err := s.planRepo.Delete(ctx, kind, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

func (s *planService) MarkDayComplete(ctx context.Context, kind domain.PlanKind, id int64, rawDay interface{}) (*domain.Plan, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPlanKind
	}

	day, err := domain.ParseDayIndex(rawDay)
	if err != nil {
		return nil, ErrInvalidDayIndex
	}

	plan, err := s.planRepo.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if plan.DayCompletion == nil {
		plan.DayCompletion = domain.DayCompletion{}
	}
	plan.DayCompletion[day] = true
	plan.CompletedMarked = plan.DayCompletion.Complete(plan.TotalDays(kind))

	// Map and flag land in one UPDATE. Two concurrent marks on the same plan
	// are last-write-wins on the whole map; there is no row versioning.
	if err := s.planRepo.UpdateCompletion(ctx, kind, id, plan.DayCompletion, plan.CompletedMarked); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) PinForToday(ctx context.Context, kind domain.PlanKind, id int64) (bool, error) {
	if !kind.Valid() {
		return false, ErrInvalidPlanKind
	}

	plan, err := s.planRepo.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrPlanNotFound
		}
		return false, err
	}

	now := s.now()
	if plan.PinActive(now) {
		// Already pinned is a no-op, not an error; the deadline stands.
		return false, nil
	}

	until := now.Add(PinWindow)
	if err := s.planRepo.SetPinnedUntil(ctx, kind, id, &until); err != nil {
		return false, err
	}
	return true, nil
}

func (s *planService) CheckPinStatus(ctx context.Context, kind domain.PlanKind, id int64) (bool, error) {
	if !kind.Valid() {
		return false, ErrInvalidPlanKind
	}

	plan, err := s.planRepo.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrPlanNotFound
		}
		return false, err
	}
	return plan.PinActive(s.now()), nil
}

func (s *planService) Unpin(ctx context.Context, kind domain.PlanKind, id int64) error {
	if !kind.Valid() {
		return ErrInvalidPlanKind
	}
	err := s.planRepo.SetPinnedUntil(ctx, kind, id, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

func (s *planService) PinnedPlans(ctx context.Context, trainerID int64) ([]domain.PinnedPlan, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}
	return s.planRepo.PinnedByTrainerID(ctx, trainerID, s.now())
}

func (s *planService) CompletionStatus(ctx context.Context, kind domain.PlanKind, id int64) (*domain.CompletionReport, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPlanKind
	}

	plan, err := s.planRepo.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	dates, err := s.progressRepo.CompletionDates(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	totalDays := plan.TotalDays(kind)
	report := &domain.CompletionReport{
		CompletedMarked: plan.CompletedMarked,
		Days:            make([]domain.DayStatus, 0, totalDays),
	}
	for day := 1; day <= totalDays; day++ {
		status := domain.DayStatus{Day: day, Done: plan.DayCompletion[day]}
		if date, ok := dates[day]; ok {
			d := date
			status.CompletedOn = &d
		}
		report.Days = append(report.Days, status)
	}
	return report, nil
}

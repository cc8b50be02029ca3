package service

import (
	"context"
	"testing"
	"time"

	"smartgains/trainer-app/internal/domain"
)

func TestLogPlanDayUnpinsRegardlessOfCompletion(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	planRepo := newFakePlanRepo()
	progressRepo := newFakeProgressRepo()
	clientRepo := newFakeClientRepo()
	clientRepo.Create(ctx, &domain.Client{FirstName: "Ada", LastName: "Nilsen", TrainerID: 5})

	plans := &planService{planRepo: planRepo, progressRepo: progressRepo, now: func() time.Time { return now }}
	clients := NewClientService(clientRepo)
	svc := NewProgressService(progressRepo, plans, clients)

	until := now.Add(PinWindow)
	planRepo.put(domain.PlanDemo, &domain.Plan{ID: 1, ClientID: 1, Name: "Starter (Quick)", PinnedUntil: &until})

	plan, err := svc.LogPlanDay(ctx, 5, domain.PlanDemo, 1, "Day 1", &domain.WorkoutProgress{
		Date:            "2026-03-10",
		WorkoutType:     "strength",
		DurationMinutes: 45,
	})
	if err != nil {
		t.Fatalf("LogPlanDay: %v", err)
	}

	// One day of three done: the plan is not complete, but the pin is gone
	// anyway. Logging a session is today's job done.
	if plan.CompletedMarked {
		t.Error("one marked day flipped the aggregate flag")
	}
	stored, _ := planRepo.GetByID(ctx, domain.PlanDemo, 1)
	if stored.PinnedUntil != nil {
		t.Errorf("pinned_until = %v after logging a day, want nil", stored.PinnedUntil)
	}
	if !stored.DayCompletion[1] {
		t.Error("day 1 not marked")
	}

	sessions, _ := progressRepo.GetByPlanID(ctx, domain.PlanDemo, 1)
	if len(sessions) != 1 {
		t.Fatalf("logged sessions = %d, want 1", len(sessions))
	}
	s := sessions[0]
	if s.WorkoutSource != "AI" || s.DayIndex == nil || *s.DayIndex != 1 {
		t.Errorf("session = %+v, want AI-sourced with day_index 1", s)
	}
	if s.ClientID != 1 || s.Name != "Starter (Quick)" {
		t.Errorf("session client/name = %d/%q", s.ClientID, s.Name)
	}
}

func TestLogPlanDayRejectsForeignClient(t *testing.T) {
	ctx := context.Background()

	planRepo := newFakePlanRepo()
	progressRepo := newFakeProgressRepo()
	clientRepo := newFakeClientRepo()
	clientRepo.Create(ctx, &domain.Client{FirstName: "Ada", LastName: "Nilsen", TrainerID: 5})

	plans := NewPlanService(planRepo, progressRepo)
	svc := NewProgressService(progressRepo, plans, NewClientService(clientRepo))

	planRepo.put(domain.PlanDemo, &domain.Plan{ID: 1, ClientID: 1})

	if _, err := svc.LogPlanDay(ctx, 9, domain.PlanDemo, 1, 1, nil); err != ErrClientAccessDenied {
		t.Errorf("foreign trainer error = %v, want ErrClientAccessDenied", err)
	}
	if sessions, _ := progressRepo.GetByPlanID(ctx, domain.PlanDemo, 1); len(sessions) != 0 {
		t.Errorf("rejected call still logged %d sessions", len(sessions))
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartgains/trainer-app/internal/domain"
)

const multiDayPlan = `# Strength Block
## Day 1
Squat 5x5
## Day 2
Bench 5x5
## Day 3
Deadlift 3x5
## Day 4
Press 5x5
`

func newTestPlanService(now time.Time) (*planService, *fakePlanRepo, *fakeProgressRepo) {
	planRepo := newFakePlanRepo()
	progressRepo := newFakeProgressRepo()
	svc := &planService{
		planRepo:     planRepo,
		progressRepo: progressRepo,
		now:          func() time.Time { return now },
	}
	return svc, planRepo, progressRepo
}

func TestMarkDayCompleteDemoScenario(t *testing.T) {
	svc, planRepo, _ := newTestPlanService(time.Now())
	ctx := context.Background()

	planRepo.put(domain.PlanDemo, &domain.Plan{ID: 7, ClientID: 1, Name: "Starter (Quick)"})

	plan, err := svc.MarkDayComplete(ctx, domain.PlanDemo, 7, "Day 1")
	if err != nil {
		t.Fatalf("mark day 1: %v", err)
	}
	if !plan.DayCompletion[1] || plan.CompletedMarked {
		t.Fatalf("after day 1: map=%v completed=%v", plan.DayCompletion, plan.CompletedMarked)
	}

	plan, err = svc.MarkDayComplete(ctx, domain.PlanDemo, 7, 3)
	if err != nil {
		t.Fatalf("mark day 3: %v", err)
	}
	if !plan.DayCompletion[1] || !plan.DayCompletion[3] || plan.CompletedMarked {
		t.Fatalf("after day 3: map=%v completed=%v", plan.DayCompletion, plan.CompletedMarked)
	}

	plan, err = svc.MarkDayComplete(ctx, domain.PlanDemo, 7, 2)
	if err != nil {
		t.Fatalf("mark day 2: %v", err)
	}
	if !plan.CompletedMarked {
		t.Fatalf("all three days marked but completed=%v (map=%v)", plan.CompletedMarked, plan.DayCompletion)
	}
}

func TestMarkDayCompleteMonotonic(t *testing.T) {
	svc, planRepo, _ := newTestPlanService(time.Now())
	ctx := context.Background()

	planRepo.put(domain.PlanGenerated, &domain.Plan{ID: 1, ClientID: 1, Details: multiDayPlan})

	// Any order, strict subset stays incomplete.
	for _, day := range []int{4, 1, 3} {
		plan, err := svc.MarkDayComplete(ctx, domain.PlanGenerated, 1, day)
		if err != nil {
			t.Fatalf("mark day %d: %v", day, err)
		}
		if plan.CompletedMarked {
			t.Fatalf("completed after subset ending with day %d", day)
		}
	}

	// Re-marking a done day stays a no-op.
	plan, err := svc.MarkDayComplete(ctx, domain.PlanGenerated, 1, 1)
	if err != nil {
		t.Fatalf("re-mark day 1: %v", err)
	}
	if plan.CompletedMarked {
		t.Fatal("re-marking a day flipped the aggregate flag")
	}

	plan, err = svc.MarkDayComplete(ctx, domain.PlanGenerated, 1, 2)
	if err != nil {
		t.Fatalf("mark day 2: %v", err)
	}
	if !plan.CompletedMarked {
		t.Fatalf("all 4 days marked but completed=false (map=%v)", plan.DayCompletion)
	}
}

func TestMarkDayCompleteStringAndIntEquivalent(t *testing.T) {
	ctx := context.Background()

	svcA, repoA, _ := newTestPlanService(time.Now())
	repoA.put(domain.PlanDemo, &domain.Plan{ID: 1, ClientID: 1})
	planA, err := svcA.MarkDayComplete(ctx, domain.PlanDemo, 1, "Day 2")
	if err != nil {
		t.Fatalf("mark \"Day 2\": %v", err)
	}

	svcB, repoB, _ := newTestPlanService(time.Now())
	repoB.put(domain.PlanDemo, &domain.Plan{ID: 1, ClientID: 1})
	planB, err := svcB.MarkDayComplete(ctx, domain.PlanDemo, 1, 2)
	if err != nil {
		t.Fatalf("mark 2: %v", err)
	}

	if len(planA.DayCompletion) != len(planB.DayCompletion) || !planA.DayCompletion[2] || !planB.DayCompletion[2] {
		t.Errorf("stored state differs: %v vs %v", planA.DayCompletion, planB.DayCompletion)
	}
}

func TestMarkDayCompleteErrors(t *testing.T) {
	svc, planRepo, _ := newTestPlanService(time.Now())
	ctx := context.Background()
	planRepo.put(domain.PlanDemo, &domain.Plan{ID: 1, ClientID: 1})

	if _, err := svc.MarkDayComplete(ctx, domain.PlanDemo, 99, 1); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("unknown plan error = %v, want ErrPlanNotFound", err)
	}
	if _, err := svc.MarkDayComplete(ctx, domain.PlanDemo, 1, "whenever"); !errors.Is(err, ErrInvalidDayIndex) {
		t.Errorf("bad day error = %v, want ErrInvalidDayIndex", err)
	}
	if _, err := svc.MarkDayComplete(ctx, "weekly", 1, 1); !errors.Is(err, ErrInvalidPlanKind) {
		t.Errorf("bad kind error = %v, want ErrInvalidPlanKind", err)
	}
}

func TestPinForTodayDoesNotExtendActivePin(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, planRepo, _ := newTestPlanService(now)
	ctx := context.Background()
	planRepo.put(domain.PlanGenerated, &domain.Plan{ID: 1, ClientID: 1, Details: multiDayPlan})

	pinned, err := svc.PinForToday(ctx, domain.PlanGenerated, 1)
	if err != nil || !pinned {
		t.Fatalf("first pin = (%v, %v), want (true, nil)", pinned, err)
	}

	stored, _ := planRepo.GetByID(ctx, domain.PlanGenerated, 1)
	firstDeadline := *stored.PinnedUntil
	if want := now.Add(PinWindow); !firstDeadline.Equal(want) {
		t.Fatalf("pinned_until = %v, want %v", firstDeadline, want)
	}

	// Second pin while active: false, deadline untouched.
	pinned, err = svc.PinForToday(ctx, domain.PlanGenerated, 1)
	if err != nil || pinned {
		t.Fatalf("second pin = (%v, %v), want (false, nil)", pinned, err)
	}
	stored, _ = planRepo.GetByID(ctx, domain.PlanGenerated, 1)
	if !stored.PinnedUntil.Equal(firstDeadline) {
		t.Errorf("active pin extended: %v -> %v", firstDeadline, stored.PinnedUntil)
	}
}

func TestPinLazyExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, planRepo, _ := newTestPlanService(now)
	ctx := context.Background()

	expired := now.Add(-time.Minute)
	planRepo.put(domain.PlanDemo, &domain.Plan{ID: 1, ClientID: 1, PinnedUntil: &expired})

	active, err := svc.CheckPinStatus(ctx, domain.PlanDemo, 1)
	if err != nil {
		t.Fatalf("CheckPinStatus: %v", err)
	}
	if active {
		t.Error("expired pin reads as active")
	}

	// Expiry is lazy: the stored timestamp is still there, untouched.
	stored, _ := planRepo.GetByID(ctx, domain.PlanDemo, 1)
	if stored.PinnedUntil == nil || !stored.PinnedUntil.Equal(expired) {
		t.Errorf("lazy expiry wrote back: %v", stored.PinnedUntil)
	}

	// And an expired pin can be re-pinned.
	pinned, err := svc.PinForToday(ctx, domain.PlanDemo, 1)
	if err != nil || !pinned {
		t.Fatalf("re-pin after expiry = (%v, %v), want (true, nil)", pinned, err)
	}
}

func TestUnpinClearsDeadline(t *testing.T) {
	now := time.Now()
	svc, planRepo, _ := newTestPlanService(now)
	ctx := context.Background()

	until := now.Add(PinWindow)
	planRepo.put(domain.PlanGenerated, &domain.Plan{ID: 1, ClientID: 1, PinnedUntil: &until})

	if err := svc.Unpin(ctx, domain.PlanGenerated, 1); err != nil {
		t.Fatalf("Unpin: %v", err)
	}
	stored, _ := planRepo.GetByID(ctx, domain.PlanGenerated, 1)
	if stored.PinnedUntil != nil {
		t.Errorf("pinned_until = %v after unpin, want nil", stored.PinnedUntil)
	}
}

func TestPinnedPlansFeed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, planRepo, _ := newTestPlanService(now)
	ctx := context.Background()

	planRepo.trainers[1] = 5
	planRepo.trainers[2] = 5
	planRepo.trainers[3] = 9

	soon := now.Add(2 * time.Hour)
	later := now.Add(20 * time.Hour)
	expired := now.Add(-time.Hour)

	planRepo.put(domain.PlanGenerated, &domain.Plan{ID: 1, ClientID: 1, PinnedUntil: &soon})
	planRepo.put(domain.PlanDemo, &domain.Plan{ID: 2, ClientID: 2, PinnedUntil: &later})
	planRepo.put(domain.PlanGenerated, &domain.Plan{ID: 3, ClientID: 1, PinnedUntil: &expired})
	planRepo.put(domain.PlanDemo, &domain.Plan{ID: 4, ClientID: 3, PinnedUntil: &later})

	feed, err := svc.PinnedPlans(ctx, 5)
	if err != nil {
		t.Fatalf("PinnedPlans: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed size = %d, want 2 (expired and other-trainer plans excluded)", len(feed))
	}
	if feed[0].ID != 2 || feed[0].Kind != domain.PlanDemo {
		t.Errorf("feed[0] = %s/%d, want demo/2 (latest deadline first)", feed[0].Kind, feed[0].ID)
	}
	if feed[1].ID != 1 {
		t.Errorf("feed[1] = %s/%d, want generated/1", feed[1].Kind, feed[1].ID)
	}
}

func TestCompletionStatusKeepsUnloggedDays(t *testing.T) {
	svc, planRepo, progressRepo := newTestPlanService(time.Now())
	ctx := context.Background()

	planRepo.put(domain.PlanDemo, &domain.Plan{
		ID:            1,
		ClientID:      1,
		DayCompletion: domain.DayCompletion{1: true, 2: true},
	})

	// Only day 1 has a logged session; day 2's flag is set with no matching
	// log row, and the report must show that gap rather than repair it.
	planID := int64(1)
	day := 1
	progressRepo.Create(ctx, &domain.WorkoutProgress{
		ClientID:   1,
		Date:       "2026-03-09",
		DemoPlanID: &planID,
		DayIndex:   &day,
	})

	report, err := svc.CompletionStatus(ctx, domain.PlanDemo, 1)
	if err != nil {
		t.Fatalf("CompletionStatus: %v", err)
	}
	if len(report.Days) != domain.DemoPlanDays {
		t.Fatalf("report days = %d, want %d", len(report.Days), domain.DemoPlanDays)
	}

	d1, d2, d3 := report.Days[0], report.Days[1], report.Days[2]
	if !d1.Done || d1.CompletedOn == nil || d1.CompletedOn.Format("2006-01-02") != "2026-03-09" {
		t.Errorf("day 1 = %+v, want done with logged date", d1)
	}
	if !d2.Done || d2.CompletedOn != nil {
		t.Errorf("day 2 = %+v, want done with nil date", d2)
	}
	if d3.Done || d3.CompletedOn != nil {
		t.Errorf("day 3 = %+v, want untouched", d3)
	}
}

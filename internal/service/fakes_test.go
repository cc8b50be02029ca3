package service

import (
	"context"
	"sort"
	"time"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

// In-memory repositories backing the service tests. They implement the same
// contracts as the SQL layer, including ErrNotFound and the overlay upsert
// key.

type fakeQuestionRepo struct {
	globals  []domain.GlobalQuestion
	overlays map[int64]*domain.TrainerQuestion
	nextID   int64
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{overlays: map[int64]*domain.TrainerQuestion{}, nextID: 1}
}

func (f *fakeQuestionRepo) Globals(ctx context.Context, filter repository.QuestionFilter) ([]domain.GlobalQuestion, error) {
	var out []domain.GlobalQuestion
	for _, g := range f.globals {
		if filter.Category != "" && g.Category != filter.Category {
			continue
		}
		if filter.Template != "" && g.Template != filter.Template {
			continue
		}
		if filter.DefaultsOnly && !g.IsDefault {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeQuestionRepo) GlobalByID(ctx context.Context, id int64) (*domain.GlobalQuestion, error) {
	for i := range f.globals {
		if f.globals[i].ID == id {
			return &f.globals[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeQuestionRepo) OverlaysByTrainerID(ctx context.Context, trainerID int64) ([]domain.TrainerQuestion, error) {
	ids := make([]int64, 0, len(f.overlays))
	for id, o := range f.overlays {
		if o.TrainerID == trainerID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.TrainerQuestion, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.overlays[id])
	}
	return out, nil
}

func (f *fakeQuestionRepo) OverlayByID(ctx context.Context, id, trainerID int64) (*domain.TrainerQuestion, error) {
	o, ok := f.overlays[id]
	if !ok || o.TrainerID != trainerID {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeQuestionRepo) OverlayByGlobalID(ctx context.Context, trainerID, globalQuestionID int64) (*domain.TrainerQuestion, error) {
	for _, o := range f.overlays {
		if o.TrainerID == trainerID && o.GlobalQuestionID != nil && *o.GlobalQuestionID == globalQuestionID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeQuestionRepo) UpsertOverlay(ctx context.Context, overlay *domain.TrainerQuestion) (int64, error) {
	if overlay.GlobalQuestionID != nil {
		if existing, err := f.OverlayByGlobalID(ctx, overlay.TrainerID, *overlay.GlobalQuestionID); err == nil {
			cp := *overlay
			cp.ID = existing.ID
			f.overlays[existing.ID] = &cp
			return existing.ID, nil
		}
	}
	cp := *overlay
	cp.ID = f.nextID
	f.nextID++
	f.overlays[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeQuestionRepo) DeleteOverlay(ctx context.Context, id, trainerID int64) error {
	o, ok := f.overlays[id]
	if !ok || o.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(f.overlays, id)
	return nil
}

type fakePlanKey struct {
	kind domain.PlanKind
	id   int64
}

type fakePlanRepo struct {
	plans    map[fakePlanKey]*domain.Plan
	trainers map[int64]int64 // client id -> trainer id
	nextID   int64
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		plans:    map[fakePlanKey]*domain.Plan{},
		trainers: map[int64]int64{},
		nextID:   1,
	}
}

func (f *fakePlanRepo) put(kind domain.PlanKind, plan *domain.Plan) *domain.Plan {
	if plan.ID == 0 {
		plan.ID = f.nextID
		f.nextID++
	}
	if plan.DayCompletion == nil {
		plan.DayCompletion = domain.DayCompletion{}
	}
	f.plans[fakePlanKey{kind, plan.ID}] = plan
	return plan
}

func (f *fakePlanRepo) Create(ctx context.Context, kind domain.PlanKind, plan *domain.Plan) (int64, error) {
	cp := *plan
	return f.put(kind, &cp).ID, nil
}

func (f *fakePlanRepo) GetByID(ctx context.Context, kind domain.PlanKind, id int64) (*domain.Plan, error) {
	plan, ok := f.plans[fakePlanKey{kind, id}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *plan
	cp.DayCompletion = make(domain.DayCompletion, len(plan.DayCompletion))
	for k, v := range plan.DayCompletion {
		cp.DayCompletion[k] = v
	}
	return &cp, nil
}

func (f *fakePlanRepo) GetLatestByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) (*domain.Plan, error) {
	var latest *domain.Plan
	for key, plan := range f.plans {
		if key.kind == kind && plan.ClientID == clientID {
			if latest == nil || plan.ID > latest.ID {
				latest = plan
			}
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakePlanRepo) GetByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) ([]domain.Plan, error) {
	var out []domain.Plan
	for key, plan := range f.plans {
		if key.kind == kind && plan.ClientID == clientID {
			out = append(out, *plan)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakePlanRepo) Update(ctx context.Context, kind domain.PlanKind, id int64, name, details string) error {
	plan, ok := f.plans[fakePlanKey{kind, id}]
	if !ok {
		return repository.ErrNotFound
	}
	plan.Name = name
	plan.Details = details
	return nil
}

func (f *fakePlanRepo) Delete(ctx context.Context, kind domain.PlanKind, id int64) error {
	if _, ok := f.plans[fakePlanKey{kind, id}]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, fakePlanKey{kind, id})
	return nil
}

func (f *fakePlanRepo) UpdateCompletion(ctx context.Context, kind domain.PlanKind, id int64, days domain.DayCompletion, completed bool) error {
	plan, ok := f.plans[fakePlanKey{kind, id}]
	if !ok {
		return repository.ErrNotFound
	}
	plan.DayCompletion = days
	plan.CompletedMarked = completed
	return nil
}

func (f *fakePlanRepo) SetPinnedUntil(ctx context.Context, kind domain.PlanKind, id int64, until *time.Time) error {
	plan, ok := f.plans[fakePlanKey{kind, id}]
	if !ok {
		return repository.ErrNotFound
	}
	plan.PinnedUntil = until
	return nil
}

func (f *fakePlanRepo) PinnedByTrainerID(ctx context.Context, trainerID int64, now time.Time) ([]domain.PinnedPlan, error) {
	var out []domain.PinnedPlan
	for key, plan := range f.plans {
		if f.trainers[plan.ClientID] != trainerID {
			continue
		}
		if plan.PinActive(now) {
			out = append(out, domain.PinnedPlan{Kind: key.kind, Plan: *plan})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PinnedUntil.After(*out[j].PinnedUntil) })
	return out, nil
}

type fakeProgressRepo struct {
	sessions map[int64]*domain.WorkoutProgress
	nextID   int64
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{sessions: map[int64]*domain.WorkoutProgress{}, nextID: 1}
}

func (f *fakeProgressRepo) Create(ctx context.Context, p *domain.WorkoutProgress) (int64, error) {
	cp := *p
	cp.ID = f.nextID
	f.nextID++
	f.sessions[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeProgressRepo) GetByID(ctx context.Context, id int64) (*domain.WorkoutProgress, error) {
	p, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProgressRepo) GetByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error) {
	var out []domain.WorkoutProgress
	for _, p := range f.sessions {
		if p.ClientID == clientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) Update(ctx context.Context, p *domain.WorkoutProgress) error {
	if _, ok := f.sessions[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	f.sessions[p.ID] = &cp
	return nil
}

func (f *fakeProgressRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeProgressRepo) GetByPlanID(ctx context.Context, kind domain.PlanKind, planID int64) ([]domain.WorkoutProgress, error) {
	var out []domain.WorkoutProgress
	for _, p := range f.sessions {
		if f.matchesPlan(p, kind, planID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) SingleDayGeneratedByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error) {
	var out []domain.WorkoutProgress
	for _, p := range f.sessions {
		if p.ClientID == clientID && p.GeneratedPlanID != nil && p.DayIndex == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) MultiDayByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error) {
	var out []domain.WorkoutProgress
	for _, p := range f.sessions {
		if p.ClientID == clientID && p.DayIndex != nil && (p.GeneratedPlanID != nil || p.DemoPlanID != nil) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) CompletionDates(ctx context.Context, kind domain.PlanKind, planID int64) (map[int]time.Time, error) {
	dates := map[int]time.Time{}
	for _, p := range f.sessions {
		if !f.matchesPlan(p, kind, planID) || p.DayIndex == nil {
			continue
		}
		t, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		if existing, ok := dates[*p.DayIndex]; !ok || t.Before(existing) {
			dates[*p.DayIndex] = t
		}
	}
	return dates, nil
}

func (f *fakeProgressRepo) matchesPlan(p *domain.WorkoutProgress, kind domain.PlanKind, planID int64) bool {
	switch kind {
	case domain.PlanGenerated:
		return p.GeneratedPlanID != nil && *p.GeneratedPlanID == planID
	case domain.PlanDemo:
		return p.DemoPlanID != nil && *p.DemoPlanID == planID
	}
	return false
}

type fakeClientRepo struct {
	clients map[int64]*domain.Client
	nextID  int64
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[int64]*domain.Client{}, nextID: 1}
}

func (f *fakeClientRepo) Create(ctx context.Context, client *domain.Client) (int64, error) {
	cp := *client
	cp.ID = f.nextID
	f.nextID++
	f.clients[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientRepo) GetByTrainerID(ctx context.Context, trainerID int64) ([]domain.Client, error) {
	var out []domain.Client
	for _, c := range f.clients {
		if c.TrainerID == trainerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) CountByTrainerID(ctx context.Context, trainerID int64) (int, error) {
	count := 0
	for _, c := range f.clients {
		if c.TrainerID == trainerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, client *domain.Client) error {
	existing, ok := f.clients[client.ID]
	if !ok || existing.TrainerID != client.TrainerID {
		return repository.ErrNotFound
	}
	cp := *client
	f.clients[client.ID] = &cp
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id, trainerID int64) error {
	existing, ok := f.clients[id]
	if !ok || existing.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

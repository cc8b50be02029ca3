package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

func seedQuestionRepo() *fakeQuestionRepo {
	repo := newFakeQuestionRepo()
	repo.globals = []domain.GlobalQuestion{
		{ID: 1, QuestionText: "Any existing conditions?", QuestionType: domain.QuestionTextarea, Category: "health", IsDefault: true},
		{ID: 2, QuestionText: "What are your fitness goals?", QuestionType: domain.QuestionTextarea, Category: "goals", IsDefault: true},
		{ID: 3, QuestionText: "Preferred training days", QuestionType: domain.QuestionSelect, Options: domain.StringList{"Mon", "Wed", "Fri"}, Category: "goals"},
	}
	return repo
}

func resolvedKeys(set []domain.EffectiveQuestion) []string {
	keys := make([]string, len(set))
	for i, q := range set {
		keys[i] = q.Key
	}
	return keys
}

func TestResolveNoOverlays(t *testing.T) {
	svc := NewQuestionService(seedQuestionRepo())
	ctx := context.Background()

	set, err := svc.Resolve(ctx, 5, repository.QuestionFilter{Category: "health"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := resolvedKeys(set), []string{"global_1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	if set[0].Source != domain.SourceGlobal {
		t.Errorf("source = %q, want global", set[0].Source)
	}
}

func TestResolveOrderAndIdempotence(t *testing.T) {
	repo := seedQuestionRepo()
	svc := NewQuestionService(repo)
	ctx := context.Background()

	if _, err := svc.SaveOverlay(ctx, 5, OverlayInput{
		Action:       domain.ActionAdd,
		QuestionText: "Injury history?",
		QuestionType: domain.QuestionTextarea,
		Category:     "health",
	}); err != nil {
		t.Fatalf("SaveOverlay: %v", err)
	}

	first, err := svc.Resolve(ctx, 5, repository.QuestionFilter{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"global_1", "global_2", "global_3", "trainer_1"}
	if got := resolvedKeys(first); !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	second, err := svc.Resolve(ctx, 5, repository.QuestionFilter{})
	if err != nil {
		t.Fatalf("Resolve again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two resolves without writes differ")
	}
}

func TestResolveEditOverridesGlobal(t *testing.T) {
	repo := seedQuestionRepo()
	svc := NewQuestionService(repo)
	ctx := context.Background()
	globalID := int64(2)

	if _, err := svc.SaveOverlay(ctx, 5, OverlayInput{
		GlobalQuestionID: &globalID,
		Action:           domain.ActionEdit,
		QuestionText:     "What do you want to achieve in 12 weeks?",
		QuestionType:     domain.QuestionTextarea,
		Category:         "goals",
	}); err != nil {
		t.Fatalf("SaveOverlay: %v", err)
	}

	set, err := svc.Resolve(ctx, 5, repository.QuestionFilter{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var edited *domain.EffectiveQuestion
	for i := range set {
		if set[i].Key == "global_2" {
			edited = &set[i]
		}
	}
	if edited == nil {
		t.Fatal("global_2 missing from resolved set")
	}
	if edited.QuestionText != "What do you want to achieve in 12 weeks?" {
		t.Errorf("text = %q, want the overlay's text", edited.QuestionText)
	}
	if edited.Source != domain.SourceTrainer {
		t.Errorf("source = %q, want trainer", edited.Source)
	}

	// The other trainer still sees the catalog text.
	other, err := svc.Resolve(ctx, 9, repository.QuestionFilter{})
	if err != nil {
		t.Fatalf("Resolve other trainer: %v", err)
	}
	for _, q := range other {
		if q.Key == "global_2" && q.QuestionText != "What are your fitness goals?" {
			t.Errorf("other trainer sees %q", q.QuestionText)
		}
	}
}

func TestDeleteThenAddRoundTrip(t *testing.T) {
	repo := seedQuestionRepo()
	svc := NewQuestionService(repo)
	ctx := context.Background()

	if err := svc.RemoveQuestion(ctx, 5, "global_1"); err != nil {
		t.Fatalf("RemoveQuestion: %v", err)
	}

	set, err := svc.Resolve(ctx, 5, repository.QuestionFilter{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for _, q := range set {
		if q.Key == "global_1" {
			t.Fatal("deleted question still resolved")
		}
	}

	// Re-adding the same catalog question must overwrite the delete row, not
	// stack a second overlay.
	globalID := int64(1)
	if _, err := svc.SaveOverlay(ctx, 5, OverlayInput{
		GlobalQuestionID: &globalID,
		Action:           domain.ActionAdd,
		QuestionText:     "Any conditions I should know about?",
		QuestionType:     domain.QuestionTextarea,
		Category:         "health",
	}); err != nil {
		t.Fatalf("SaveOverlay: %v", err)
	}

	overlays, _ := svc.Overlays(ctx, 5)
	if len(overlays) != 1 {
		t.Fatalf("overlay rows = %d, want 1", len(overlays))
	}

	set, err = svc.Resolve(ctx, 5, repository.QuestionFilter{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	found := false
	for _, q := range set {
		if q.Key == "global_1" {
			found = true
			if q.QuestionText != "Any conditions I should know about?" {
				t.Errorf("text = %q, want the re-added text", q.QuestionText)
			}
		}
	}
	if !found {
		t.Error("re-added question missing from resolved set")
	}
}

func TestResolveTemplateFilterOnAdditions(t *testing.T) {
	repo := seedQuestionRepo()
	svc := NewQuestionService(repo)
	ctx := context.Background()

	if _, err := svc.SaveOverlay(ctx, 5, OverlayInput{
		Action:       domain.ActionAdd,
		QuestionText: "Injury history?",
		QuestionType: domain.QuestionTextarea,
		Template:     "intake_v2",
	}); err != nil {
		t.Fatalf("SaveOverlay: %v", err)
	}

	matching, err := svc.Resolve(ctx, 5, repository.QuestionFilter{Template: "intake_v2"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got, want := resolvedKeys(matching), []string{"trainer_1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	if matching[0].Source != domain.SourceTrainer {
		t.Errorf("source = %q, want trainer", matching[0].Source)
	}

	other, err := svc.Resolve(ctx, 5, repository.QuestionFilter{Template: "other"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("template \"other\" resolved %d questions, want 0", len(other))
	}
}

func TestSaveOverlayValidation(t *testing.T) {
	svc := NewQuestionService(seedQuestionRepo())
	ctx := context.Background()
	missing := int64(99)
	valid := int64(1)

	tests := []struct {
		name      string
		trainerID int64
		input     OverlayInput
		wantErr   error
	}{
		{
			name:      "no trainer identity",
			trainerID: 0,
			input:     OverlayInput{Action: domain.ActionAdd, QuestionText: "x", QuestionType: domain.QuestionText},
			wantErr:   ErrUnauthorized,
		},
		{
			name:      "bad action",
			trainerID: 5,
			input:     OverlayInput{Action: "replace", QuestionText: "x"},
			wantErr:   ErrInvalidQuestionInput,
		},
		{
			name:      "edit without target",
			trainerID: 5,
			input:     OverlayInput{Action: domain.ActionEdit, QuestionText: "x", QuestionType: domain.QuestionText},
			wantErr:   ErrInvalidQuestionInput,
		},
		{
			name:      "select without options",
			trainerID: 5,
			input:     OverlayInput{GlobalQuestionID: &valid, Action: domain.ActionEdit, QuestionText: "x", QuestionType: domain.QuestionSelect},
			wantErr:   ErrOptionsRequired,
		},
		{
			name:      "unknown global question",
			trainerID: 5,
			input:     OverlayInput{GlobalQuestionID: &missing, Action: domain.ActionEdit, QuestionText: "x", QuestionType: domain.QuestionText},
			wantErr:   ErrQuestionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveOverlay(ctx, tt.trainerID, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SaveOverlay error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRemoveTrainerOwnQuestionHardDeletes(t *testing.T) {
	repo := seedQuestionRepo()
	svc := NewQuestionService(repo)
	ctx := context.Background()

	added, err := svc.SaveOverlay(ctx, 5, OverlayInput{
		Action:       domain.ActionAdd,
		QuestionText: "Injury history?",
		QuestionType: domain.QuestionTextarea,
	})
	if err != nil {
		t.Fatalf("SaveOverlay: %v", err)
	}

	if err := svc.RemoveQuestion(ctx, 5, domain.TrainerKey(added.ID)); err != nil {
		t.Fatalf("RemoveQuestion: %v", err)
	}

	overlays, _ := svc.Overlays(ctx, 5)
	if len(overlays) != 0 {
		t.Fatalf("overlay rows = %d after delete, want 0 (no delete-action row)", len(overlays))
	}
}

func TestRemoveQuestionBadKey(t *testing.T) {
	svc := NewQuestionService(seedQuestionRepo())

	for _, key := range []string{"", "global_", "global_x", "question_3"} {
		if err := svc.RemoveQuestion(context.Background(), 5, key); !errors.Is(err, ErrInvalidQuestionInput) {
			t.Errorf("RemoveQuestion(%q) error = %v, want ErrInvalidQuestionInput", key, err)
		}
	}
}

package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

var (
	ErrUnauthorized         = errors.New("trainer identity is required")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrInvalidQuestionInput = errors.New("invalid question input")
	ErrOptionsRequired      = errors.New("options are required for select and checkbox questions")
)

// QuestionService resolves the effective intake-question set a trainer sees
// and records the trainer's customizations as overlay rows. The global
// catalog is never mutated here.
type QuestionService interface {
	// Resolve merges the global catalog with the trainer's overlays into the
	// ordered effective question set. Recomputed per call, never stored.
	Resolve(ctx context.Context, trainerID int64, filter repository.QuestionFilter) ([]domain.EffectiveQuestion, error)
	// SaveOverlay records a trainer's add/edit/delete opinion. One overlay row
	// exists per (trainer, global question); saving again overwrites it,
	// including its action.
	SaveOverlay(ctx context.Context, trainerID int64, input OverlayInput) (*domain.TrainerQuestion, error)
	// RemoveQuestion removes the question identified by its resolved key from
	// the trainer's set: a "global_<id>" key writes a delete overlay, a
	// "trainer_<id>" key hard-deletes the trainer's own add row.
	RemoveQuestion(ctx context.Context, trainerID int64, key string) error
	Overlays(ctx context.Context, trainerID int64) ([]domain.TrainerQuestion, error)
}

// OverlayInput carries one overlay write.
type OverlayInput struct {
	GlobalQuestionID *int64                `json:"globalQuestionId"`
	Action           domain.QuestionAction `json:"action"`
	QuestionText     string                `json:"questionText"`
	QuestionType     domain.QuestionType   `json:"questionType"`
	Options          domain.StringList     `json:"options"`
	Category         string                `json:"category"`
	VisualAidURL     string                `json:"visualAidUrl"`
	Template         string                `json:"template"`
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

// NewQuestionService creates a new instance of questionService.
func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) Resolve(ctx context.Context, trainerID int64, filter repository.QuestionFilter) ([]domain.EffectiveQuestion, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}

	globals, err := s.questionRepo.Globals(ctx, filter)
	if err != nil {
		return nil, err
	}
	overlays, err := s.questionRepo.OverlaysByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	// Ordered map: insertion order is part of the contract (catalog order
	// first, trainer additions after), so keep keys in a slice alongside the
	// lookup map.
	order := make([]string, 0, len(globals)+len(overlays))
	byKey := make(map[string]domain.EffectiveQuestion, len(globals)+len(overlays))

	for _, g := range globals {
		key := domain.GlobalKey(g.ID)
		order = append(order, key)
		byKey[key] = domain.EffectiveQuestion{
			Key:          key,
			QuestionText: g.QuestionText,
			QuestionType: g.QuestionType,
			Options:      g.Options,
			Category:     g.Category,
			VisualAidURL: g.VisualAidURL,
			Template:     g.Template,
			Source:       domain.SourceGlobal,
		}
	}

	for _, o := range overlays {
		switch {
		case o.GlobalQuestionID != nil && o.Action == domain.ActionDelete:
			// Hides the catalog question for this trainer only.
			delete(byKey, domain.GlobalKey(*o.GlobalQuestionID))

		case o.GlobalQuestionID != nil:
			// Edit (or re-add after a delete): replace the catalog entry's
			// content in place, keeping its position. Skipped when the
			// catalog entry fell outside the active filter.
			key := domain.GlobalKey(*o.GlobalQuestionID)
			if _, ok := byKey[key]; !ok {
				continue
			}
			byKey[key] = domain.EffectiveQuestion{
				Key:          key,
				QuestionText: o.QuestionText,
				QuestionType: o.QuestionType,
				Options:      o.Options,
				Category:     o.Category,
				VisualAidURL: o.VisualAidURL,
				Template:     o.Template,
				Source:       domain.SourceTrainer,
			}

		case o.Action == domain.ActionAdd:
			// Trainer-original question. Filters apply the same way they
			// applied to the catalog fetch.
			if filter.Template != "" && o.Template != filter.Template {
				continue
			}
			if filter.Category != "" && o.Category != filter.Category {
				continue
			}
			key := domain.TrainerKey(o.ID)
			order = append(order, key)
			byKey[key] = domain.EffectiveQuestion{
				Key:          key,
				QuestionText: o.QuestionText,
				QuestionType: o.QuestionType,
				Options:      o.Options,
				Category:     o.Category,
				VisualAidURL: o.VisualAidURL,
				Template:     o.Template,
				Source:       domain.SourceTrainer,
			}
		}
	}

	resolved := make([]domain.EffectiveQuestion, 0, len(byKey))
	for _, key := range order {
		if q, ok := byKey[key]; ok {
			resolved = append(resolved, q)
		}
	}
	return resolved, nil
}

func (s *questionService) SaveOverlay(ctx context.Context, trainerID int64, input OverlayInput) (*domain.TrainerQuestion, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}
	if !input.Action.Valid() {
		return nil, ErrInvalidQuestionInput
	}
	if input.GlobalQuestionID == nil && input.Action != domain.ActionAdd {
		// Edits and deletes only make sense against a catalog question.
		return nil, ErrInvalidQuestionInput
	}
	if input.Action != domain.ActionDelete {
		if strings.TrimSpace(input.QuestionText) == "" {
			return nil, ErrInvalidQuestionInput
		}
		if input.QuestionType.RequiresOptions() && len(input.Options) == 0 {
			return nil, ErrOptionsRequired
		}
	}

	if input.GlobalQuestionID != nil {
		if _, err := s.questionRepo.GlobalByID(ctx, *input.GlobalQuestionID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrQuestionNotFound
			}
			return nil, err
		}
	}

	overlay := &domain.TrainerQuestion{
		TrainerID:        trainerID,
		GlobalQuestionID: input.GlobalQuestionID,
		QuestionText:     input.QuestionText,
		QuestionType:     input.QuestionType,
		Options:          input.Options,
		Category:         input.Category,
		VisualAidURL:     input.VisualAidURL,
		Action:           input.Action,
		Template:         input.Template,
	}

	id, err := s.questionRepo.UpsertOverlay(ctx, overlay)
	if err != nil {
		return nil, err
	}
	overlay.ID = id
	return overlay, nil
}

func (s *questionService) RemoveQuestion(ctx context.Context, trainerID int64, key string) error {
	if trainerID <= 0 {
		return ErrUnauthorized
	}

	source, id, err := parseQuestionKey(key)
	if err != nil {
		return err
	}

	switch source {
	case domain.SourceGlobal:
		// Deleting a catalog question writes (or overwrites) the trainer's
		// overlay with a delete action.
		_, err := s.SaveOverlay(ctx, trainerID, OverlayInput{
			GlobalQuestionID: &id,
			Action:           domain.ActionDelete,
		})
		return err
	default:
		// Trainer-own additions are removed outright; the delete action flag
		// is only meaningful for overlays of catalog questions.
		overlay, err := s.questionRepo.OverlayByID(ctx, id, trainerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if overlay.GlobalQuestionID != nil || overlay.Action != domain.ActionAdd {
			return ErrInvalidQuestionInput
		}
		if err := s.questionRepo.DeleteOverlay(ctx, id, trainerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		return nil
	}
}

func (s *questionService) Overlays(ctx context.Context, trainerID int64) ([]domain.TrainerQuestion, error) {
	if trainerID <= 0 {
		return nil, ErrUnauthorized
	}
	return s.questionRepo.OverlaysByTrainerID(ctx, trainerID)
}

// parseQuestionKey splits a resolved-set key back into its source and row id.
func parseQuestionKey(key string) (domain.QuestionSource, int64, error) {
	var source domain.QuestionSource
	var rest string
	switch {
	case strings.HasPrefix(key, "global_"):
		source, rest = domain.SourceGlobal, strings.TrimPrefix(key, "global_")
	case strings.HasPrefix(key, "trainer_"):
		source, rest = domain.SourceTrainer, strings.TrimPrefix(key, "trainer_")
	default:
		return "", 0, ErrInvalidQuestionInput
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id < 1 {
		return "", 0, ErrInvalidQuestionInput
	}
	return source, id, nil
}

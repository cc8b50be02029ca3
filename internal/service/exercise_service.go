package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/exercisedb"
	"smartgains/trainer-app/internal/repository"
)

var ErrLibraryAlreadyImported = errors.New("exercise library already imported")

const importPageSize = 200

// bodyPartGroups folds the provider's fine-grained body parts into the groups
// the plan builder UI shows.
var bodyPartGroups = map[string]string{
	"upper arms": "Arms",
	"lower arms": "Arms",
	"upper legs": "Legs",
	"lower legs": "Legs",
	"shoulders":  "Shoulders",
}

// ExerciseService serves the local exercise library and its one-shot import
// from the external exercise database.
type ExerciseService interface {
	// Import pulls the full remote catalog into the local library. Refuses to
	// run twice; the library is reference data, not a sync target.
	Import(ctx context.Context) (int, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	ByBodyPart(ctx context.Context, bodyPart string) ([]domain.Exercise, error)
	// Grouped returns the library bucketed by display group (Arms, Legs,
	// Shoulders, and the remaining body parts title-cased as-is).
	Grouped(ctx context.Context) (map[string][]domain.Exercise, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	dbClient     *exercisedb.Client
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, dbClient *exercisedb.Client) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		dbClient:     dbClient,
	}
}

func (s *exerciseService) Import(ctx context.Context) (int, error) {
	count, err := s.exerciseRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrLibraryAlreadyImported
	}

	imported := 0
	for offset := 0; ; offset += importPageSize {
		page, err := s.dbClient.Exercises(ctx, importPageSize, offset)
		if err != nil {
			return imported, err
		}
		if len(page) == 0 {
			break
		}

		for _, remote := range page {
			exercise := &domain.Exercise{
				Name:             remote.Name,
				BodyPart:         remote.BodyPart,
				Equipment:        remote.Equipment,
				TargetMuscle:     remote.Target,
				SecondaryMuscles: strings.Join(remote.SecondaryMuscles, ", "),
				Instructions:     strings.Join(remote.Instructions, "\n"),
				GifURL:           remote.GifURL,
			}
			if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
				return imported, err
			}
			imported++
		}

		if len(page) < importPageSize {
			break
		}
	}

	slog.Info("exercise library imported", "count", imported)
	return imported, nil
}

func (s *exerciseService) List(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.All(ctx)
}

func (s *exerciseService) ByBodyPart(ctx context.Context, bodyPart string) ([]domain.Exercise, error) {
	return s.exerciseRepo.ByBodyPart(ctx, bodyPart)
}

func (s *exerciseService) Grouped(ctx context.Context) (map[string][]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.Exercise)
	for _, e := range exercises {
		group, ok := bodyPartGroups[strings.ToLower(e.BodyPart)]
		if !ok {
			group = titleCase(e.BodyPart)
		}
		grouped[group] = append(grouped[group], e)
	}
	return grouped, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

package sqldb

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

type exerciseRepository struct {
	db *sqlx.DB
}

// NewExerciseRepository creates an ExerciseRepository over exercise_library.
func NewExerciseRepository(db *sqlx.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, e *domain.Exercise) (int64, error) {
	now := time.Now()

	query := `INSERT INTO exercise_library
	          (name, body_part, equipment, target_muscle, secondary_muscles, instructions,
	           gif_url, video_url, fitness_level, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	res, err := r.db.ExecContext(ctx, query,
		e.Name, e.BodyPart, e.Equipment, e.TargetMuscle, e.SecondaryMuscles,
		e.Instructions, e.GifURL, e.VideoURL, e.FitnessLevel, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *exerciseRepository) All(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.db.SelectContext(ctx, &exercises, `SELECT * FROM exercise_library ORDER BY name`)
	return exercises, err
}

func (r *exerciseRepository) ByBodyPart(ctx context.Context, bodyPart string) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	query := `SELECT * FROM exercise_library WHERE body_part = $1 ORDER BY name`
	err := r.db.SelectContext(ctx, &exercises, query, bodyPart)
	return exercises, err
}

func (r *exerciseRepository) BodyParts(ctx context.Context) ([]string, error) {
	var parts []string
	query := `SELECT DISTINCT body_part FROM exercise_library ORDER BY body_part`
	err := r.db.SelectContext(ctx, &parts, query)
	return parts, err
}

func (r *exerciseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM exercise_library`)
	return count, err
}

package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

type progressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a ProgressRepository over workout_progress.
func NewProgressRepository(db *sqlx.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(ctx context.Context, p *domain.WorkoutProgress) (int64, error) {
	now := time.Now()

	query := `INSERT INTO workout_progress
	          (client_id, name, date, workout_type, duration_minutes, exercises_log, intensity_level,
	           location, workout_rating, trainer_notes, workout_source, generated_plan_id, demo_plan_id,
	           day_index, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	res, err := r.db.ExecContext(ctx, query,
		p.ClientID,
		p.Name,
		p.Date,
		p.WorkoutType,
		p.DurationMinutes,
		p.ExercisesLog,
		p.IntensityLevel,
		p.Location,
		p.WorkoutRating,
		p.TrainerNotes,
		p.WorkoutSource,
		p.GeneratedPlanID,
		p.DemoPlanID,
		p.DayIndex,
		now,
		now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *progressRepository) GetByID(ctx context.Context, id int64) (*domain.WorkoutProgress, error) {
	p := &domain.WorkoutProgress{}
	err := r.db.GetContext(ctx, p, `SELECT * FROM workout_progress WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return p, err
}

func (r *progressRepository) GetByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error) {
	var sessions []domain.WorkoutProgress
	query := `SELECT * FROM workout_progress WHERE client_id = $1 ORDER BY date DESC, id DESC`
	err := r.db.SelectContext(ctx, &sessions, query, clientID)
	return sessions, err
}

func (r *progressRepository) Update(ctx context.Context, p *domain.WorkoutProgress) error {
	query := `UPDATE workout_progress
	          SET name = $1, date = $2, workout_type = $3, duration_minutes = $4, exercises_log = $5,
	              intensity_level = $6, location = $7, workout_rating = $8, trainer_notes = $9, updated_at = $10
	          WHERE id = $11`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Date,
		p.WorkoutType,
		p.DurationMinutes,
		p.ExercisesLog,
		p.IntensityLevel,
		p.Location,
		p.WorkoutRating,
		p.TrainerNotes,
		time.Now(),
		p.ID,
	)
	if err != nil {
		return err
	}
	return oneRowAffected(res, repository.ErrNotFound)
}

func (r *progressRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workout_progress WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return oneRowAffected(res, repository.ErrNotFound)
}

func (r *progressRepository) GetByPlanID(ctx context.Context, kind domain.PlanKind, planID int64) ([]domain.WorkoutProgress, error) {
	column, err := planColumn(kind)
	if err != nil {
		return nil, err
	}

	var sessions []domain.WorkoutProgress
	query := `SELECT * FROM workout_progress WHERE ` + column + ` = $1 ORDER BY date, id`
	err = r.db.SelectContext(ctx, &sessions, query, planID)
	return sessions, err
}

func (r *progressRepository) SingleDayGeneratedByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error) {
	var sessions []domain.WorkoutProgress
	query := `SELECT * FROM workout_progress
	          WHERE client_id = $1 AND generated_plan_id IS NOT NULL AND day_index IS NULL
	          ORDER BY date DESC, id DESC`
	err := r.db.SelectContext(ctx, &sessions, query, clientID)
	return sessions, err
}

func (r *progressRepository) MultiDayByClientID(ctx context.Context, clientID int64) ([]domain.WorkoutProgress, error) {
	var sessions []domain.WorkoutProgress
	query := `SELECT * FROM workout_progress
	          WHERE client_id = $1
	            AND (generated_plan_id IS NOT NULL OR demo_plan_id IS NOT NULL)
	            AND day_index IS NOT NULL
	          ORDER BY date DESC, id DESC`
	err := r.db.SelectContext(ctx, &sessions, query, clientID)
	return sessions, err
}

func (r *progressRepository) CompletionDates(ctx context.Context, kind domain.PlanKind, planID int64) (map[int]time.Time, error) {
	column, err := planColumn(kind)
	if err != nil {
		return nil, err
	}

	rows := []struct {
		DayIndex int    `db:"day_index"`
		Date     string `db:"date"`
	}{}
	query := `SELECT day_index, MIN(date) AS date FROM workout_progress
	          WHERE ` + column + ` = $1 AND day_index IS NOT NULL
	          GROUP BY day_index`
	if err := r.db.SelectContext(ctx, &rows, query, planID); err != nil {
		return nil, err
	}

	dates := make(map[int]time.Time, len(rows))
	for _, row := range rows {
		// Dates are stored as YYYY-MM-DD strings; unparsable values are
		// skipped rather than failing the whole report.
		t, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		dates[row.DayIndex] = t
	}
	return dates, nil
}

func planColumn(kind domain.PlanKind) (string, error) {
	switch kind {
	case domain.PlanGenerated:
		return "generated_plan_id", nil
	case domain.PlanDemo:
		return "demo_plan_id", nil
	default:
		return "", errors.New("unknown plan kind " + string(kind))
	}
}

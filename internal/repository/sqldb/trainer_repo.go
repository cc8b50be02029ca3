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

type trainerRepository struct {
	db *sqlx.DB
}

// NewTrainerRepository creates a TrainerRepository backed by the relational store.
func NewTrainerRepository(db *sqlx.DB) repository.TrainerRepository {
	return &trainerRepository{db: db}
}

func (r *trainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (int64, error) {
	now := time.Now()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	query := `INSERT INTO trainers (first_name, last_name, email, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	res, err := r.db.ExecContext(ctx, query,
		trainer.FirstName,
		trainer.LastName,
		trainer.Email,
		trainer.PasswordHash,
		trainer.CreatedAt,
		trainer.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *trainerRepository) GetByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	trainer := &domain.Trainer{}
	query := `SELECT * FROM trainers WHERE email = $1`

	err := r.db.GetContext(ctx, trainer, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return trainer, err
}

func (r *trainerRepository) GetByID(ctx context.Context, id int64) (*domain.Trainer, error) {
	trainer := &domain.Trainer{}
	query := `SELECT * FROM trainers WHERE id = $1`

	err := r.db.GetContext(ctx, trainer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return trainer, err
}

func (r *trainerRepository) UpsertProfile(ctx context.Context, profile *domain.TrainerProfile) error {
	now := time.Now()

	existing := &domain.TrainerProfile{}
	err := r.db.GetContext(ctx, existing,
		`SELECT * FROM trainer_profiles WHERE trainer_id = $1`, profile.TrainerID)
	if errors.Is(err, sql.ErrNoRows) {
		query := `INSERT INTO trainer_profiles (trainer_id, photo_key, quote1, quote2, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.db.ExecContext(ctx, query,
			profile.TrainerID, profile.PhotoKey, profile.Quote1, profile.Quote2, now, now)
		return err
	}
	if err != nil {
		return err
	}

	// A new photo is optional on update; keep the old key when none was set.
	photoKey := profile.PhotoKey
	if photoKey == "" {
		photoKey = existing.PhotoKey
	}

	query := `UPDATE trainer_profiles
	          SET photo_key = $1, quote1 = $2, quote2 = $3, updated_at = $4
	          WHERE trainer_id = $5`
	res, err := r.db.ExecContext(ctx, query,
		photoKey, profile.Quote1, profile.Quote2, now, profile.TrainerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

func (r *trainerRepository) GetProfileByTrainerID(ctx context.Context, trainerID int64) (*domain.TrainerProfile, error) {
	profile := &domain.TrainerProfile{}
	query := `SELECT * FROM trainer_profiles WHERE trainer_id = $1`

	err := r.db.GetContext(ctx, profile, query, trainerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return profile, err
}

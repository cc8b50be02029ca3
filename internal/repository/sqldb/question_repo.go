package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

type questionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository creates a QuestionRepository backed by the relational store.
func NewQuestionRepository(db *sqlx.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Globals(ctx context.Context, filter repository.QuestionFilter) ([]domain.GlobalQuestion, error) {
	query := `SELECT * FROM global_form_questions WHERE 1=1`
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	if filter.Template != "" {
		args = append(args, filter.Template)
		query += ` AND template = $` + strconv.Itoa(len(args))
	}
	if filter.DefaultsOnly {
		query += ` AND is_default`
	}
	query += ` ORDER BY id`

	var questions []domain.GlobalQuestion
	err := r.db.SelectContext(ctx, &questions, query, args...)
	return questions, err
}

func (r *questionRepository) GlobalByID(ctx context.Context, id int64) (*domain.GlobalQuestion, error) {
	q := &domain.GlobalQuestion{}
	err := r.db.GetContext(ctx, q, `SELECT * FROM global_form_questions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return q, err
}

func (r *questionRepository) OverlaysByTrainerID(ctx context.Context, trainerID int64) ([]domain.TrainerQuestion, error) {
	var overlays []domain.TrainerQuestion
	query := `SELECT * FROM trainer_intake_questions WHERE trainer_id = $1 ORDER BY id`
	err := r.db.SelectContext(ctx, &overlays, query, trainerID)
	return overlays, err
}

func (r *questionRepository) OverlayByID(ctx context.Context, id, trainerID int64) (*domain.TrainerQuestion, error) {
	overlay := &domain.TrainerQuestion{}
	query := `SELECT * FROM trainer_intake_questions WHERE id = $1 AND trainer_id = $2`

	err := r.db.GetContext(ctx, overlay, query, id, trainerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return overlay, err
}

func (r *questionRepository) OverlayByGlobalID(ctx context.Context, trainerID, globalQuestionID int64) (*domain.TrainerQuestion, error) {
	overlay := &domain.TrainerQuestion{}
	query := `SELECT * FROM trainer_intake_questions
	          WHERE trainer_id = $1 AND global_question_id = $2`

	err := r.db.GetContext(ctx, overlay, query, trainerID, globalQuestionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return overlay, err
}

func (r *questionRepository) UpsertOverlay(ctx context.Context, overlay *domain.TrainerQuestion) (int64, error) {
	now := time.Now()

	if overlay.GlobalQuestionID != nil {
		existing, err := r.OverlayByGlobalID(ctx, overlay.TrainerID, *overlay.GlobalQuestionID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return 0, err
		}
		if err == nil {
			// One opinion per (trainer, global question): overwrite in place,
			// including the action.
			query := `UPDATE trainer_intake_questions
			          SET question_text = $1, question_type = $2, options = $3, category = $4,
			              visual_aid_url = $5, action = $6, template = $7, updated_at = $8
			          WHERE id = $9 AND trainer_id = $10`
			res, err := r.db.ExecContext(ctx, query,
				overlay.QuestionText,
				overlay.QuestionType,
				overlay.Options,
				overlay.Category,
				overlay.VisualAidURL,
				overlay.Action,
				overlay.Template,
				now,
				existing.ID,
				overlay.TrainerID,
			)
			if err != nil {
				return 0, err
			}
			rows, err := res.RowsAffected()
			if err != nil {
				return 0, err
			}
			if rows == 0 {
				return 0, repository.ErrUpdateFailed
			}
			return existing.ID, nil
		}
	}

	query := `INSERT INTO trainer_intake_questions
	          (trainer_id, global_question_id, question_text, question_type, options, category, visual_aid_url, action, template, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	res, err := r.db.ExecContext(ctx, query,
		overlay.TrainerID,
		overlay.GlobalQuestionID,
		overlay.QuestionText,
		overlay.QuestionType,
		overlay.Options,
		overlay.Category,
		overlay.VisualAidURL,
		overlay.Action,
		overlay.Template,
		now,
		now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *questionRepository) DeleteOverlay(ctx context.Context, id, trainerID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM trainer_intake_questions WHERE id = $1 AND trainer_id = $2`, id, trainerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

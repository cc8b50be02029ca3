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

type intakeRepository struct {
	db *sqlx.DB
}

// NewIntakeRepository creates an IntakeRepository over intake_forms and
// intake_form_answers.
func NewIntakeRepository(db *sqlx.DB) repository.IntakeRepository {
	return &intakeRepository{db: db}
}

func (r *intakeRepository) CreateForm(ctx context.Context, form *domain.IntakeForm) (int64, error) {
	now := time.Now()
	query := `INSERT INTO intake_forms (form_type, client_id, trainer_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`
	res, err := r.db.ExecContext(ctx, query, form.FormType, form.ClientID, form.TrainerID, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *intakeRepository) FormByID(ctx context.Context, id int64) (*domain.IntakeForm, error) {
	form := &domain.IntakeForm{}
	err := r.db.GetContext(ctx, form, `SELECT * FROM intake_forms WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return form, err
}

func (r *intakeRepository) FormsByClientID(ctx context.Context, clientID int64) ([]domain.IntakeForm, error) {
	var forms []domain.IntakeForm
	query := `SELECT * FROM intake_forms WHERE client_id = $1 ORDER BY id DESC`
	err := r.db.SelectContext(ctx, &forms, query, clientID)
	return forms, err
}

func (r *intakeRepository) UpsertAnswer(ctx context.Context, answer *domain.IntakeFormAnswer) (int64, error) {
	now := time.Now()

	var existingID int64
	err := r.db.GetContext(ctx, &existingID,
		`SELECT id FROM intake_form_answers WHERE form_id = $1 AND question_id = $2`,
		answer.FormID, answer.QuestionID)
	switch {
	case err == nil:
		query := `UPDATE intake_form_answers
		          SET question_source = $1, answer = $2, updated_at = $3
		          WHERE id = $4`
		res, err := r.db.ExecContext(ctx, query, answer.QuestionSource, answer.Answer, now, existingID)
		if err != nil {
			return 0, err
		}
		if err := oneRowAffected(res, repository.ErrUpdateFailed); err != nil {
			return 0, err
		}
		return existingID, nil
	case errors.Is(err, sql.ErrNoRows):
		query := `INSERT INTO intake_form_answers
		          (form_id, question_id, question_source, answer, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6)`
		res, err := r.db.ExecContext(ctx, query,
			answer.FormID, answer.QuestionID, answer.QuestionSource, answer.Answer, now, now)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	default:
		return 0, err
	}
}

func (r *intakeRepository) AnswersByFormID(ctx context.Context, formID int64) ([]domain.IntakeFormAnswer, error) {
	var answers []domain.IntakeFormAnswer
	query := `SELECT a.*,
	                 COALESCE(CASE a.question_source
	                     WHEN 'global' THEN g.question_text
	                     ELSE t.question_text
	                 END, '') AS question_text
	          FROM intake_form_answers a
	          LEFT JOIN global_form_questions g
	              ON a.question_source = 'global' AND g.id = a.question_id
	          LEFT JOIN trainer_intake_questions t
	              ON a.question_source = 'trainer' AND t.id = a.question_id
	          WHERE a.form_id = $1
	          ORDER BY a.id`
	err := r.db.SelectContext(ctx, &answers, query, formID)
	return answers, err
}

type consultationRepository struct {
	db *sqlx.DB
}

// NewConsultationRepository creates a ConsultationRepository.
func NewConsultationRepository(db *sqlx.DB) repository.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Upsert(ctx context.Context, c *domain.Consultation) error {
	now := time.Now()

	var existingID int64
	err := r.db.GetContext(ctx, &existingID,
		`SELECT id FROM consultations WHERE client_id = $1`, c.ClientID)
	switch {
	case err == nil:
		query := `UPDATE consultations
		          SET prior_exercise_programs = $1, exercise_habits = $2, fitness_goals = $3,
		              progress_measurement = $4, area_specifics = $5, exercise_likes = $6,
		              exercise_dislikes = $7, diet_description = $8, dietary_restrictions = $9,
		              processed_food_consumption = $10, daily_water_intake = $11, daily_routine = $12,
		              stress_level = $13, smoking_alcohol_habits = $14, hobbies = $15, updated_at = $16
		          WHERE id = $17`
		res, err := r.db.ExecContext(ctx, query,
			c.PriorExercisePrograms, c.ExerciseHabits, c.FitnessGoals,
			c.ProgressMeasurement, c.AreaSpecifics, c.ExerciseLikes,
			c.ExerciseDislikes, c.DietDescription, c.DietaryRestrictions,
			c.ProcessedFoodConsumption, c.DailyWaterIntake, c.DailyRoutine,
			c.StressLevel, c.SmokingAlcoholHabits, c.Hobbies, now, existingID)
		if err != nil {
			return err
		}
		return oneRowAffected(res, repository.ErrUpdateFailed)
	case errors.Is(err, sql.ErrNoRows):
		query := `INSERT INTO consultations
		          (client_id, prior_exercise_programs, exercise_habits, fitness_goals,
		           progress_measurement, area_specifics, exercise_likes, exercise_dislikes,
		           diet_description, dietary_restrictions, processed_food_consumption,
		           daily_water_intake, daily_routine, stress_level, smoking_alcohol_habits,
		           hobbies, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
		_, err := r.db.ExecContext(ctx, query,
			c.ClientID, c.PriorExercisePrograms, c.ExerciseHabits, c.FitnessGoals,
			c.ProgressMeasurement, c.AreaSpecifics, c.ExerciseLikes, c.ExerciseDislikes,
			c.DietDescription, c.DietaryRestrictions, c.ProcessedFoodConsumption,
			c.DailyWaterIntake, c.DailyRoutine, c.StressLevel, c.SmokingAlcoholHabits,
			c.Hobbies, now, now)
		return err
	default:
		return err
	}
}

func (r *consultationRepository) GetByClientID(ctx context.Context, clientID int64) (*domain.Consultation, error) {
	c := &domain.Consultation{}
	err := r.db.GetContext(ctx, c, `SELECT * FROM consultations WHERE client_id = $1`, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return c, err
}

type medicalHistoryRepository struct {
	db *sqlx.DB
}

// NewMedicalHistoryRepository creates a MedicalHistoryRepository.
func NewMedicalHistoryRepository(db *sqlx.DB) repository.MedicalHistoryRepository {
	return &medicalHistoryRepository{db: db}
}

func (r *medicalHistoryRepository) Upsert(ctx context.Context, h *domain.MedicalHistory) error {
	now := time.Now()

	var existingID int64
	err := r.db.GetContext(ctx, &existingID,
		`SELECT id FROM medical_histories WHERE client_id = $1`, h.ClientID)
	switch {
	case err == nil:
		query := `UPDATE medical_histories
		          SET existing_conditions = $1, medications = $2, surgeries_or_injuries = $3,
		              allergies = $4, family_history = $5, updated_at = $6
		          WHERE id = $7`
		res, err := r.db.ExecContext(ctx, query,
			h.ExistingConditions, h.Medications, h.SurgeriesOrInjuries,
			h.Allergies, h.FamilyHistory, now, existingID)
		if err != nil {
			return err
		}
		return oneRowAffected(res, repository.ErrUpdateFailed)
	case errors.Is(err, sql.ErrNoRows):
		query := `INSERT INTO medical_histories
		          (client_id, existing_conditions, medications, surgeries_or_injuries,
		           allergies, family_history, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := r.db.ExecContext(ctx, query,
			h.ClientID, h.ExistingConditions, h.Medications, h.SurgeriesOrInjuries,
			h.Allergies, h.FamilyHistory, now, now)
		return err
	default:
		return err
	}
}

func (r *medicalHistoryRepository) GetByClientID(ctx context.Context, clientID int64) (*domain.MedicalHistory, error) {
	h := &domain.MedicalHistory{}
	err := r.db.GetContext(ctx, h, `SELECT * FROM medical_histories WHERE client_id = $1`, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return h, err
}

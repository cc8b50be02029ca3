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

type nutritionRepository struct {
	db *sqlx.DB
}

// NewNutritionRepository creates a NutritionRepository over nutrition_profiles.
func NewNutritionRepository(db *sqlx.DB) repository.NutritionRepository {
	return &nutritionRepository{db: db}
}

// The nutrition questionnaire is wide enough that named queries beat numbered
// placeholders; the struct's db tags drive the binding.
func (r *nutritionRepository) Upsert(ctx context.Context, p *domain.NutritionProfile) error {
	now := time.Now()
	p.UpdatedAt = now

	var existingID int64
	err := r.db.GetContext(ctx, &existingID,
		`SELECT id FROM nutrition_profiles WHERE client_id = $1`, p.ClientID)
	switch {
	case err == nil:
		p.ID = existingID
		query := `UPDATE nutrition_profiles SET
		              height = :height, weight = :weight, dob = :dob, gender = :gender,
		              bodyfat_est = :bodyfat_est, health_conditions = :health_conditions,
		              allergies = :allergies, current_diet = :current_diet,
		              dietary_preferences = :dietary_preferences, favorite_foods = :favorite_foods,
		              disliked_foods = :disliked_foods, meal_preferences = :meal_preferences,
		              meal_snack_preferences = :meal_snack_preferences, meal_prep_habits = :meal_prep_habits,
		              hydration = :hydration, current_cheat_meals = :current_cheat_meals,
		              common_cravings = :common_cravings, specific_days_indulgence = :specific_days_indulgence,
		              nutritional_goals = :nutritional_goals, dieting_challenges = :dieting_challenges,
		              typical_work_schedule = :typical_work_schedule, activity_level_neat = :activity_level_neat,
		              average_daily_steps = :average_daily_steps, activity_level_eat = :activity_level_eat,
		              exercise_days_per_week = :exercise_days_per_week, updated_at = :updated_at
		          WHERE id = :id`
		res, err := r.db.NamedExecContext(ctx, query, p)
		if err != nil {
			return err
		}
		return oneRowAffected(res, repository.ErrUpdateFailed)
	case errors.Is(err, sql.ErrNoRows):
		p.CreatedAt = now
		query := `INSERT INTO nutrition_profiles
		          (client_id, height, weight, dob, gender, bodyfat_est, health_conditions,
		           allergies, current_diet, dietary_preferences, favorite_foods, disliked_foods,
		           meal_preferences, meal_snack_preferences, meal_prep_habits, hydration,
		           current_cheat_meals, common_cravings, specific_days_indulgence, nutritional_goals,
		           dieting_challenges, typical_work_schedule, activity_level_neat, average_daily_steps,
		           activity_level_eat, exercise_days_per_week, created_at, updated_at)
		          VALUES
		          (:client_id, :height, :weight, :dob, :gender, :bodyfat_est, :health_conditions,
		           :allergies, :current_diet, :dietary_preferences, :favorite_foods, :disliked_foods,
		           :meal_preferences, :meal_snack_preferences, :meal_prep_habits, :hydration,
		           :current_cheat_meals, :common_cravings, :specific_days_indulgence, :nutritional_goals,
		           :dieting_challenges, :typical_work_schedule, :activity_level_neat, :average_daily_steps,
		           :activity_level_eat, :exercise_days_per_week, :created_at, :updated_at)`
		_, err := r.db.NamedExecContext(ctx, query, p)
		return err
	default:
		return err
	}
}

func (r *nutritionRepository) GetByClientID(ctx context.Context, clientID int64) (*domain.NutritionProfile, error) {
	p := &domain.NutritionProfile{}
	err := r.db.GetContext(ctx, p, `SELECT * FROM nutrition_profiles WHERE client_id = $1`, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return p, err
}

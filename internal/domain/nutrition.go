package domain

import "time"

// NutritionProfile is the nutrition intake questionnaire, one row per client.
type NutritionProfile struct {
	ID                      int64     `db:"id" json:"id"`
	ClientID                int64     `db:"client_id" json:"clientId"`
	Height                  string    `db:"height" json:"height"`
	Weight                  string    `db:"weight" json:"weight"`
	DOB                     string    `db:"dob" json:"dob"`
	Gender                  string    `db:"gender" json:"gender"`
	BodyfatEst              string    `db:"bodyfat_est" json:"bodyfatEst"`
	HealthConditions        string    `db:"health_conditions" json:"healthConditions"`
	Allergies               string    `db:"allergies" json:"allergies"`
	CurrentDiet             string    `db:"current_diet" json:"currentDiet"`
	DietaryPreferences      string    `db:"dietary_preferences" json:"dietaryPreferences"`
	FavoriteFoods           string    `db:"favorite_foods" json:"favoriteFoods"`
	DislikedFoods           string    `db:"disliked_foods" json:"dislikedFoods"`
	MealPreferences         string    `db:"meal_preferences" json:"mealPreferences"`
	MealSnackPreferences    string    `db:"meal_snack_preferences" json:"mealSnackPreferences"`
	MealPrepHabits          string    `db:"meal_prep_habits" json:"mealPrepHabits"`
	Hydration               string    `db:"hydration" json:"hydration"`
	CurrentCheatMeals       string    `db:"current_cheat_meals" json:"currentCheatMeals"`
	CommonCravings          string    `db:"common_cravings" json:"commonCravings"`
	SpecificDaysIndulgence  string    `db:"specific_days_indulgence" json:"specificDaysIndulgence"`
	NutritionalGoals        string    `db:"nutritional_goals" json:"nutritionalGoals"`
	DietingChallenges       string    `db:"dieting_challenges" json:"dietingChallenges"`
	TypicalWorkSchedule     string    `db:"typical_work_schedule" json:"typicalWorkSchedule"`
	ActivityLevelNEAT       string    `db:"activity_level_neat" json:"activityLevelNeat"`
	AverageDailySteps       int       `db:"average_daily_steps" json:"averageDailySteps"`
	ActivityLevelEAT        string    `db:"activity_level_eat" json:"activityLevelEat"`
	ExerciseDaysPerWeek     int       `db:"exercise_days_per_week" json:"exerciseDaysPerWeek"`
	CreatedAt               time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt               time.Time `db:"updated_at" json:"updatedAt"`
}

package domain

import "time"

// IntakeForm groups one client's answers for one intake pass.
type IntakeForm struct {
	ID        int64     `db:"id" json:"id"`
	FormType  string    `db:"form_type" json:"formType"` // e.g. "consultation", "intake_v2"
	ClientID  int64     `db:"client_id" json:"clientId"`
	TrainerID int64     `db:"trainer_id" json:"trainerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// IntakeFormAnswer is one answered question on a form. QuestionSource records
// whether QuestionID points at the global catalog or a trainer's own
// question, mirroring the key tagging of the resolved question set. Saves
// upsert on (form, question).
type IntakeFormAnswer struct {
	ID             int64          `db:"id" json:"id"`
	FormID         int64          `db:"form_id" json:"formId"`
	QuestionID     int64          `db:"question_id" json:"questionId"`
	QuestionSource QuestionSource `db:"question_source" json:"questionSource"`
	Answer         string         `db:"answer" json:"answer"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`

	// Joined from the source question table for display.
	QuestionText string `db:"question_text" json:"questionText,omitempty"`
}

// Consultation captures the fitness-experience interview, one row per client.
type Consultation struct {
	ID                       int64     `db:"id" json:"id"`
	ClientID                 int64     `db:"client_id" json:"clientId"`
	PriorExercisePrograms    string    `db:"prior_exercise_programs" json:"priorExercisePrograms"`
	ExerciseHabits           string    `db:"exercise_habits" json:"exerciseHabits"`
	FitnessGoals             string    `db:"fitness_goals" json:"fitnessGoals"`
	ProgressMeasurement      string    `db:"progress_measurement" json:"progressMeasurement"`
	AreaSpecifics            string    `db:"area_specifics" json:"areaSpecifics"`
	ExerciseLikes            string    `db:"exercise_likes" json:"exerciseLikes"`
	ExerciseDislikes         string    `db:"exercise_dislikes" json:"exerciseDislikes"`
	DietDescription          string    `db:"diet_description" json:"dietDescription"`
	DietaryRestrictions      string    `db:"dietary_restrictions" json:"dietaryRestrictions"`
	ProcessedFoodConsumption string    `db:"processed_food_consumption" json:"processedFoodConsumption"`
	DailyWaterIntake         string    `db:"daily_water_intake" json:"dailyWaterIntake"`
	DailyRoutine             string    `db:"daily_routine" json:"dailyRoutine"`
	StressLevel              string    `db:"stress_level" json:"stressLevel"`
	SmokingAlcoholHabits     string    `db:"smoking_alcohol_habits" json:"smokingAlcoholHabits"`
	Hobbies                  string    `db:"hobbies" json:"hobbies"`
	CreatedAt                time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt                time.Time `db:"updated_at" json:"updatedAt"`
}

// MedicalHistory is the intake medical questionnaire, one row per client.
type MedicalHistory struct {
	ID                 int64     `db:"id" json:"id"`
	ClientID           int64     `db:"client_id" json:"clientId"`
	ExistingConditions string    `db:"existing_conditions" json:"existingConditions"`
	Medications        string    `db:"medications" json:"medications"`
	SurgeriesOrInjuries string   `db:"surgeries_or_injuries" json:"surgeriesOrInjuries"`
	Allergies          string    `db:"allergies" json:"allergies"`
	FamilyHistory      string    `db:"family_history" json:"familyHistory"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

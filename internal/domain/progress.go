package domain

import "time"

// WorkoutProgress is one logged training session. Rows are append-only
// evidence; when the session executed a day of a stored plan, exactly one of
// GeneratedPlanID/DemoPlanID is set together with DayIndex.
type WorkoutProgress struct {
	ID              int64      `db:"id" json:"id"`
	ClientID        int64      `db:"client_id" json:"clientId"`
	Name            string     `db:"name" json:"name"`
	Date            string     `db:"date" json:"date"` // YYYY-MM-DD as logged by the trainer
	WorkoutType     string     `db:"workout_type" json:"workoutType"`
	DurationMinutes int        `db:"duration_minutes" json:"durationMinutes"`
	ExercisesLog    string     `db:"exercises_log" json:"exercisesLog"`
	IntensityLevel  string     `db:"intensity_level" json:"intensityLevel"`
	Location        string     `db:"location" json:"location"`
	WorkoutRating   int        `db:"workout_rating" json:"workoutRating"`
	TrainerNotes    string     `db:"trainer_notes" json:"trainerNotes"`
	WorkoutSource   string     `db:"workout_source" json:"workoutSource"` // "manual" or "AI"
	GeneratedPlanID *int64     `db:"generated_plan_id" json:"generatedPlanId,omitempty"`
	DemoPlanID      *int64     `db:"demo_plan_id" json:"demoPlanId,omitempty"`
	DayIndex        *int       `db:"day_index" json:"dayIndex,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`

	// Denormalized on joined reads; empty otherwise.
	ClientFirstName string `db:"client_first_name" json:"clientFirstName,omitempty"`
	ClientLastName  string `db:"client_last_name" json:"clientLastName,omitempty"`
}

// DayStatus is one row of a plan's completion report: the flag from the
// plan's completion map joined with the date the day was actually logged.
// CompletedOn stays nil when the flag is set but no progress row exists; the
// two writes are separate statements, so that window is observable.
type DayStatus struct {
	Day         int        `json:"day"`
	Done        bool       `json:"done"`
	CompletedOn *time.Time `json:"completedOn,omitempty"`
}

// CompletionReport summarizes a plan's per-day state.
type CompletionReport struct {
	CompletedMarked bool        `json:"completedMarked"`
	Days            []DayStatus `json:"days"`
}

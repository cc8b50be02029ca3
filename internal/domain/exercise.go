package domain

import "time"

// Exercise is one entry of the shared exercise library, imported from the
// external exercise database and then served locally.
type Exercise struct {
	ID               int64     `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	BodyPart         string    `db:"body_part" json:"bodyPart"`
	Equipment        string    `db:"equipment" json:"equipment"`
	TargetMuscle     string    `db:"target_muscle" json:"targetMuscle"`
	SecondaryMuscles string    `db:"secondary_muscles" json:"secondaryMuscles"`
	Instructions     string    `db:"instructions" json:"instructions"`
	GifURL           string    `db:"gif_url" json:"gifUrl"`
	VideoURL         string    `db:"video_url" json:"videoUrl"`
	FitnessLevel     string    `db:"fitness_level" json:"fitnessLevel"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

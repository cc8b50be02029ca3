package domain

import "time"

// Trainer is an account holder. Trainers are the only users who log in;
// clients are roster entries owned by a trainer.
type Trainer struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	Email        string    `db:"email" json:"email"` // Should be unique
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

func (t *Trainer) FullName() string {
	return t.FirstName + " " + t.LastName
}

// TrainerProfile holds the public dashboard card for a trainer: a profile
// photo (S3 object key) and a couple of motivational quotes.
type TrainerProfile struct {
	ID        int64     `db:"id" json:"id"`
	TrainerID int64     `db:"trainer_id" json:"trainerId"`
	PhotoKey  string    `db:"photo_key" json:"photoKey"`
	Quote1    string    `db:"quote1" json:"quote1"`
	Quote2    string    `db:"quote2" json:"quote2"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

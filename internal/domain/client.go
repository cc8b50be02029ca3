package domain

import "time"

// Client is a person a trainer coaches. Clients do not have accounts; every
// client row belongs to exactly one trainer.
type Client struct {
	ID          int64     `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"firstName"`
	LastName    string    `db:"last_name" json:"lastName"`
	Age         int       `db:"age" json:"age"`
	Gender      string    `db:"gender" json:"gender"`
	Occupation  string    `db:"occupation" json:"occupation"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber string    `db:"phone_number" json:"phoneNumber"`
	Address     string    `db:"address" json:"address"`
	LocationGym string    `db:"location_gym" json:"locationGym"`
	TrainerID   int64     `db:"trainer_id" json:"trainerId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	// Denormalized on joined reads; empty otherwise.
	TrainerFirstName string `db:"trainer_first_name" json:"trainerFirstName,omitempty"`
	TrainerLastName  string `db:"trainer_last_name" json:"trainerLastName,omitempty"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

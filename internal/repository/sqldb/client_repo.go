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

type clientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a ClientRepository backed by the relational store.
func NewClientRepository(db *sqlx.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (int64, error) {
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	query := `INSERT INTO clients
	          (first_name, last_name, age, gender, occupation, email, phone_number, address, location_gym, trainer_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	res, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.Age,
		client.Gender,
		client.Occupation,
		client.Email,
		client.PhoneNumber,
		client.Address,
		client.LocationGym,
		client.TrainerID,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	client := &domain.Client{}
	query := `SELECT cl.*, t.first_name AS trainer_first_name, t.last_name AS trainer_last_name
	          FROM clients cl
	          JOIN trainers t ON cl.trainer_id = t.id
	          WHERE cl.id = $1`

	err := r.db.GetContext(ctx, client, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return client, err
}

func (r *clientRepository) GetByTrainerID(ctx context.Context, trainerID int64) ([]domain.Client, error) {
	var clients []domain.Client
	query := `SELECT cl.*, t.first_name AS trainer_first_name, t.last_name AS trainer_last_name
	          FROM clients cl
	          JOIN trainers t ON cl.trainer_id = t.id
	          WHERE cl.trainer_id = $1
	          ORDER BY cl.last_name, cl.first_name`

	err := r.db.SelectContext(ctx, &clients, query, trainerID)
	return clients, err
}

func (r *clientRepository) CountByTrainerID(ctx context.Context, trainerID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM clients WHERE trainer_id = $1`
	err := r.db.QueryRowContext(ctx, query, trainerID).Scan(&count)
	return count, err
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `UPDATE clients
	          SET first_name = $1, last_name = $2, age = $3, gender = $4, occupation = $5,
	              email = $6, phone_number = $7, address = $8, location_gym = $9, updated_at = $10
	          WHERE id = $11 AND trainer_id = $12`

	res, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.Age,
		client.Gender,
		client.Occupation,
		client.Email,
		client.PhoneNumber,
		client.Address,
		client.LocationGym,
		time.Now(),
		client.ID,
		client.TrainerID,
	)
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

func (r *clientRepository) Delete(ctx context.Context, id, trainerID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM clients WHERE id = $1 AND trainer_id = $2`, id, trainerID)
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

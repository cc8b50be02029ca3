package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

type planRepository struct {
	db *sqlx.DB
}

// NewPlanRepository creates a PlanRepository over the generated_plans and
// demo_plans tables.
func NewPlanRepository(db *sqlx.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func planTable(kind domain.PlanKind) (string, error) {
	switch kind {
	case domain.PlanGenerated:
		return "generated_plans", nil
	case domain.PlanDemo:
		return "demo_plans", nil
	default:
		return "", fmt.Errorf("unknown plan kind %q", kind)
	}
}

func (r *planRepository) Create(ctx context.Context, kind domain.PlanKind, plan *domain.Plan) (int64, error) {
	table, err := planTable(kind)
	if err != nil {
		return 0, err
	}
	now := time.Now()

	query := `INSERT INTO ` + table + `
	          (client_id, name, details, completed_marked, day_completion_status, pinned_until, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	res, err := r.db.ExecContext(ctx, query,
		plan.ClientID,
		plan.Name,
		plan.Details,
		plan.CompletedMarked,
		plan.DayCompletion,
		plan.PinnedUntil,
		now,
		now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *planRepository) GetByID(ctx context.Context, kind domain.PlanKind, id int64) (*domain.Plan, error) {
	table, err := planTable(kind)
	if err != nil {
		return nil, err
	}

	plan := &domain.Plan{}
	query := `SELECT p.*, c.first_name AS client_first_name, c.last_name AS client_last_name
	          FROM ` + table + ` p
	          JOIN clients c ON c.id = p.client_id
	          WHERE p.id = $1`

	err = r.db.GetContext(ctx, plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return plan, err
}

func (r *planRepository) GetLatestByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) (*domain.Plan, error) {
	table, err := planTable(kind)
	if err != nil {
		return nil, err
	}

	plan := &domain.Plan{}
	query := `SELECT * FROM ` + table + ` WHERE client_id = $1 ORDER BY id DESC LIMIT 1`

	err = r.db.GetContext(ctx, plan, query, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return plan, err
}

func (r *planRepository) GetByClientID(ctx context.Context, kind domain.PlanKind, clientID int64) ([]domain.Plan, error) {
	table, err := planTable(kind)
	if err != nil {
		return nil, err
	}

	var plans []domain.Plan
	query := `SELECT * FROM ` + table + ` WHERE client_id = $1 ORDER BY id DESC`
	err = r.db.SelectContext(ctx, &plans, query, clientID)
	return plans, err
}

func (r *planRepository) Update(ctx context.Context, kind domain.PlanKind, id int64, name, details string) error {
	table, err := planTable(kind)
	if err != nil {
		return err
	}

	query := `UPDATE ` + table + ` SET name = $1, details = $2, updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, name, details, time.Now(), id)
	if err != nil {
		return err
	}
	return oneRowAffected(res, repository.ErrNotFound)
}

func (r *planRepository) Delete(ctx context.Context, kind domain.PlanKind, id int64) error {
	table, err := planTable(kind)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return oneRowAffected(res, repository.ErrNotFound)
}

func (r *planRepository) UpdateCompletion(ctx context.Context, kind domain.PlanKind, id int64, days domain.DayCompletion, completed bool) error {
	table, err := planTable(kind)
	if err != nil {
		return err
	}

	query := `UPDATE ` + table + `
	          SET day_completion_status = $1, completed_marked = $2, updated_at = $3
	          WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, days, completed, time.Now(), id)
	if err != nil {
		return err
	}
	return oneRowAffected(res, repository.ErrNotFound)
}

func (r *planRepository) SetPinnedUntil(ctx context.Context, kind domain.PlanKind, id int64, until *time.Time) error {
	table, err := planTable(kind)
	if err != nil {
		return err
	}

	query := `UPDATE ` + table + ` SET pinned_until = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, until, time.Now(), id)
	if err != nil {
		return err
	}
	return oneRowAffected(res, repository.ErrNotFound)
}

func (r *planRepository) PinnedByTrainerID(ctx context.Context, trainerID int64, now time.Time) ([]domain.PinnedPlan, error) {
	pinned := []domain.PinnedPlan{}

	for _, kind := range []domain.PlanKind{domain.PlanGenerated, domain.PlanDemo} {
		table, err := planTable(kind)
		if err != nil {
			return nil, err
		}

		var plans []domain.Plan
		query := `SELECT p.*, c.first_name AS client_first_name, c.last_name AS client_last_name
		          FROM ` + table + ` p
		          JOIN clients c ON c.id = p.client_id
		          WHERE c.trainer_id = $1 AND p.pinned_until IS NOT NULL AND p.pinned_until > $2`
		if err := r.db.SelectContext(ctx, &plans, query, trainerID, now); err != nil {
			return nil, err
		}
		for i := range plans {
			pinned = append(pinned, domain.PinnedPlan{Kind: kind, Plan: plans[i]})
		}
	}

	// Most recently pinned first across both tables.
	sort.Slice(pinned, func(i, j int) bool {
		return pinned[i].PinnedUntil.After(*pinned[j].PinnedUntil)
	})
	return pinned, nil
}

func oneRowAffected(res sql.Result, errNone error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errNone
	}
	return nil
}

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

type assessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates an AssessmentRepository over the three
// assessment tables.
func NewAssessmentRepository(db *sqlx.DB) repository.AssessmentRepository {
	return &assessmentRepository{db: db}
}

// upsertByClientID runs the shared select-then-write dance for the one-row-per-
// client assessment tables.
func (r *assessmentRepository) upsertByClientID(ctx context.Context, table string, clientID int64, update func(id int64, now time.Time) (sql.Result, error), insert func(now time.Time) error) error {
	now := time.Now()

	var existingID int64
	err := r.db.GetContext(ctx, &existingID,
		`SELECT id FROM `+table+` WHERE client_id = $1`, clientID)
	switch {
	case err == nil:
		res, err := update(existingID, now)
		if err != nil {
			return err
		}
		return oneRowAffected(res, repository.ErrUpdateFailed)
	case errors.Is(err, sql.ErrNoRows):
		return insert(now)
	default:
		return err
	}
}

func (r *assessmentRepository) UpsertFlexibility(ctx context.Context, a *domain.FlexibilityAssessment) error {
	return r.upsertByClientID(ctx, "flexibility_assessments", a.ClientID,
		func(id int64, now time.Time) (sql.Result, error) {
			return r.db.ExecContext(ctx,
				`UPDATE flexibility_assessments
				 SET shoulder_flexibility = $1, lower_body_flexibility = $2, joint_mobility = $3, updated_at = $4
				 WHERE id = $5`,
				a.ShoulderFlexibility, a.LowerBodyFlexibility, a.JointMobility, now, id)
		},
		func(now time.Time) error {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO flexibility_assessments
				 (client_id, shoulder_flexibility, lower_body_flexibility, joint_mobility, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				a.ClientID, a.ShoulderFlexibility, a.LowerBodyFlexibility, a.JointMobility, now, now)
			return err
		})
}

func (r *assessmentRepository) FlexibilityByClientID(ctx context.Context, clientID int64) (*domain.FlexibilityAssessment, error) {
	a := &domain.FlexibilityAssessment{}
	err := r.db.GetContext(ctx, a,
		`SELECT * FROM flexibility_assessments WHERE client_id = $1`, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return a, err
}

func (r *assessmentRepository) UpsertBeginner(ctx context.Context, a *domain.BeginnerAssessment) error {
	return r.upsertByClientID(ctx, "beginner_assessments", a.ClientID,
		func(id int64, now time.Time) (sql.Result, error) {
			return r.db.ExecContext(ctx,
				`UPDATE beginner_assessments
				 SET basic_technique = $1, chair_sit_to_stand = $2, arm_curl = $3,
				     balance_test_results = $4, cardio_test = $5, updated_at = $6
				 WHERE id = $7`,
				a.BasicTechnique, a.ChairSitToStand, a.ArmCurl,
				a.BalanceTestResults, a.CardioTest, now, id)
		},
		func(now time.Time) error {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO beginner_assessments
				 (client_id, basic_technique, chair_sit_to_stand, arm_curl, balance_test_results, cardio_test, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				a.ClientID, a.BasicTechnique, a.ChairSitToStand, a.ArmCurl,
				a.BalanceTestResults, a.CardioTest, now, now)
			return err
		})
}

func (r *assessmentRepository) BeginnerByClientID(ctx context.Context, clientID int64) (*domain.BeginnerAssessment, error) {
	a := &domain.BeginnerAssessment{}
	err := r.db.GetContext(ctx, a,
		`SELECT * FROM beginner_assessments WHERE client_id = $1`, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return a, err
}

func (r *assessmentRepository) UpsertAdvanced(ctx context.Context, a *domain.AdvancedAssessment) error {
	return r.upsertByClientID(ctx, "advanced_assessments", a.ClientID,
		func(id int64, now time.Time) (sql.Result, error) {
			return r.db.ExecContext(ctx,
				`UPDATE advanced_assessments
				 SET advanced_technique = $1, strength_max = $2, strength_endurance = $3,
				     circuit = $4, moderate_cardio = $5, updated_at = $6
				 WHERE id = $7`,
				a.AdvancedTechnique, a.StrengthMax, a.StrengthEndurance,
				a.Circuit, a.ModerateCardio, now, id)
		},
		func(now time.Time) error {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO advanced_assessments
				 (client_id, advanced_technique, strength_max, strength_endurance, circuit, moderate_cardio, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				a.ClientID, a.AdvancedTechnique, a.StrengthMax, a.StrengthEndurance,
				a.Circuit, a.ModerateCardio, now, now)
			return err
		})
}

func (r *assessmentRepository) AdvancedByClientID(ctx context.Context, clientID int64) (*domain.AdvancedAssessment, error) {
	a := &domain.AdvancedAssessment{}
	err := r.db.GetContext(ctx, a,
		`SELECT * FROM advanced_assessments WHERE client_id = $1`, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return a, err
}

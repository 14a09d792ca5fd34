package repository

import (
	"context"
	"fmt"

	"sweephouse/database"
	"sweephouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ComplianceRepository implements the ComplianceRepository interface
type ComplianceRepository struct {
	q Queryable
}

// NewComplianceRepository creates a new compliance repository
func NewComplianceRepository(db *database.DB) *ComplianceRepository {
	return &ComplianceRepository{q: db.Pool}
}

func newComplianceRepository(tx Queryable) *ComplianceRepository {
	return &ComplianceRepository{q: tx}
}

// GetProfile retrieves a user's compliance profile, nil if absent
func (r *ComplianceRepository) GetProfile(ctx context.Context, userID int64) (*entities.ComplianceProfile, error) {
	query := `
		SELECT user_id, birth_date, state, country, terms_accepted_at, created_at
		FROM sweepstakes_compliance
		WHERE user_id = $1
	`

	var profile entities.ComplianceProfile
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.BirthDate,
		&profile.State,
		&profile.Country,
		&profile.TermsAcceptedAt,
		&profile.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get compliance profile for user %d: %w", userID, err)
	}

	return &profile, nil
}

// SaveProfile upserts a compliance profile
func (r *ComplianceRepository) SaveProfile(ctx context.Context, profile *entities.ComplianceProfile) error {
	query := `
		INSERT INTO sweepstakes_compliance (user_id, birth_date, state, country, terms_accepted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			birth_date = EXCLUDED.birth_date,
			state = EXCLUDED.state,
			country = EXCLUDED.country,
			terms_accepted_at = EXCLUDED.terms_accepted_at
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		profile.UserID,
		profile.BirthDate,
		profile.State,
		profile.Country,
		profile.TermsAcceptedAt,
	).Scan(&profile.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save compliance profile for user %d: %w", profile.UserID, err)
	}

	return nil
}

// RecordCheck appends an audit log row for an eligibility check
func (r *ComplianceRepository) RecordCheck(ctx context.Context, entry *entities.ComplianceLog) error {
	query := `
		INSERT INTO compliance_logs (user_id, check_type, eligible, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.UserID,
		entry.CheckType,
		entry.Eligible,
		entry.Reason,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record compliance check for user %d: %w", entry.UserID, err)
	}

	return nil
}

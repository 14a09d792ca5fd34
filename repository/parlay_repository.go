package repository

import (
	"context"
	"fmt"
	"time"

	"sweephouse/database"
	"sweephouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ParlayRepository implements the ParlayRepository interface
type ParlayRepository struct {
	q Queryable
}

// NewParlayRepository creates a new parlay repository
func NewParlayRepository(db *database.DB) *ParlayRepository {
	return &ParlayRepository{q: db.Pool}
}

func newParlayRepository(tx Queryable) *ParlayRepository {
	return &ParlayRepository{q: tx}
}

// CreateWithLegs persists a parlay and its legs in creation order as part of
// the surrounding transaction
func (r *ParlayRepository) CreateWithLegs(ctx context.Context, parlay *entities.Parlay) error {
	parlayQuery := `
		INSERT INTO sports_parlays (id, user_id, total_wager, potential_payout, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, parlayQuery,
		parlay.ID,
		parlay.UserID,
		parlay.TotalWager,
		parlay.PotentialPayout,
		parlay.Status,
	).Scan(&parlay.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create parlay for user %d: %w", parlay.UserID, err)
	}

	legQuery := `
		INSERT INTO parlay_legs (id, parlay_id, event_id, leg_index, pick, bet_type, odds, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i, leg := range parlay.Legs {
		_, err := r.q.Exec(ctx, legQuery,
			leg.ID,
			leg.ParlayID,
			leg.EventID,
			i,
			leg.Pick,
			leg.BetType,
			leg.Odds,
			leg.Result,
		)
		if err != nil {
			return fmt.Errorf("failed to create leg for parlay %s: %w", parlay.ID, err)
		}
	}

	return nil
}

const parlaySelectColumns = `id, user_id, total_wager, potential_payout, status, created_at, resolved_at`

func scanParlay(row pgx.Row) (*entities.Parlay, error) {
	var parlay entities.Parlay
	err := row.Scan(
		&parlay.ID,
		&parlay.UserID,
		&parlay.TotalWager,
		&parlay.PotentialPayout,
		&parlay.Status,
		&parlay.CreatedAt,
		&parlay.ResolvedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &parlay, nil
}

// loadLegs attaches legs to each parlay in insertion order.
func (r *ParlayRepository) loadLegs(ctx context.Context, parlays []*entities.Parlay) error {
	if len(parlays) == 0 {
		return nil
	}

	byID := make(map[string]*entities.Parlay, len(parlays))
	ids := make([]string, 0, len(parlays))
	for _, p := range parlays {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query := `
		SELECT id, parlay_id, event_id, pick, bet_type, odds, result
		FROM parlay_legs
		WHERE parlay_id = ANY($1)
		ORDER BY leg_index
	`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load parlay legs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var leg entities.ParlayLeg
		err := rows.Scan(
			&leg.ID,
			&leg.ParlayID,
			&leg.EventID,
			&leg.Pick,
			&leg.BetType,
			&leg.Odds,
			&leg.Result,
		)
		if err != nil {
			return fmt.Errorf("failed to scan parlay leg: %w", err)
		}
		if parent, ok := byID[leg.ParlayID]; ok {
			parent.Legs = append(parent.Legs, &leg)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate parlay legs: %w", err)
	}

	return nil
}

// GetByID retrieves a parlay with its legs in stored order
func (r *ParlayRepository) GetByID(ctx context.Context, parlayID string) (*entities.Parlay, error) {
	query := fmt.Sprintf(`SELECT %s FROM sports_parlays WHERE id = $1`, parlaySelectColumns)

	parlay, err := scanParlay(r.q.QueryRow(ctx, query, parlayID))
	if err != nil {
		return nil, fmt.Errorf("failed to get parlay %s: %w", parlayID, err)
	}
	if parlay == nil {
		return nil, nil
	}

	if err := r.loadLegs(ctx, []*entities.Parlay{parlay}); err != nil {
		return nil, err
	}

	return parlay, nil
}

// GetByUser returns a user's parlays with legs, newest first
func (r *ParlayRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sports_parlays
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, parlaySelectColumns)

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get parlays for user %d: %w", userID, err)
	}

	parlays, err := collectParlays(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadLegs(ctx, parlays); err != nil {
		return nil, err
	}

	return parlays, nil
}

// GetUnresolvedByEvent returns non-terminal parlays holding at least one leg
// on the event, legs loaded. Settled parlays are filtered out here, which is
// what makes re-running resolution for an event a no-op.
func (r *ParlayRepository) GetUnresolvedByEvent(ctx context.Context, eventID string) ([]*entities.Parlay, error) {
	query := `
		SELECT DISTINCT p.id, p.user_id, p.total_wager, p.potential_payout, p.status, p.created_at, p.resolved_at
		FROM sports_parlays p
		JOIN parlay_legs l ON l.parlay_id = p.id
		WHERE l.event_id = $1 AND p.status IN ($2, $3)
	`

	rows, err := r.q.Query(ctx, query, eventID, entities.ParlayStatusPending, entities.ParlayStatusPendingResults)
	if err != nil {
		return nil, fmt.Errorf("failed to get unresolved parlays for event %s: %w", eventID, err)
	}

	parlays, err := collectParlays(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadLegs(ctx, parlays); err != nil {
		return nil, err
	}

	return parlays, nil
}

func collectParlays(rows pgx.Rows) ([]*entities.Parlay, error) {
	defer rows.Close()

	var parlays []*entities.Parlay
	for rows.Next() {
		var parlay entities.Parlay
		err := rows.Scan(
			&parlay.ID,
			&parlay.UserID,
			&parlay.TotalWager,
			&parlay.PotentialPayout,
			&parlay.Status,
			&parlay.CreatedAt,
			&parlay.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parlay: %w", err)
		}
		parlays = append(parlays, &parlay)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parlays: %w", err)
	}

	return parlays, nil
}

// UpdateLegResult sets a pending leg's result exactly once
func (r *ParlayRepository) UpdateLegResult(ctx context.Context, legID string, result entities.LegResult) error {
	query := `
		UPDATE parlay_legs
		SET result = $1
		WHERE id = $2 AND result = $3
	`
	tag, err := r.q.Exec(ctx, query, result, legID, entities.LegResultPending)
	if err != nil {
		return fmt.Errorf("failed to update result for leg %s: %w", legID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending leg %s not found", legID)
	}

	return nil
}

// UpdateStatus transitions a parlay's status
func (r *ParlayRepository) UpdateStatus(ctx context.Context, parlayID string, status entities.ParlayStatus, resolvedAt *time.Time) error {
	query := `
		UPDATE sports_parlays
		SET status = $1, resolved_at = $2
		WHERE id = $3
	`
	result, err := r.q.Exec(ctx, query, status, resolvedAt, parlayID)
	if err != nil {
		return fmt.Errorf("failed to update status for parlay %s: %w", parlayID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("parlay %s not found", parlayID)
	}

	return nil
}

package repository

import (
	"context"
	"fmt"

	"sweephouse/database"
	"sweephouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// HandRepository implements the HandRepository interface
type HandRepository struct {
	q Queryable
}

// NewHandRepository creates a new hand repository
func NewHandRepository(db *database.DB) *HandRepository {
	return &HandRepository{q: db.Pool}
}

func newHandRepository(tx Queryable) *HandRepository {
	return &HandRepository{q: tx}
}

// Create persists a newly dealt hand
func (r *HandRepository) Create(ctx context.Context, hand *entities.Hand) error {
	query := `
		INSERT INTO poker_hands (id, table_id, small_blind_amount, big_blind_amount, pot, community_cards, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		hand.ID,
		hand.TableID,
		hand.SmallBlindAmount,
		hand.BigBlindAmount,
		hand.Pot,
		hand.CommunityCards,
		hand.Status,
	).Scan(&hand.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create hand for table %s: %w", hand.TableID, err)
	}

	return nil
}

const handSelectColumns = `id, table_id, small_blind_amount, big_blind_amount, pot, community_cards, status, winner_id, winning_hand, created_at, completed_at`

func scanHand(row pgx.Row) (*entities.Hand, error) {
	var hand entities.Hand
	err := row.Scan(
		&hand.ID,
		&hand.TableID,
		&hand.SmallBlindAmount,
		&hand.BigBlindAmount,
		&hand.Pot,
		&hand.CommunityCards,
		&hand.Status,
		&hand.WinnerID,
		&hand.WinningHand,
		&hand.CreatedAt,
		&hand.CompletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hand, nil
}

// GetByID retrieves a hand by ID
func (r *HandRepository) GetByID(ctx context.Context, handID string) (*entities.Hand, error) {
	query := fmt.Sprintf(`SELECT %s FROM poker_hands WHERE id = $1`, handSelectColumns)

	hand, err := scanHand(r.q.QueryRow(ctx, query, handID))
	if err != nil {
		return nil, fmt.Errorf("failed to get hand %s: %w", handID, err)
	}
	return hand, nil
}

// GetByIDForUpdate retrieves a hand with a row lock so completion settles
// exactly once under concurrent callers.
func (r *HandRepository) GetByIDForUpdate(ctx context.Context, handID string) (*entities.Hand, error) {
	query := fmt.Sprintf(`SELECT %s FROM poker_hands WHERE id = $1 FOR UPDATE`, handSelectColumns)

	hand, err := scanHand(r.q.QueryRow(ctx, query, handID))
	if err != nil {
		return nil, fmt.Errorf("failed to get hand %s for update: %w", handID, err)
	}
	return hand, nil
}

// Update persists a hand's progression and outcome fields
func (r *HandRepository) Update(ctx context.Context, hand *entities.Hand) error {
	query := `
		UPDATE poker_hands
		SET pot = $1, community_cards = $2, status = $3, winner_id = $4, winning_hand = $5, completed_at = $6
		WHERE id = $7
	`
	result, err := r.q.Exec(ctx, query,
		hand.Pot,
		hand.CommunityCards,
		hand.Status,
		hand.WinnerID,
		hand.WinningHand,
		hand.CompletedAt,
		hand.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update hand %s: %w", hand.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hand %s not found", hand.ID)
	}

	return nil
}

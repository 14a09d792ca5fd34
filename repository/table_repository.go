package repository

import (
	"context"
	"fmt"
	"time"

	"sweephouse/database"
	"sweephouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// TableRepository implements the TableRepository interface
type TableRepository struct {
	q Queryable
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *database.DB) *TableRepository {
	return &TableRepository{q: db.Pool}
}

func newTableRepository(tx Queryable) *TableRepository {
	return &TableRepository{q: tx}
}

// Create persists a new table
func (r *TableRepository) Create(ctx context.Context, table *entities.Table) error {
	query := `
		INSERT INTO poker_tables (id, name, small_blind, big_blind, max_players, min_buy_in, max_buy_in, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		table.ID,
		table.Name,
		table.SmallBlind,
		table.BigBlind,
		table.MaxPlayers,
		table.MinBuyIn,
		table.MaxBuyIn,
		table.Status,
	).Scan(&table.CreatedAt, &table.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}

	return nil
}

const tableSelectColumns = `id, name, small_blind, big_blind, max_players, min_buy_in, max_buy_in, status, created_at, updated_at`

func scanTable(row pgx.Row) (*entities.Table, error) {
	var table entities.Table
	err := row.Scan(
		&table.ID,
		&table.Name,
		&table.SmallBlind,
		&table.BigBlind,
		&table.MaxPlayers,
		&table.MinBuyIn,
		&table.MaxBuyIn,
		&table.Status,
		&table.CreatedAt,
		&table.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// GetByID retrieves a table by ID
func (r *TableRepository) GetByID(ctx context.Context, tableID string) (*entities.Table, error) {
	query := fmt.Sprintf(`SELECT %s FROM poker_tables WHERE id = $1`, tableSelectColumns)

	table, err := scanTable(r.q.QueryRow(ctx, query, tableID))
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableID, err)
	}
	return table, nil
}

// GetByIDForUpdate retrieves a table and locks its row. Joins lock the table
// so the capacity check and the seat insert cannot interleave.
func (r *TableRepository) GetByIDForUpdate(ctx context.Context, tableID string) (*entities.Table, error) {
	query := fmt.Sprintf(`SELECT %s FROM poker_tables WHERE id = $1 FOR UPDATE`, tableSelectColumns)

	table, err := scanTable(r.q.QueryRow(ctx, query, tableID))
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s for update: %w", tableID, err)
	}
	return table, nil
}

// ListOpen returns open tables annotated with live active seat counts,
// newest first
func (r *TableRepository) ListOpen(ctx context.Context) ([]*entities.Table, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT COUNT(*) FROM poker_players pp WHERE pp.table_id = poker_tables.id AND pp.is_active) AS active_players
		FROM poker_tables
		WHERE status = $1
		ORDER BY created_at DESC
	`, tableSelectColumns)

	rows, err := r.q.Query(ctx, query, entities.TableStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tables: %w", err)
	}
	defer rows.Close()

	var tables []*entities.Table
	for rows.Next() {
		var table entities.Table
		err := rows.Scan(
			&table.ID,
			&table.Name,
			&table.SmallBlind,
			&table.BigBlind,
			&table.MaxPlayers,
			&table.MinBuyIn,
			&table.MaxBuyIn,
			&table.Status,
			&table.CreatedAt,
			&table.UpdatedAt,
			&table.ActivePlayers,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, &table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tables: %w", err)
	}

	return tables, nil
}

// UpdateStatus transitions a table's lifecycle status
func (r *TableRepository) UpdateStatus(ctx context.Context, tableID string, status entities.TableStatus) error {
	query := `
		UPDATE poker_tables
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.q.Exec(ctx, query, status, tableID)
	if err != nil {
		return fmt.Errorf("failed to update status for table %s: %w", tableID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("table %s not found", tableID)
	}

	return nil
}

// CountActiveSeats returns the number of active seats at a table
func (r *TableRepository) CountActiveSeats(ctx context.Context, tableID string) (int, error) {
	query := `SELECT COUNT(*) FROM poker_players WHERE table_id = $1 AND is_active`

	var count int
	if err := r.q.QueryRow(ctx, query, tableID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active seats for table %s: %w", tableID, err)
	}

	return count, nil
}

// GetActiveSeat returns the user's active seat at a table, nil if none
func (r *TableRepository) GetActiveSeat(ctx context.Context, tableID string, userID int64) (*entities.SeatedPlayer, error) {
	query := `
		SELECT id, table_id, user_id, stack, position, is_active, joined_at, left_at
		FROM poker_players
		WHERE table_id = $1 AND user_id = $2 AND is_active
	`

	var seat entities.SeatedPlayer
	err := r.q.QueryRow(ctx, query, tableID, userID).Scan(
		&seat.ID,
		&seat.TableID,
		&seat.UserID,
		&seat.Stack,
		&seat.Position,
		&seat.IsActive,
		&seat.JoinedAt,
		&seat.LeftAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active seat for user %d at table %s: %w", userID, tableID, err)
	}

	return &seat, nil
}

// InsertSeat seats a player
func (r *TableRepository) InsertSeat(ctx context.Context, seat *entities.SeatedPlayer) error {
	query := `
		INSERT INTO poker_players (table_id, user_id, stack, position, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, joined_at
	`

	err := r.q.QueryRow(ctx, query,
		seat.TableID,
		seat.UserID,
		seat.Stack,
		seat.Position,
		seat.IsActive,
	).Scan(&seat.ID, &seat.JoinedAt)

	if err != nil {
		return fmt.Errorf("failed to seat user %d at table %s: %w", seat.UserID, seat.TableID, err)
	}

	return nil
}

// DeactivateSeat soft-removes a seat, retaining the row
func (r *TableRepository) DeactivateSeat(ctx context.Context, seatID int64, leftAt time.Time) error {
	query := `
		UPDATE poker_players
		SET is_active = FALSE, left_at = $1
		WHERE id = $2 AND is_active
	`
	result, err := r.q.Exec(ctx, query, leftAt, seatID)
	if err != nil {
		return fmt.Errorf("failed to deactivate seat %d: %w", seatID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("active seat %d not found", seatID)
	}

	return nil
}

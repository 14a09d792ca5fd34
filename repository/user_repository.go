package repository

import (
	"context"
	"fmt"

	"sweephouse/database"
	"sweephouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

func newUserRepository(tx Queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userSelectColumns = `user_id, username, balance, hands_won, parlays_won, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Balance,
		&user.HandsWon,
		&user.ParlaysWon,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1`, userSelectColumns)

	user, err := scanUser(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

// GetByIDForUpdate retrieves a user and locks the row for the surrounding
// transaction. Used by every balance mutation so concurrent wagers against
// the same balance serialize.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, userID int64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1 FOR UPDATE`, userSelectColumns)

	user, err := scanUser(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d for update: %w", userID, err)
	}
	return user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, userID int64, username string, initialBalance int64) (*entities.User, error) {
	query := `
		INSERT INTO users (user_id, username, balance)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	user := &entities.User{
		UserID:   userID,
		Username: username,
		Balance:  initialBalance,
	}
	err := r.q.QueryRow(ctx, query, userID, username, initialBalance).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", userID, err)
	}

	return user, nil
}

// UpdateBalance updates a user's balance atomically
func (r *UserRepository) UpdateBalance(ctx context.Context, userID int64, newBalance int64) error {
	query := `
		UPDATE users
		SET balance = $1, updated_at = NOW()
		WHERE user_id = $2
	`
	result, err := r.q.Exec(ctx, query, newBalance, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// IncrementHandsWon bumps the lifetime poker win counter
func (r *UserRepository) IncrementHandsWon(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET hands_won = hands_won + 1, updated_at = NOW()
		WHERE user_id = $1
	`
	result, err := r.q.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to increment hands won for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// IncrementParlaysWon bumps the lifetime parlay win counter
func (r *UserRepository) IncrementParlaysWon(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET parlays_won = parlays_won + 1, updated_at = NOW()
		WHERE user_id = $1
	`
	result, err := r.q.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to increment parlays won for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", userID)
	}

	return nil
}

// GetAll returns all users ordered by creation time, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userSelectColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.UserID,
			&user.Username,
			&user.Balance,
			&user.HandsWon,
			&user.ParlaysWon,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

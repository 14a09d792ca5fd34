package repository

import (
	"context"
	"fmt"
	"time"

	"sweephouse/database"
	"sweephouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// TransactionRepository implements the TransactionRepository interface
type TransactionRepository struct {
	q Queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

func newTransactionRepository(tx Queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Record appends a new transaction record
func (r *TransactionRepository) Record(ctx context.Context, transaction *entities.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, kind, currency, amount, balance_before, balance_after, description, status, related_id, related_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		transaction.UserID,
		transaction.Kind,
		transaction.Currency,
		transaction.Amount,
		transaction.BalanceBefore,
		transaction.BalanceAfter,
		transaction.Description,
		transaction.Status,
		transaction.RelatedID,
		transaction.RelatedType,
	).Scan(&transaction.ID, &transaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", transaction.UserID, err)
	}

	return nil
}

const transactionSelectColumns = `id, user_id, kind, currency, amount, balance_before, balance_after, description, status, related_id, related_type, created_at`

func scanTransactions(rows pgx.Rows) ([]*entities.Transaction, error) {
	defer rows.Close()

	var transactions []*entities.Transaction
	for rows.Next() {
		var tx entities.Transaction
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Kind,
			&tx.Currency,
			&tx.Amount,
			&tx.BalanceBefore,
			&tx.BalanceAfter,
			&tx.Description,
			&tx.Status,
			&tx.RelatedID,
			&tx.RelatedType,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// GetByUser returns recent transactions for a user, newest first
func (r *TransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, transactionSelectColumns)

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", userID, err)
	}

	return scanTransactions(rows)
}

// GetByDateRange returns transactions within a date range
func (r *TransactionRepository) GetByDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC, id DESC
	`, transactionSelectColumns)

	rows, err := r.q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d in range: %w", userID, err)
	}

	return scanTransactions(rows)
}

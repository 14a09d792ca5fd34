package entities

import "time"

// User represents a registered player with a sweeps-coins balance.
// The balance is mutated only through the ledger's debit/credit operations.
type User struct {
	UserID     int64     `db:"user_id"`
	Username   string    `db:"username"`
	Balance    int64     `db:"balance"`
	HandsWon   int64     `db:"hands_won"`
	ParlaysWon int64     `db:"parlays_won"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// CanAfford checks if the user has sufficient balance for an amount
func (u *User) CanAfford(amount int64) bool {
	return u.Balance >= amount
}

// HasPositiveBalance checks if the user has a positive balance
func (u *User) HasPositiveBalance() bool {
	return u.Balance > 0
}

// ValidateAmount checks if an amount is valid (positive and affordable)
func (u *User) ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !u.CanAfford(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// CalculateNewBalance calculates what the balance would be after a change
func (u *User) CalculateNewBalance(changeAmount int64) int64 {
	return u.Balance + changeAmount
}

package entities

import "errors"

// Sentinel errors for the wager settlement core. Callers discriminate with
// errors.Is; repositories and services wrap these with operation context.
var (
	// ErrInsufficientFunds is returned when a debit exceeds the user's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned for non-positive ledger amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	ErrUserNotFound   = errors.New("user not found")
	ErrTableNotFound  = errors.New("table not found")
	ErrHandNotFound   = errors.New("hand not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrParlayNotFound = errors.New("parlay not found")
	ErrPlayerNotFound = errors.New("player not seated at table")

	// ErrInvalidBuyIn is returned when a buy-in falls outside the table's bounds.
	ErrInvalidBuyIn = errors.New("buy-in outside table limits")

	// ErrTableFull is returned when the active seat count has reached capacity.
	ErrTableFull = errors.New("table is full")

	ErrInvalidWager = errors.New("wager must be positive")
	ErrInvalidLegs  = errors.New("parlay requires at least one leg")

	// ErrAlreadyResolved guards against double settlement of a finished
	// hand or terminal parlay. Idempotent resolution paths should prevent
	// this from surfacing in normal operation.
	ErrAlreadyResolved = errors.New("already resolved")
)

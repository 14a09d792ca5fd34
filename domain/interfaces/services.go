package interfaces

import (
	"context"

	"sweephouse/domain/entities"
)

// LegSelection is a caller's requested parlay leg.
type LegSelection struct {
	EventID string
	Pick    entities.Pick
	BetType entities.BetType
	Odds    float64
}

// BalanceService is the wager settlement ledger: the only path through
// which feature logic may move a user's balance. Every movement appends a
// transaction record in the same unit of work.
type BalanceService interface {
	// GetOrCreateUser fetches a user, creating them with the configured
	// starting balance on first sight
	GetOrCreateUser(ctx context.Context, userID int64, username string) (*entities.User, error)

	// Debit subtracts amount from the user's balance and appends a
	// bet-kind record. Fails with entities.ErrInvalidAmount for
	// non-positive amounts and entities.ErrInsufficientFunds when the
	// balance cannot cover it.
	Debit(ctx context.Context, userID int64, amount int64, description string, relatedID *string, relatedType *entities.RelatedType) (*entities.Transaction, error)

	// Credit adds amount to the user's balance and appends a win-kind
	// record with the given description
	Credit(ctx context.Context, userID int64, amount int64, description string, relatedID *string, relatedType *entities.RelatedType) (*entities.Transaction, error)

	// GetTransactionHistory returns recent ledger records for a user
	GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error)
}

// TableService manages the poker table registry and the buy-in/cash-out
// wager flow
type TableService interface {
	// CreateTable registers a table; buy-in bounds derive from the big blind
	CreateTable(ctx context.Context, name string, smallBlind, bigBlind int64, maxPlayers int) (*entities.Table, error)

	// ListOpenTables returns open tables with live player counts, newest first
	ListOpenTables(ctx context.Context) ([]*entities.Table, error)

	// JoinTable debits the buy-in and seats the player as one atomic unit
	JoinTable(ctx context.Context, tableID string, userID int64, buyIn int64) (*entities.SeatedPlayer, error)

	// LeaveTable soft-removes the seat and credits the caller-supplied
	// cash-out
	LeaveTable(ctx context.Context, tableID string, userID int64, cashOut int64) error

	// CloseTable ends a table's lifetime. Tables are never deleted.
	CloseTable(ctx context.Context, tableID string) error
}

// HandService tracks a hand's pot and completion
type HandService interface {
	// DealHand opens a hand at a table with the pot seeded by the blinds
	DealHand(ctx context.Context, tableID string) (*entities.Hand, error)

	// CompleteHand finishes a hand exactly once with the caller-asserted
	// winner and hand rank, crediting the pot
	CompleteHand(ctx context.Context, handID string, winnerID int64, winningHand string) (*entities.Hand, error)
}

// ParlayService builds and settles multi-leg sports parlays against the
// event catalog
type ParlayService interface {
	// ListUpcomingEvents returns wagerable events, ascending start time,
	// optionally filtered by sport ("" for all)
	ListUpcomingEvents(ctx context.Context, sport string) ([]*entities.SportsEvent, error)

	// CreateParlay validates legs against the catalog, computes the
	// payout, debits the wager and persists parlay plus legs atomically
	CreateParlay(ctx context.Context, userID int64, legs []LegSelection, totalWager int64) (*entities.Parlay, error)

	// UpdateEventScore stores in-progress scores. It never finalizes the
	// event; see CompleteEvent.
	UpdateEventScore(ctx context.Context, eventID string, homeScore, awayScore int) (*entities.SportsEvent, error)

	// CompleteEvent records the final score and marks the event completed,
	// making it eligible for parlay resolution
	CompleteEvent(ctx context.Context, eventID string, homeScore, awayScore int) (*entities.SportsEvent, error)

	// ResolveParlaysForEvent settles legs riding on a completed event and
	// pays out parlays whose legs have all resolved. Idempotent: safe to
	// re-invoke from any trigger without double-crediting.
	ResolveParlaysForEvent(ctx context.Context, eventID string) ([]*entities.Parlay, error)

	// GetLiveOdds is a pure read of cached odds and scores for a sport
	GetLiveOdds(ctx context.Context, sport string) ([]*entities.SportsEvent, error)

	// GetUserParlays returns a user's parlays, newest first
	GetUserParlays(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error)
}

// EligibilityService is the sweepstakes eligibility gate. The route layer
// consults it before invoking wager operations; the ledger flows do not
// call it internally.
type EligibilityService interface {
	// CheckEligibility evaluates age, state and country rules in that
	// priority order, appending an audit row for every check
	CheckEligibility(ctx context.Context, userID int64) (*entities.EligibilityResult, error)

	// VerifyEligibilityForEntry fails closed: ineligible unless every rule
	// passes and terms acceptance is on record
	VerifyEligibilityForEntry(ctx context.Context, userID int64) (*entities.EligibilityResult, error)
}

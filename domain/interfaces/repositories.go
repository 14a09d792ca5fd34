package interfaces

import (
	"context"
	"time"

	"sweephouse/domain/entities"
	"sweephouse/domain/events"
)

// UserRepository defines the interface for user balance data access
type UserRepository interface {
	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, userID int64) (*entities.User, error)

	// GetByIDForUpdate retrieves a user and locks the row for the duration
	// of the surrounding transaction. Balance checks that precede a write
	// must read through this to stay check-then-act atomic.
	GetByIDForUpdate(ctx context.Context, userID int64) (*entities.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, userID int64, username string, initialBalance int64) (*entities.User, error)

	// UpdateBalance updates a user's balance atomically
	UpdateBalance(ctx context.Context, userID int64, newBalance int64) error

	// IncrementHandsWon bumps the lifetime poker win counter
	IncrementHandsWon(ctx context.Context, userID int64) error

	// IncrementParlaysWon bumps the lifetime parlay win counter
	IncrementParlaysWon(ctx context.Context, userID int64) error

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*entities.User, error)
}

// TransactionRepository defines the interface for the append-only
// transaction log
type TransactionRepository interface {
	// Record appends a new transaction record
	Record(ctx context.Context, tx *entities.Transaction) error

	// GetByUser returns recent transactions for a user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error)

	// GetByDateRange returns transactions within a date range
	GetByDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*entities.Transaction, error)
}

// TableRepository defines the interface for poker table and seat data access
type TableRepository interface {
	// Create persists a new table
	Create(ctx context.Context, table *entities.Table) error

	// GetByID retrieves a table by ID
	GetByID(ctx context.Context, tableID string) (*entities.Table, error)

	// GetByIDForUpdate retrieves a table and locks its row so capacity
	// checks are atomic with the seat insert under concurrent joins
	GetByIDForUpdate(ctx context.Context, tableID string) (*entities.Table, error)

	// ListOpen returns open tables annotated with live active seat counts,
	// newest first
	ListOpen(ctx context.Context) ([]*entities.Table, error)

	// UpdateStatus transitions a table's lifecycle status
	UpdateStatus(ctx context.Context, tableID string, status entities.TableStatus) error

	// CountActiveSeats returns the number of active seats at a table
	CountActiveSeats(ctx context.Context, tableID string) (int, error)

	// GetActiveSeat returns the user's active seat at a table, nil if none
	GetActiveSeat(ctx context.Context, tableID string, userID int64) (*entities.SeatedPlayer, error)

	// InsertSeat seats a player
	InsertSeat(ctx context.Context, seat *entities.SeatedPlayer) error

	// DeactivateSeat soft-removes a seat, retaining the row
	DeactivateSeat(ctx context.Context, seatID int64, leftAt time.Time) error
}

// HandRepository defines the interface for poker hand data access
type HandRepository interface {
	// Create persists a newly dealt hand
	Create(ctx context.Context, hand *entities.Hand) error

	// GetByID retrieves a hand by ID
	GetByID(ctx context.Context, handID string) (*entities.Hand, error)

	// GetByIDForUpdate retrieves a hand with a row lock for completion
	GetByIDForUpdate(ctx context.Context, handID string) (*entities.Hand, error)

	// Update persists a hand's progression and outcome fields
	Update(ctx context.Context, hand *entities.Hand) error
}

// EventRepository defines the interface for the sports event catalog
type EventRepository interface {
	// Create persists a catalog event
	Create(ctx context.Context, event *entities.SportsEvent) error

	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, eventID string) (*entities.SportsEvent, error)

	// ListUpcoming returns scheduled events starting after now, ascending
	// start time, optionally filtered by sport ("" for all)
	ListUpcoming(ctx context.Context, sport string, now time.Time) ([]*entities.SportsEvent, error)

	// ListBySport returns all events for a sport regardless of status
	ListBySport(ctx context.Context, sport string) ([]*entities.SportsEvent, error)

	// ListAll returns the whole catalog, for cache warm-up
	ListAll(ctx context.Context) ([]*entities.SportsEvent, error)

	// UpdateScore stores scores and moves the event to the given status
	UpdateScore(ctx context.Context, eventID string, homeScore, awayScore int, status entities.EventStatus) error
}

// ParlayRepository defines the interface for parlay and leg data access
type ParlayRepository interface {
	// CreateWithLegs persists a parlay and its legs in creation order as
	// part of the surrounding transaction
	CreateWithLegs(ctx context.Context, parlay *entities.Parlay) error

	// GetByID retrieves a parlay with its legs in stored order
	GetByID(ctx context.Context, parlayID string) (*entities.Parlay, error)

	// GetByUser returns a user's parlays with legs, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error)

	// GetUnresolvedByEvent returns non-terminal parlays holding at least
	// one leg on the event, legs loaded. The status filter is what makes
	// re-resolution idempotent: settled parlays are never candidates.
	GetUnresolvedByEvent(ctx context.Context, eventID string) ([]*entities.Parlay, error)

	// UpdateLegResult sets a pending leg's result exactly once
	UpdateLegResult(ctx context.Context, legID string, result entities.LegResult) error

	// UpdateStatus transitions a parlay's status
	UpdateStatus(ctx context.Context, parlayID string, status entities.ParlayStatus, resolvedAt *time.Time) error
}

// ComplianceRepository defines the interface for eligibility data access
type ComplianceRepository interface {
	// GetProfile retrieves a user's compliance profile, nil if absent
	GetProfile(ctx context.Context, userID int64) (*entities.ComplianceProfile, error)

	// SaveProfile upserts a compliance profile
	SaveProfile(ctx context.Context, profile *entities.ComplianceProfile) error

	// RecordCheck appends an audit log row for an eligibility check
	RecordCheck(ctx context.Context, entry *entities.ComplianceLog) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers published events for the lifetime of a
// database transaction. Flush after commit, Discard on rollback.
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all pending events
	Flush(ctx context.Context) error

	// Discard drops all pending events without publishing
	Discard()
}

package entities

import (
	"errors"
	"time"
)

// Buy-in bounds are derived from the big blind at creation time.
const (
	MinBuyInBigBlinds = 20
	MaxBuyInBigBlinds = 500

	// DefaultMaxPlayers is the seat capacity when the operator does not
	// specify one.
	DefaultMaxPlayers = 6
)

// TableStatus is the lifecycle state of a poker table.
type TableStatus string

const (
	TableStatusOpen    TableStatus = "open"
	TableStatusPlaying TableStatus = "playing"
	TableStatusClosed  TableStatus = "closed"
)

// Table holds one poker table's configuration. Tables are never deleted,
// only closed.
type Table struct {
	ID         string      `db:"id"`
	Name       string      `db:"name"`
	SmallBlind int64       `db:"small_blind"`
	BigBlind   int64       `db:"big_blind"`
	MaxPlayers int         `db:"max_players"`
	MinBuyIn   int64       `db:"min_buy_in"`
	MaxBuyIn   int64       `db:"max_buy_in"`
	Status     TableStatus `db:"status"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`

	// ActivePlayers is populated from the seat rows on reads; it is not a
	// column of the tables relation.
	ActivePlayers int `db:"-"`
}

// NewTable builds a table with buy-in bounds derived from the big blind.
func NewTable(name string, smallBlind, bigBlind int64, maxPlayers int) (*Table, error) {
	if name == "" {
		return nil, errors.New("table name cannot be empty")
	}
	if smallBlind <= 0 || bigBlind <= 0 {
		return nil, errors.New("blinds must be positive")
	}
	if smallBlind >= bigBlind {
		return nil, errors.New("small blind must be less than big blind")
	}
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	return &Table{
		Name:       name,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		MaxPlayers: maxPlayers,
		MinBuyIn:   bigBlind * MinBuyInBigBlinds,
		MaxBuyIn:   bigBlind * MaxBuyInBigBlinds,
		Status:     TableStatusOpen,
	}, nil
}

// IsOpen returns true if the table accepts new players
func (t *Table) IsOpen() bool {
	return t.Status == TableStatusOpen
}

// ValidateBuyIn checks a buy-in against the table's bounds
func (t *Table) ValidateBuyIn(buyIn int64) error {
	if buyIn < t.MinBuyIn || buyIn > t.MaxBuyIn {
		return ErrInvalidBuyIn
	}
	return nil
}

// HasCapacity reports whether another active seat fits
func (t *Table) HasCapacity(activeSeats int) bool {
	return activeSeats < t.MaxPlayers
}

// PotForBlinds is the opening pot when a hand is dealt at this table
func (t *Table) PotForBlinds() int64 {
	return t.SmallBlind + t.BigBlind
}

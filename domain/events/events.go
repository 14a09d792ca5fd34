package events

import "sweephouse/domain/entities"

// EventType represents different types of domain events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeUserCreated    EventType = "user_created"
	EventTypePlayerSeated   EventType = "player_seated"
	EventTypeHandCompleted  EventType = "hand_completed"
	EventTypeParlayPlaced   EventType = "parlay_placed"
	EventTypeParlayResolved EventType = "parlay_resolved"
)

// Event is the base interface for all domain events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID     int64
	OldBalance int64
	NewBalance int64
	Kind       entities.TransactionKind
	Amount     int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID         int64
	Username       string
	InitialBalance int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// PlayerSeatedEvent represents a player buying in at a table
type PlayerSeatedEvent struct {
	TableID string
	UserID  int64
	BuyIn   int64
}

func (e PlayerSeatedEvent) Type() EventType {
	return EventTypePlayerSeated
}

// HandCompletedEvent represents a finished hand and its pot award
type HandCompletedEvent struct {
	HandID   string
	TableID  string
	WinnerID int64
	Pot      int64
}

func (e HandCompletedEvent) Type() EventType {
	return EventTypeHandCompleted
}

// ParlayPlacedEvent represents a parlay accepted into the ledger
type ParlayPlacedEvent struct {
	ParlayID        string
	UserID          int64
	TotalWager      int64
	PotentialPayout float64
	LegCount        int
}

func (e ParlayPlacedEvent) Type() EventType {
	return EventTypeParlayPlaced
}

// ParlayResolvedEvent represents a parlay reaching a terminal status
type ParlayResolvedEvent struct {
	ParlayID string
	UserID   int64
	Status   entities.ParlayStatus
	Payout   int64
}

func (e ParlayResolvedEvent) Type() EventType {
	return EventTypeParlayResolved
}

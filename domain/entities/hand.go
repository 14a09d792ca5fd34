package entities

import "time"

// HandStatus tracks a hand's progression from deal to completion.
type HandStatus string

const (
	HandStatusPreFlop  HandStatus = "pre-flop"
	HandStatusFlop     HandStatus = "flop"
	HandStatusTurn     HandStatus = "turn"
	HandStatusRiver    HandStatus = "river"
	HandStatusFinished HandStatus = "finished"
)

// Hand is one dealt hand at a table. The pot opens at the sum of the
// blinds. Community cards stay empty: there is no dealing or hand
// evaluation in this core, the winner and winning hand are asserted by the
// caller at completion.
type Hand struct {
	ID               string     `db:"id"`
	TableID          string     `db:"table_id"`
	SmallBlindAmount int64      `db:"small_blind_amount"`
	BigBlindAmount   int64      `db:"big_blind_amount"`
	Pot              int64      `db:"pot"`
	CommunityCards   []string   `db:"community_cards"`
	Status           HandStatus `db:"status"`
	WinnerID         *int64     `db:"winner_id"`
	WinningHand      *string    `db:"winning_hand"`
	CreatedAt        time.Time  `db:"created_at"`
	CompletedAt      *time.Time `db:"completed_at"`
}

// NewHand opens a hand for a table with the pot seeded by the blinds.
func NewHand(table *Table) *Hand {
	return &Hand{
		TableID:          table.ID,
		SmallBlindAmount: table.SmallBlind,
		BigBlindAmount:   table.BigBlind,
		Pot:              table.PotForBlinds(),
		CommunityCards:   []string{},
		Status:           HandStatusPreFlop,
	}
}

// IsFinished returns true once the hand has been completed
func (h *Hand) IsFinished() bool {
	return h.Status == HandStatusFinished
}

// Complete finishes the hand exactly once with the caller-asserted outcome.
func (h *Hand) Complete(winnerID int64, winningHand string, now time.Time) error {
	if h.IsFinished() {
		return ErrAlreadyResolved
	}
	h.Status = HandStatusFinished
	h.WinnerID = &winnerID
	h.WinningHand = &winningHand
	h.CompletedAt = &now
	return nil
}

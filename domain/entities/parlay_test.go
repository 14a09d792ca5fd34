package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func legs(odds ...float64) []*ParlayLeg {
	out := make([]*ParlayLeg, 0, len(odds))
	for _, o := range odds {
		out = append(out, &ParlayLeg{Odds: o, Result: LegResultPending})
	}
	return out
}

func TestCalculatePotentialPayout(t *testing.T) {
	tests := []struct {
		name       string
		totalWager int64
		odds       []float64
		want       float64
	}{
		{"single leg", 100, []float64{150}, 150},
		{"two legs", 10, []float64{150, 120}, 18},
		{"sub-100 odds shrink the payout", 100, []float64{50}, 50},
		{"no legs leaves the wager", 100, nil, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePotentialPayout(tt.totalWager, legs(tt.odds...))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParlay_PayoutAmount_RoundsHalfAway(t *testing.T) {
	assert.Equal(t, int64(18), (&Parlay{PotentialPayout: 18.0}).PayoutAmount())
	assert.Equal(t, int64(19), (&Parlay{PotentialPayout: 18.5}).PayoutAmount())
	assert.Equal(t, int64(18), (&Parlay{PotentialPayout: 18.49}).PayoutAmount())
}

func TestParlay_AllLegsResolved(t *testing.T) {
	p := &Parlay{Legs: legs(150, 120)}
	assert.False(t, p.AllLegsResolved())

	p.Legs[0].Result = LegResultWon
	assert.False(t, p.AllLegsResolved())

	p.Legs[1].Result = LegResultLost
	assert.True(t, p.AllLegsResolved())
}

func TestParlay_AllLegsWon(t *testing.T) {
	p := &Parlay{Legs: legs(150, 120)}
	p.Legs[0].Result = LegResultWon
	p.Legs[1].Result = LegResultWon
	assert.True(t, p.AllLegsWon())

	p.Legs[1].Result = LegResultLost
	assert.False(t, p.AllLegsWon())
}

func TestParlayStatus_IsTerminal(t *testing.T) {
	assert.True(t, ParlayStatusWon.IsTerminal())
	assert.True(t, ParlayStatusLost.IsTerminal())
	assert.False(t, ParlayStatusPending.IsTerminal())
	assert.False(t, ParlayStatusPendingResults.IsTerminal())
}

func TestParlayLeg_IsResolved(t *testing.T) {
	leg := &ParlayLeg{Result: LegResultPending}
	assert.False(t, leg.IsResolved())

	leg.Result = LegResultWon
	assert.True(t, leg.IsResolved())
}

func TestHand_CompleteExactlyOnce(t *testing.T) {
	table, err := NewTable("Showdown", 5, 10, 6)
	assert.NoError(t, err)

	hand := NewHand(table)
	assert.Equal(t, int64(15), hand.Pot)
	assert.Equal(t, HandStatusPreFlop, hand.Status)
	assert.Empty(t, hand.CommunityCards)

	now := time.Now().UTC()
	err = hand.Complete(42, "full house", now)
	assert.NoError(t, err)
	assert.Equal(t, HandStatusFinished, hand.Status)
	assert.Equal(t, int64(42), *hand.WinnerID)
	assert.Equal(t, "full house", *hand.WinningHand)

	err = hand.Complete(99, "straight", now)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	// First completion stands
	assert.Equal(t, int64(42), *hand.WinnerID)
}

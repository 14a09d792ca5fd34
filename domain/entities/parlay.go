package entities

import (
	"math"
	"time"
)

// ParlayStatus tracks a parlay from creation to settlement. A parlay
// transitions exactly once from a non-terminal status to won or lost;
// pending_results marks a parlay that has some, but not all, leg results.
type ParlayStatus string

const (
	ParlayStatusPending        ParlayStatus = "pending"
	ParlayStatusPendingResults ParlayStatus = "pending_results"
	ParlayStatusWon            ParlayStatus = "won"
	ParlayStatusLost           ParlayStatus = "lost"
)

// IsTerminal returns true for settled statuses
func (ps ParlayStatus) IsTerminal() bool {
	return ps == ParlayStatusWon || ps == ParlayStatusLost
}

// Pick is the side of a leg's market the user took.
type Pick string

const (
	PickHome  Pick = "home"
	PickAway  Pick = "away"
	PickOver  Pick = "over"
	PickUnder Pick = "under"
)

// BetType is the market a leg rides on.
type BetType string

const (
	BetTypeSpread    BetType = "spread"
	BetTypeMoneyline BetType = "moneyline"
	BetTypeOverUnder BetType = "over_under"
)

// LegResult is the settled outcome of one leg.
type LegResult string

const (
	LegResultWon     LegResult = "won"
	LegResultLost    LegResult = "lost"
	LegResultPending LegResult = "pending"
)

// ParlayLeg is one constituent wager of a parlay. Immutable after creation
// except for Result, which is set exactly once when its event resolves.
type ParlayLeg struct {
	ID       string    `db:"id"`
	ParlayID string    `db:"parlay_id"`
	EventID  string    `db:"event_id"`
	Pick     Pick      `db:"pick"`
	BetType  BetType   `db:"bet_type"`
	Odds     float64   `db:"odds"`
	Result   LegResult `db:"result"`
}

// IsResolved returns true once the leg carries a final result
func (l *ParlayLeg) IsResolved() bool {
	return l.Result == LegResultWon || l.Result == LegResultLost
}

// Parlay is a multi-leg sports wager. Legs keep creation order.
type Parlay struct {
	ID              string       `db:"id"`
	UserID          int64        `db:"user_id"`
	Legs            []*ParlayLeg `db:"-"`
	TotalWager      int64        `db:"total_wager"`
	PotentialPayout float64      `db:"potential_payout"`
	Status          ParlayStatus `db:"status"`
	CreatedAt       time.Time    `db:"created_at"`
	ResolvedAt      *time.Time   `db:"resolved_at"`
}

// CalculatePotentialPayout multiplies the wager by each leg's odds/100
// factor in leg order. The odds/100 multiplier is intentionally not a
// conventional American-odds conversion; it is the formula the settlement
// trail was built on and changing it would reprice historical parlays.
func CalculatePotentialPayout(totalWager int64, legs []*ParlayLeg) float64 {
	payout := float64(totalWager)
	for _, leg := range legs {
		payout *= leg.Odds / 100
	}
	return payout
}

// AllLegsResolved returns true once every leg carries a result
func (p *Parlay) AllLegsResolved() bool {
	for _, leg := range p.Legs {
		if !leg.IsResolved() {
			return false
		}
	}
	return true
}

// AllLegsWon returns true only if every leg resolved won
func (p *Parlay) AllLegsWon() bool {
	for _, leg := range p.Legs {
		if leg.Result != LegResultWon {
			return false
		}
	}
	return true
}

// PayoutAmount converts the potential payout to ledger coins,
// rounding half away from zero.
func (p *Parlay) PayoutAmount() int64 {
	return int64(math.Round(p.PotentialPayout))
}

package services

import (
	"errors"

	"sweephouse/domain/entities"
)

// ParlayResolutionService contains pure business logic for settling parlay
// legs against final scores and aggregating leg results into a parlay
// outcome. It holds no state and touches no repositories.
type ParlayResolutionService struct{}

// NewParlayResolutionService creates a new ParlayResolutionService
func NewParlayResolutionService() *ParlayResolutionService {
	return &ParlayResolutionService{}
}

// DetermineLegResult settles one leg against a completed event. Returns
// pending when the event cannot settle the leg (no final scores yet).
// Ties resolve lost: the simplified odds model has no push concept.
func (s *ParlayResolutionService) DetermineLegResult(leg *entities.ParlayLeg, event *entities.SportsEvent) entities.LegResult {
	if !event.IsCompleted() || !event.HasScores() {
		return entities.LegResultPending
	}

	home := float64(*event.HomeScore)
	away := float64(*event.AwayScore)

	var won bool
	switch leg.BetType {
	case entities.BetTypeSpread:
		// Spread is the home team's handicap; home covers when the
		// adjusted score still beats the away score. Without a stored
		// spread the leg degrades to a straight-up comparison.
		spread := 0.0
		if event.Spread != nil {
			spread = *event.Spread
		}
		adjusted := home + spread
		switch leg.Pick {
		case entities.PickHome:
			won = adjusted > away
		case entities.PickAway:
			won = away > adjusted
		}
	case entities.BetTypeOverUnder:
		if event.OverUnder == nil {
			return entities.LegResultLost
		}
		total := home + away
		switch leg.Pick {
		case entities.PickOver:
			won = total > *event.OverUnder
		case entities.PickUnder:
			won = total < *event.OverUnder
		}
	case entities.BetTypeMoneyline:
		switch leg.Pick {
		case entities.PickHome:
			won = home > away
		case entities.PickAway:
			won = away > home
		}
	}

	if won {
		return entities.LegResultWon
	}
	return entities.LegResultLost
}

// CanParlayBeSettled checks whether a parlay is ready for its single
// terminal transition
func (s *ParlayResolutionService) CanParlayBeSettled(parlay *entities.Parlay) error {
	if parlay.Status.IsTerminal() {
		return entities.ErrAlreadyResolved
	}
	if !parlay.AllLegsResolved() {
		return errors.New("parlay has unresolved legs")
	}
	return nil
}

// FinalStatus aggregates leg results: won iff every leg won
func (s *ParlayResolutionService) FinalStatus(parlay *entities.Parlay) entities.ParlayStatus {
	if parlay.AllLegsWon() {
		return entities.ParlayStatusWon
	}
	return entities.ParlayStatusLost
}

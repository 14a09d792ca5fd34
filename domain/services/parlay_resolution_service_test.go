package services

import (
	"testing"

	"sweephouse/domain/entities"

	"github.com/stretchr/testify/assert"
)

func completedEvent(home, away int) *entities.SportsEvent {
	return &entities.SportsEvent{
		ID:        "event-1",
		Status:    entities.EventStatusCompleted,
		HomeScore: &home,
		AwayScore: &away,
	}
}

func TestDetermineLegResult_Moneyline(t *testing.T) {
	svc := NewParlayResolutionService()

	tests := []struct {
		name string
		pick entities.Pick
		home int
		away int
		want entities.LegResult
	}{
		{"home pick, home wins", entities.PickHome, 21, 14, entities.LegResultWon},
		{"home pick, home loses", entities.PickHome, 14, 21, entities.LegResultLost},
		{"away pick, away wins", entities.PickAway, 14, 21, entities.LegResultWon},
		{"tie loses both ways", entities.PickHome, 14, 14, entities.LegResultLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg := &entities.ParlayLeg{BetType: entities.BetTypeMoneyline, Pick: tt.pick}
			got := svc.DetermineLegResult(leg, completedEvent(tt.home, tt.away))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineLegResult_Spread(t *testing.T) {
	svc := NewParlayResolutionService()

	spread := -6.5
	event := completedEvent(21, 17)
	event.Spread = &spread

	// Home 21 - 6.5 = 14.5 does not beat away 17
	homeLeg := &entities.ParlayLeg{BetType: entities.BetTypeSpread, Pick: entities.PickHome}
	assert.Equal(t, entities.LegResultLost, svc.DetermineLegResult(homeLeg, event))

	awayLeg := &entities.ParlayLeg{BetType: entities.BetTypeSpread, Pick: entities.PickAway}
	assert.Equal(t, entities.LegResultWon, svc.DetermineLegResult(awayLeg, event))

	// Exact push loses
	push := -4.0
	event.Spread = &push
	assert.Equal(t, entities.LegResultLost, svc.DetermineLegResult(homeLeg, event))
}

func TestDetermineLegResult_OverUnder(t *testing.T) {
	svc := NewParlayResolutionService()

	total := 44.5
	event := completedEvent(24, 21) // total 45
	event.OverUnder = &total

	over := &entities.ParlayLeg{BetType: entities.BetTypeOverUnder, Pick: entities.PickOver}
	under := &entities.ParlayLeg{BetType: entities.BetTypeOverUnder, Pick: entities.PickUnder}

	assert.Equal(t, entities.LegResultWon, svc.DetermineLegResult(over, event))
	assert.Equal(t, entities.LegResultLost, svc.DetermineLegResult(under, event))

	// Landing exactly on the number loses both sides
	exact := 45.0
	event.OverUnder = &exact
	assert.Equal(t, entities.LegResultLost, svc.DetermineLegResult(over, event))
	assert.Equal(t, entities.LegResultLost, svc.DetermineLegResult(under, event))

	// No posted total
	event.OverUnder = nil
	assert.Equal(t, entities.LegResultLost, svc.DetermineLegResult(over, event))
}

func TestDetermineLegResult_EventNotSettleable(t *testing.T) {
	svc := NewParlayResolutionService()
	leg := &entities.ParlayLeg{BetType: entities.BetTypeMoneyline, Pick: entities.PickHome}

	inProgress := completedEvent(7, 3)
	inProgress.Status = entities.EventStatusInProgress
	assert.Equal(t, entities.LegResultPending, svc.DetermineLegResult(leg, inProgress))

	noScores := &entities.SportsEvent{Status: entities.EventStatusCompleted}
	assert.Equal(t, entities.LegResultPending, svc.DetermineLegResult(leg, noScores))
}

func TestCanParlayBeSettled(t *testing.T) {
	svc := NewParlayResolutionService()

	settled := &entities.Parlay{Status: entities.ParlayStatusWon}
	assert.ErrorIs(t, svc.CanParlayBeSettled(settled), entities.ErrAlreadyResolved)

	open := &entities.Parlay{
		Status: entities.ParlayStatusPending,
		Legs:   []*entities.ParlayLeg{{Result: entities.LegResultPending}},
	}
	assert.Error(t, svc.CanParlayBeSettled(open))

	ready := &entities.Parlay{
		Status: entities.ParlayStatusPendingResults,
		Legs:   []*entities.ParlayLeg{{Result: entities.LegResultLost}},
	}
	assert.NoError(t, svc.CanParlayBeSettled(ready))
}

func TestFinalStatus(t *testing.T) {
	svc := NewParlayResolutionService()

	allWon := &entities.Parlay{Legs: []*entities.ParlayLeg{
		{Result: entities.LegResultWon},
		{Result: entities.LegResultWon},
	}}
	assert.Equal(t, entities.ParlayStatusWon, svc.FinalStatus(allWon))

	oneLost := &entities.Parlay{Legs: []*entities.ParlayLeg{
		{Result: entities.LegResultWon},
		{Result: entities.LegResultLost},
	}}
	assert.Equal(t, entities.ParlayStatusLost, svc.FinalStatus(oneLost))
}

package repository

import (
	"context"
	"testing"
	"time"

	"sweephouse/domain/entities"
	"sweephouse/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEvent(t *testing.T, repo *EventRepository, sport string) *entities.SportsEvent {
	t.Helper()
	event := &entities.SportsEvent{
		ID:        uuid.New().String(),
		Sport:     sport,
		HomeTeam:  "Home",
		AwayTeam:  "Away",
		StartTime: time.Now().UTC().Add(24 * time.Hour),
		Status:    entities.EventStatusScheduled,
	}
	require.NoError(t, repo.Create(context.Background(), event))
	return event
}

func createTestParlay(t *testing.T, repo *ParlayRepository, userID int64, eventIDs ...string) *entities.Parlay {
	t.Helper()
	parlayID := uuid.New().String()
	legs := make([]*entities.ParlayLeg, 0, len(eventIDs))
	for _, eventID := range eventIDs {
		legs = append(legs, &entities.ParlayLeg{
			ID:       uuid.New().String(),
			ParlayID: parlayID,
			EventID:  eventID,
			Pick:     entities.PickHome,
			BetType:  entities.BetTypeMoneyline,
			Odds:     150,
			Result:   entities.LegResultPending,
		})
	}
	parlay := &entities.Parlay{
		ID:              parlayID,
		UserID:          userID,
		Legs:            legs,
		TotalWager:      10,
		PotentialPayout: entities.CalculatePotentialPayout(10, legs),
		Status:          entities.ParlayStatusPending,
	}
	require.NoError(t, repo.CreateWithLegs(context.Background(), parlay))
	return parlay
}

func TestParlayRepository_CreateWithLegs(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	eventRepo := NewEventRepository(testDB.DB)
	parlayRepo := NewParlayRepository(testDB.DB)

	_, err := userRepo.Create(ctx, 4001, "grace", 1000)
	require.NoError(t, err)

	eventA := createTestEvent(t, eventRepo, "football")
	eventB := createTestEvent(t, eventRepo, "basketball")
	eventC := createTestEvent(t, eventRepo, "hockey")

	created := createTestParlay(t, parlayRepo, 4001, eventA.ID, eventB.ID, eventC.ID)

	t.Run("read back preserves leg order", func(t *testing.T) {
		parlay, err := parlayRepo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, parlay)
		require.Len(t, parlay.Legs, 3)

		assert.Equal(t, eventA.ID, parlay.Legs[0].EventID)
		assert.Equal(t, eventB.ID, parlay.Legs[1].EventID)
		assert.Equal(t, eventC.ID, parlay.Legs[2].EventID)
		assert.Equal(t, entities.ParlayStatusPending, parlay.Status)
		assert.InDelta(t, created.PotentialPayout, parlay.PotentialPayout, 1e-9)
	})

	t.Run("unknown parlay returns nil", func(t *testing.T) {
		parlay, err := parlayRepo.GetByID(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Nil(t, parlay)
	})
}

func TestParlayRepository_GetUnresolvedByEvent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	eventRepo := NewEventRepository(testDB.DB)
	parlayRepo := NewParlayRepository(testDB.DB)

	_, err := userRepo.Create(ctx, 4002, "henry", 1000)
	require.NoError(t, err)

	shared := createTestEvent(t, eventRepo, "football")
	other := createTestEvent(t, eventRepo, "football")

	pending := createTestParlay(t, parlayRepo, 4002, shared.ID)
	partial := createTestParlay(t, parlayRepo, 4002, shared.ID, other.ID)
	require.NoError(t, parlayRepo.UpdateStatus(ctx, partial.ID, entities.ParlayStatusPendingResults, nil))

	settled := createTestParlay(t, parlayRepo, 4002, shared.ID)
	now := time.Now().UTC()
	require.NoError(t, parlayRepo.UpdateStatus(ctx, settled.ID, entities.ParlayStatusWon, &now))

	unrelated := createTestParlay(t, parlayRepo, 4002, other.ID)

	candidates, err := parlayRepo.GetUnresolvedByEvent(ctx, shared.ID)
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, p := range candidates {
		ids[p.ID] = true
		require.NotEmpty(t, p.Legs)
	}

	assert.True(t, ids[pending.ID])
	assert.True(t, ids[partial.ID])
	// Terminal parlays and parlays on other events are not candidates
	assert.False(t, ids[settled.ID])
	assert.False(t, ids[unrelated.ID])
}

func TestParlayRepository_UpdateLegResult(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	userRepo := NewUserRepository(testDB.DB)
	eventRepo := NewEventRepository(testDB.DB)
	parlayRepo := NewParlayRepository(testDB.DB)

	_, err := userRepo.Create(ctx, 4003, "iris", 1000)
	require.NoError(t, err)

	event := createTestEvent(t, eventRepo, "football")
	parlay := createTestParlay(t, parlayRepo, 4003, event.ID)
	legID := parlay.Legs[0].ID

	require.NoError(t, parlayRepo.UpdateLegResult(ctx, legID, entities.LegResultWon))

	// A leg settles once; a second write finds no pending row
	err = parlayRepo.UpdateLegResult(ctx, legID, entities.LegResultLost)
	assert.Error(t, err)

	stored, err := parlayRepo.GetByID(ctx, parlay.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.LegResultWon, stored.Legs[0].Result)
}

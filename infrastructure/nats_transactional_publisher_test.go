package infrastructure

import (
	"context"
	"errors"
	"testing"

	"sweephouse/domain/events"
	"sweephouse/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNATSTransactionalPublisher_FlushPublishesPending(t *testing.T) {
	real := new(testhelpers.MockEventPublisher)
	publisher := NewNATSTransactionalPublisher(real)

	first := events.BalanceChangeEvent{UserID: 1, OldBalance: 100, NewBalance: 90, Amount: -10}
	second := events.ParlayPlacedEvent{ParlayID: "parlay-1", UserID: 1, TotalWager: 10}

	require.NoError(t, publisher.Publish(first))
	require.NoError(t, publisher.Publish(second))

	// Nothing reaches the downstream publisher until flush
	real.AssertNotCalled(t, "Publish", mock.Anything)

	real.On("Publish", first).Return(nil).Once()
	real.On("Publish", second).Return(nil).Once()

	require.NoError(t, publisher.Flush(context.Background()))
	real.AssertExpectations(t)

	// A second flush has nothing left to publish
	require.NoError(t, publisher.Flush(context.Background()))
	real.AssertNumberOfCalls(t, "Publish", 2)
}

func TestNATSTransactionalPublisher_DiscardDropsPending(t *testing.T) {
	real := new(testhelpers.MockEventPublisher)
	publisher := NewNATSTransactionalPublisher(real)

	require.NoError(t, publisher.Publish(events.BalanceChangeEvent{UserID: 1, Amount: -10}))
	publisher.Discard()

	require.NoError(t, publisher.Flush(context.Background()))
	real.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestNATSTransactionalPublisher_FlushContinuesPastFailures(t *testing.T) {
	real := new(testhelpers.MockEventPublisher)
	publisher := NewNATSTransactionalPublisher(real)

	failing := events.BalanceChangeEvent{UserID: 1, Amount: -10}
	surviving := events.ParlayPlacedEvent{ParlayID: "parlay-1", UserID: 1}

	require.NoError(t, publisher.Publish(failing))
	require.NoError(t, publisher.Publish(surviving))

	real.On("Publish", failing).Return(errors.New("stream unavailable")).Once()
	real.On("Publish", surviving).Return(nil).Once()

	// Partial downstream failure does not fail the flush
	assert.NoError(t, publisher.Flush(context.Background()))
	real.AssertExpectations(t)
}

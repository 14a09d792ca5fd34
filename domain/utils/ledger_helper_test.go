package utils

import (
	"context"
	"testing"

	"sweephouse/domain/entities"
	"sweephouse/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyBalanceChange_Debit(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockTransactionRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	user := &entities.User{UserID: 7, Balance: 1000}
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(user, nil)
	mockUserRepo.On("UpdateBalance", ctx, int64(7), int64(400)).Return(nil)
	mockTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.UserID == 7 &&
			tx.Amount == -600 &&
			tx.BalanceBefore == 1000 &&
			tx.BalanceAfter == 400 &&
			tx.Kind == entities.TransactionKindBet &&
			tx.Currency == entities.CurrencySweeps
	})).Return(nil)
	mockEventPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)

	record, err := ApplyBalanceChange(ctx, mockUserRepo, mockTransactionRepo, mockEventPublisher, BalanceChange{
		UserID:      7,
		Amount:      -600,
		Kind:        entities.TransactionKindBet,
		Description: "table buy-in",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(400), record.BalanceAfter)

	mockUserRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
	mockEventPublisher.AssertExpectations(t)
}

func TestApplyBalanceChange_InsufficientFunds(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockTransactionRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	user := &entities.User{UserID: 7, Balance: 100}
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(user, nil)

	_, err := ApplyBalanceChange(ctx, mockUserRepo, mockTransactionRepo, mockEventPublisher, BalanceChange{
		UserID: 7,
		Amount: -101,
		Kind:   entities.TransactionKindBet,
	})

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	// Nothing was written
	mockUserRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	mockTransactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestApplyBalanceChange_ExactBalanceToZero(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockTransactionRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	user := &entities.User{UserID: 7, Balance: 100}
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(user, nil)
	mockUserRepo.On("UpdateBalance", ctx, int64(7), int64(0)).Return(nil)
	mockTransactionRepo.On("Record", ctx, mock.AnythingOfType("*entities.Transaction")).Return(nil)
	mockEventPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)

	record, err := ApplyBalanceChange(ctx, mockUserRepo, mockTransactionRepo, mockEventPublisher, BalanceChange{
		UserID: 7,
		Amount: -100,
		Kind:   entities.TransactionKindBet,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(0), record.BalanceAfter)
}

func TestApplyBalanceChange_UnknownUser(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockTransactionRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	mockUserRepo.On("GetByIDForUpdate", ctx, int64(404)).Return(nil, nil)

	_, err := ApplyBalanceChange(ctx, mockUserRepo, mockTransactionRepo, mockEventPublisher, BalanceChange{
		UserID: 404,
		Amount: 10,
		Kind:   entities.TransactionKindWin,
	})

	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestApplyBalanceChange_ZeroAmount(t *testing.T) {
	ctx := context.Background()

	_, err := ApplyBalanceChange(ctx, new(testhelpers.MockUserRepository), new(testhelpers.MockTransactionRepository), new(testhelpers.MockEventPublisher), BalanceChange{
		UserID: 7,
		Amount: 0,
		Kind:   entities.TransactionKindBet,
	})

	assert.ErrorIs(t, err, entities.ErrInvalidAmount)
}

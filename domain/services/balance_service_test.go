package services

import (
	"context"
	"testing"

	"sweephouse/config"
	"sweephouse/domain/entities"
	"sweephouse/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBalanceService_GetOrCreateUser_New(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockTransactionRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	service := NewBalanceService(mockUserRepo, mockTransactionRepo, mockEventPublisher)

	startingBalance := config.Get().StartingBalance
	created := &entities.User{UserID: 1, Username: "alice", Balance: startingBalance}

	mockUserRepo.On("GetByID", ctx, int64(1)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(1), "alice", startingBalance).Return(created, nil)
	mockTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.UserID == 1 &&
			tx.Kind == entities.TransactionKindAdjustment &&
			tx.Amount == startingBalance &&
			tx.BalanceBefore == 0 &&
			tx.BalanceAfter == startingBalance
	})).Return(nil)
	mockEventPublisher.On("Publish", mock.AnythingOfType("events.UserCreatedEvent")).Return(nil)

	user, err := service.GetOrCreateUser(ctx, 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, startingBalance, user.Balance)

	mockUserRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
	mockEventPublisher.AssertExpectations(t)
}

func TestBalanceService_GetOrCreateUser_Existing(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockTransactionRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	service := NewBalanceService(mockUserRepo, mockTransactionRepo, mockEventPublisher)

	existing := &entities.User{UserID: 1, Username: "alice", Balance: 250}
	mockUserRepo.On("GetByID", ctx, int64(1)).Return(existing, nil)

	user, err := service.GetOrCreateUser(ctx, 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(250), user.Balance)

	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockTransactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestBalanceService_DebitAndCredit(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(testhelpers.MockUserRepository)
	mockTransactionRepo := new(testhelpers.MockTransactionRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	service := NewBalanceService(mockUserRepo, mockTransactionRepo, mockEventPublisher)

	// Debit 300 from 1000
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(5)).Return(&entities.User{UserID: 5, Balance: 1000}, nil).Once()
	mockUserRepo.On("UpdateBalance", ctx, int64(5), int64(700)).Return(nil).Once()
	mockTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Amount == -300 && tx.Kind == entities.TransactionKindBet
	})).Return(nil).Once()
	mockEventPublisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)

	debit, err := service.Debit(ctx, 5, 300, "stake", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(700), debit.BalanceAfter)

	// Credit 300 back onto 700
	mockUserRepo.On("GetByIDForUpdate", ctx, int64(5)).Return(&entities.User{UserID: 5, Balance: 700}, nil).Once()
	mockUserRepo.On("UpdateBalance", ctx, int64(5), int64(1000)).Return(nil).Once()
	mockTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Amount == 300 && tx.Kind == entities.TransactionKindWin
	})).Return(nil).Once()

	credit, err := service.Credit(ctx, 5, 300, "payout", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), credit.BalanceAfter)

	mockUserRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
}

func TestBalanceService_RejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()

	service := NewBalanceService(new(testhelpers.MockUserRepository), new(testhelpers.MockTransactionRepository), new(testhelpers.MockEventPublisher))

	_, err := service.Debit(ctx, 5, 0, "noop", nil, nil)
	assert.ErrorIs(t, err, entities.ErrInvalidAmount)

	_, err = service.Debit(ctx, 5, -10, "negative", nil, nil)
	assert.ErrorIs(t, err, entities.ErrInvalidAmount)

	_, err = service.Credit(ctx, 5, 0, "noop", nil, nil)
	assert.ErrorIs(t, err, entities.ErrInvalidAmount)
}

package services

import (
	"context"
	"fmt"

	"sweephouse/config"
	"sweephouse/domain/entities"
	"sweephouse/domain/events"
	"sweephouse/domain/interfaces"
	"sweephouse/domain/utils"

	log "github.com/sirupsen/logrus"
)

type balanceService struct {
	userRepo        interfaces.UserRepository
	transactionRepo interfaces.TransactionRepository
	eventPublisher  interfaces.EventPublisher
}

// NewBalanceService creates a new balance service
func NewBalanceService(userRepo interfaces.UserRepository, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) interfaces.BalanceService {
	return &balanceService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
	}
}

// GetOrCreateUser fetches a user, creating them with the configured
// starting balance on first sight.
func (s *balanceService) GetOrCreateUser(ctx context.Context, userID int64, username string) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	startingBalance := config.Get().StartingBalance
	user, err = s.userRepo.Create(ctx, userID, username, startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if startingBalance > 0 {
		record := &entities.Transaction{
			UserID:        userID,
			Kind:          entities.TransactionKindAdjustment,
			Currency:      entities.CurrencySweeps,
			Amount:        startingBalance,
			BalanceBefore: 0,
			BalanceAfter:  startingBalance,
			Description:   "initial balance",
			Status:        entities.TransactionStatusCompleted,
		}
		if err := s.transactionRepo.Record(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"userID":          userID,
		"username":        username,
		"startingBalance": startingBalance,
	}).Info("Created new user")

	if err := s.eventPublisher.Publish(events.UserCreatedEvent{
		UserID:         userID,
		Username:       username,
		InitialBalance: startingBalance,
	}); err != nil {
		log.WithError(err).Error("Failed to publish user created event")
	}

	return user, nil
}

// Debit subtracts amount from the user's balance and appends a bet-kind record
func (s *balanceService) Debit(ctx context.Context, userID int64, amount int64, description string, relatedID *string, relatedType *entities.RelatedType) (*entities.Transaction, error) {
	if amount <= 0 {
		return nil, entities.ErrInvalidAmount
	}
	return utils.ApplyBalanceChange(ctx, s.userRepo, s.transactionRepo, s.eventPublisher, utils.BalanceChange{
		UserID:      userID,
		Amount:      -amount,
		Kind:        entities.TransactionKindBet,
		Description: description,
		RelatedID:   relatedID,
		RelatedType: relatedType,
	})
}

// Credit adds amount to the user's balance and appends a win-kind record
func (s *balanceService) Credit(ctx context.Context, userID int64, amount int64, description string, relatedID *string, relatedType *entities.RelatedType) (*entities.Transaction, error) {
	if amount <= 0 {
		return nil, entities.ErrInvalidAmount
	}
	return utils.ApplyBalanceChange(ctx, s.userRepo, s.transactionRepo, s.eventPublisher, utils.BalanceChange{
		UserID:      userID,
		Amount:      amount,
		Kind:        entities.TransactionKindWin,
		Description: description,
		RelatedID:   relatedID,
		RelatedType: relatedType,
	})
}

// GetTransactionHistory returns recent ledger records for a user
func (s *balanceService) GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	records, err := s.transactionRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return records, nil
}

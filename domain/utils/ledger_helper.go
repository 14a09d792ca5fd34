package utils

import (
	"context"
	"fmt"

	"sweephouse/domain/entities"
	"sweephouse/domain/events"
	"sweephouse/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// BalanceChange describes one signed balance movement and the ledger
// record that must accompany it.
type BalanceChange struct {
	UserID      int64
	Amount      int64 // signed: negative for debits
	Kind        entities.TransactionKind
	Description string
	RelatedID   *string
	RelatedType *entities.RelatedType
}

// ApplyBalanceChange is the single entry point for all balance movements.
// It locks the user row, applies the change, appends the transaction
// record and emits the balance change event. A reader inside the same
// transaction never observes a balance change without its log entry.
func ApplyBalanceChange(ctx context.Context, userRepo interfaces.UserRepository, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher, change BalanceChange) (*entities.Transaction, error) {
	if change.Amount == 0 {
		return nil, entities.ErrInvalidAmount
	}

	user, err := userRepo.GetByIDForUpdate(ctx, change.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", change.UserID, entities.ErrUserNotFound)
	}

	newBalance := user.Balance + change.Amount
	if newBalance < 0 {
		return nil, fmt.Errorf("balance %d cannot cover %d: %w", user.Balance, -change.Amount, entities.ErrInsufficientFunds)
	}

	if err := userRepo.UpdateBalance(ctx, change.UserID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	record := &entities.Transaction{
		UserID:        change.UserID,
		Kind:          change.Kind,
		Currency:      entities.CurrencySweeps,
		Amount:        change.Amount,
		BalanceBefore: user.Balance,
		BalanceAfter:  newBalance,
		Description:   change.Description,
		Status:        entities.TransactionStatusCompleted,
		RelatedID:     change.RelatedID,
		RelatedType:   change.RelatedType,
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction record: %w", err)
	}
	if err := transactionRepo.Record(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	event := events.BalanceChangeEvent{
		UserID:     change.UserID,
		OldBalance: user.Balance,
		NewBalance: newBalance,
		Kind:       change.Kind,
		Amount:     change.Amount,
	}
	log.WithFields(log.Fields{
		"userID":     event.UserID,
		"oldBalance": event.OldBalance,
		"newBalance": event.NewBalance,
		"kind":       event.Kind,
		"amount":     event.Amount,
	}).Debug("Publishing BalanceChangeEvent")
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	return record, nil
}

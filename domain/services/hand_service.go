package services

import (
	"context"
	"fmt"
	"time"

	"sweephouse/domain/entities"
	"sweephouse/domain/events"
	"sweephouse/domain/interfaces"
	"sweephouse/domain/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type handService struct {
	handRepo        interfaces.HandRepository
	tableRepo       interfaces.TableRepository
	userRepo        interfaces.UserRepository
	transactionRepo interfaces.TransactionRepository
	eventPublisher  interfaces.EventPublisher
}

// NewHandService creates a new hand service
func NewHandService(handRepo interfaces.HandRepository, tableRepo interfaces.TableRepository, userRepo interfaces.UserRepository, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) interfaces.HandService {
	return &handService{
		handRepo:        handRepo,
		tableRepo:       tableRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
	}
}

// DealHand opens a hand at a table. The pot is seeded with the blinds and
// the community cards stay empty: dealing and evaluation are not this
// core's job.
func (s *handService) DealHand(ctx context.Context, tableID string) (*entities.Hand, error) {
	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return nil, fmt.Errorf("table %s: %w", tableID, entities.ErrTableNotFound)
	}

	hand := entities.NewHand(table)
	hand.ID = uuid.New().String()

	if err := s.handRepo.Create(ctx, hand); err != nil {
		return nil, fmt.Errorf("failed to create hand: %w", err)
	}

	log.WithFields(log.Fields{
		"handID":  hand.ID,
		"tableID": tableID,
		"pot":     hand.Pot,
	}).Info("Dealt hand")

	return hand, nil
}

// CompleteHand finishes a hand exactly once. The winner and winning hand
// are caller-asserted; there is no check that the winner sat in the hand
// or that the ranking is a real poker hand.
func (s *handService) CompleteHand(ctx context.Context, handID string, winnerID int64, winningHand string) (*entities.Hand, error) {
	hand, err := s.handRepo.GetByIDForUpdate(ctx, handID)
	if err != nil {
		return nil, fmt.Errorf("failed to get hand: %w", err)
	}
	if hand == nil {
		return nil, fmt.Errorf("hand %s: %w", handID, entities.ErrHandNotFound)
	}

	if err := hand.Complete(winnerID, winningHand, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("hand %s: %w", handID, err)
	}

	if err := s.handRepo.Update(ctx, hand); err != nil {
		return nil, fmt.Errorf("failed to update hand: %w", err)
	}

	relatedType := entities.RelatedTypeHand
	if _, err := utils.ApplyBalanceChange(ctx, s.userRepo, s.transactionRepo, s.eventPublisher, utils.BalanceChange{
		UserID:      winnerID,
		Amount:      hand.Pot,
		Kind:        entities.TransactionKindWin,
		Description: fmt.Sprintf("hand win with %s", winningHand),
		RelatedID:   &handID,
		RelatedType: &relatedType,
	}); err != nil {
		return nil, err
	}

	if err := s.userRepo.IncrementHandsWon(ctx, winnerID); err != nil {
		return nil, fmt.Errorf("failed to increment hands won: %w", err)
	}

	if err := s.eventPublisher.Publish(events.HandCompletedEvent{
		HandID:   handID,
		TableID:  hand.TableID,
		WinnerID: winnerID,
		Pot:      hand.Pot,
	}); err != nil {
		log.WithError(err).Error("Failed to publish hand completed event")
	}

	return hand, nil
}

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

type tableService struct {
	tableRepo       interfaces.TableRepository
	userRepo        interfaces.UserRepository
	transactionRepo interfaces.TransactionRepository
	eventPublisher  interfaces.EventPublisher
}

// NewTableService creates a new table service
func NewTableService(tableRepo interfaces.TableRepository, userRepo interfaces.UserRepository, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) interfaces.TableService {
	return &tableService{
		tableRepo:       tableRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
	}
}

// CreateTable registers a table with buy-in bounds derived from the big blind
func (s *tableService) CreateTable(ctx context.Context, name string, smallBlind, bigBlind int64, maxPlayers int) (*entities.Table, error) {
	table, err := entities.NewTable(name, smallBlind, bigBlind, maxPlayers)
	if err != nil {
		return nil, err
	}
	table.ID = uuid.New().String()

	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	log.WithFields(log.Fields{
		"tableID":    table.ID,
		"name":       table.Name,
		"smallBlind": table.SmallBlind,
		"bigBlind":   table.BigBlind,
		"minBuyIn":   table.MinBuyIn,
		"maxBuyIn":   table.MaxBuyIn,
	}).Info("Created poker table")

	return table, nil
}

// ListOpenTables returns open tables with live player counts, newest first
func (s *tableService) ListOpenTables(ctx context.Context) ([]*entities.Table, error) {
	tables, err := s.tableRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tables: %w", err)
	}
	return tables, nil
}

// JoinTable debits the buy-in and seats the player. The row lock on the
// table serializes concurrent joins so the capacity check is atomic with
// the seat insert; the debit and insert commit or fail together with the
// surrounding transaction.
func (s *tableService) JoinTable(ctx context.Context, tableID string, userID int64, buyIn int64) (*entities.SeatedPlayer, error) {
	table, err := s.tableRepo.GetByIDForUpdate(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return nil, fmt.Errorf("table %s: %w", tableID, entities.ErrTableNotFound)
	}
	if table.Status == entities.TableStatusClosed {
		return nil, fmt.Errorf("table %s is closed: %w", tableID, entities.ErrTableNotFound)
	}

	if err := table.ValidateBuyIn(buyIn); err != nil {
		return nil, fmt.Errorf("buy-in %d outside [%d, %d]: %w", buyIn, table.MinBuyIn, table.MaxBuyIn, err)
	}

	existing, err := s.tableRepo.GetActiveSeat(ctx, tableID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing seat: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user %d already holds an active seat at table %s", userID, tableID)
	}

	activeSeats, err := s.tableRepo.CountActiveSeats(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active seats: %w", err)
	}
	if !table.HasCapacity(activeSeats) {
		return nil, fmt.Errorf("table %s has %d of %d seats filled: %w", tableID, activeSeats, table.MaxPlayers, entities.ErrTableFull)
	}

	relatedType := entities.RelatedTypeTable
	if _, err := utils.ApplyBalanceChange(ctx, s.userRepo, s.transactionRepo, s.eventPublisher, utils.BalanceChange{
		UserID:      userID,
		Amount:      -buyIn,
		Kind:        entities.TransactionKindBet,
		Description: fmt.Sprintf("table buy-in at %s", table.Name),
		RelatedID:   &tableID,
		RelatedType: &relatedType,
	}); err != nil {
		return nil, err
	}

	seat := &entities.SeatedPlayer{
		TableID:  tableID,
		UserID:   userID,
		Stack:    buyIn,
		Position: entities.PositionUnderTheGun,
		IsActive: true,
	}
	if err := s.tableRepo.InsertSeat(ctx, seat); err != nil {
		return nil, fmt.Errorf("failed to seat player: %w", err)
	}

	if err := s.eventPublisher.Publish(events.PlayerSeatedEvent{
		TableID: tableID,
		UserID:  userID,
		BuyIn:   buyIn,
	}); err != nil {
		log.WithError(err).Error("Failed to publish player seated event")
	}

	return seat, nil
}

// LeaveTable soft-removes the seat and credits the caller-supplied
// cash-out. The cash-out is not reconciled against the player's stack;
// stack accounting belongs to the dealing logic this core does not own.
func (s *tableService) LeaveTable(ctx context.Context, tableID string, userID int64, cashOut int64) error {
	seat, err := s.tableRepo.GetActiveSeat(ctx, tableID, userID)
	if err != nil {
		return fmt.Errorf("failed to get seat: %w", err)
	}
	if seat == nil {
		return fmt.Errorf("user %d at table %s: %w", userID, tableID, entities.ErrPlayerNotFound)
	}

	if err := s.tableRepo.DeactivateSeat(ctx, seat.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate seat: %w", err)
	}

	if cashOut > 0 {
		relatedType := entities.RelatedTypeTable
		if _, err := utils.ApplyBalanceChange(ctx, s.userRepo, s.transactionRepo, s.eventPublisher, utils.BalanceChange{
			UserID:      userID,
			Amount:      cashOut,
			Kind:        entities.TransactionKindWin,
			Description: "table cash out",
			RelatedID:   &tableID,
			RelatedType: &relatedType,
		}); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"tableID": tableID,
		"userID":  userID,
		"cashOut": cashOut,
	}).Info("Player left table")

	return nil
}

// CloseTable ends a table's lifetime
func (s *tableService) CloseTable(ctx context.Context, tableID string) error {
	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return fmt.Errorf("failed to get table: %w", err)
	}
	if table == nil {
		return fmt.Errorf("table %s: %w", tableID, entities.ErrTableNotFound)
	}
	if err := s.tableRepo.UpdateStatus(ctx, tableID, entities.TableStatusClosed); err != nil {
		return fmt.Errorf("failed to close table: %w", err)
	}
	return nil
}

package application

import (
	"context"
	"time"

	"sweephouse/domain/entities"
	"sweephouse/domain/interfaces"
	"sweephouse/domain/services"

	log "github.com/sirupsen/logrus"
)

// Operations is the entry point for every ledger and wager operation. Each
// call runs inside its own unit of work: repositories share one database
// transaction and domain events flush only after commit.
type Operations struct {
	uowFactory UnitOfWorkFactory
	oddsCache  interfaces.EventOddsCache
}

// NewOperations creates the operations facade
func NewOperations(uowFactory UnitOfWorkFactory, oddsCache interfaces.EventOddsCache) *Operations {
	return &Operations{
		uowFactory: uowFactory,
		oddsCache:  oddsCache,
	}
}

// withUnitOfWork runs fn inside a transaction, committing on success and
// rolling back on error.
func (o *Operations) withUnitOfWork(ctx context.Context, fn func(uow UnitOfWork) error) error {
	uow := o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit()
}

func (o *Operations) balanceService(uow UnitOfWork) interfaces.BalanceService {
	return services.NewBalanceService(uow.UserRepository(), uow.TransactionRepository(), uow.EventBus())
}

func (o *Operations) tableService(uow UnitOfWork) interfaces.TableService {
	return services.NewTableService(uow.TableRepository(), uow.UserRepository(), uow.TransactionRepository(), uow.EventBus())
}

func (o *Operations) handService(uow UnitOfWork) interfaces.HandService {
	return services.NewHandService(uow.HandRepository(), uow.TableRepository(), uow.UserRepository(), uow.TransactionRepository(), uow.EventBus())
}

func (o *Operations) parlayService(uow UnitOfWork) interfaces.ParlayService {
	return services.NewParlayService(uow.ParlayRepository(), uow.EventRepository(), uow.UserRepository(), uow.TransactionRepository(), o.oddsCache, uow.EventBus())
}

func (o *Operations) eligibilityService(uow UnitOfWork) interfaces.EligibilityService {
	return services.NewEligibilityService(uow.ComplianceRepository())
}

// GetOrCreateUser returns the user, creating them with the configured
// starting balance on first sight
func (o *Operations) GetOrCreateUser(ctx context.Context, userID int64, username string) (*entities.User, error) {
	var user *entities.User
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		user, err = o.balanceService(uow).GetOrCreateUser(ctx, userID, username)
		return err
	})
	return user, err
}

// GetUser returns a user, nil if unknown
func (o *Operations) GetUser(ctx context.Context, userID int64) (*entities.User, error) {
	var user *entities.User
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		user, err = uow.UserRepository().GetByID(ctx, userID)
		return err
	})
	return user, err
}

// Debit removes funds from a user's balance and records the movement
func (o *Operations) Debit(ctx context.Context, userID int64, amount int64, description string) (*entities.Transaction, error) {
	var transaction *entities.Transaction
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		transaction, err = o.balanceService(uow).Debit(ctx, userID, amount, description, nil, nil)
		return err
	})
	return transaction, err
}

// Credit adds funds to a user's balance and records the movement
func (o *Operations) Credit(ctx context.Context, userID int64, amount int64, description string) (*entities.Transaction, error) {
	var transaction *entities.Transaction
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		transaction, err = o.balanceService(uow).Credit(ctx, userID, amount, description, nil, nil)
		return err
	})
	return transaction, err
}

// GetTransactionHistory returns a user's recent ledger entries, newest first
func (o *Operations) GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	var history []*entities.Transaction
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		history, err = o.balanceService(uow).GetTransactionHistory(ctx, userID, limit)
		return err
	})
	return history, err
}

// CreateTable registers a poker table with buy-in bounds derived from the
// big blind
func (o *Operations) CreateTable(ctx context.Context, name string, smallBlind, bigBlind int64, maxPlayers int) (*entities.Table, error) {
	var table *entities.Table
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		table, err = o.tableService(uow).CreateTable(ctx, name, smallBlind, bigBlind, maxPlayers)
		return err
	})
	return table, err
}

// ListOpenTables returns open tables with live seat counts
func (o *Operations) ListOpenTables(ctx context.Context) ([]*entities.Table, error) {
	var tables []*entities.Table
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		tables, err = o.tableService(uow).ListOpenTables(ctx)
		return err
	})
	return tables, err
}

// JoinTable seats a user, debiting the buy-in
func (o *Operations) JoinTable(ctx context.Context, tableID string, userID int64, buyIn int64) (*entities.SeatedPlayer, error) {
	var seat *entities.SeatedPlayer
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		seat, err = o.tableService(uow).JoinTable(ctx, tableID, userID, buyIn)
		return err
	})
	return seat, err
}

// LeaveTable removes a user's seat, crediting the caller-asserted cash-out
func (o *Operations) LeaveTable(ctx context.Context, tableID string, userID int64, cashOut int64) error {
	return o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		return o.tableService(uow).LeaveTable(ctx, tableID, userID, cashOut)
	})
}

// CloseTable closes a table to new players
func (o *Operations) CloseTable(ctx context.Context, tableID string) error {
	return o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		return o.tableService(uow).CloseTable(ctx, tableID)
	})
}

// DealHand opens a hand at a table with the pot seeded by the blinds
func (o *Operations) DealHand(ctx context.Context, tableID string) (*entities.Hand, error) {
	var hand *entities.Hand
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		hand, err = o.handService(uow).DealHand(ctx, tableID)
		return err
	})
	return hand, err
}

// CompleteHand settles a hand exactly once and credits the pot to the winner
func (o *Operations) CompleteHand(ctx context.Context, handID string, winnerID int64, winningHand string) (*entities.Hand, error) {
	var hand *entities.Hand
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		hand, err = o.handService(uow).CompleteHand(ctx, handID, winnerID, winningHand)
		return err
	})
	return hand, err
}

// AddEvent seeds a sports event into the catalog and invalidates the odds
// cache for its sport
func (o *Operations) AddEvent(ctx context.Context, event *entities.SportsEvent) error {
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		return uow.EventRepository().Create(ctx, event)
	})
	if err != nil {
		return err
	}

	if cacheErr := o.oddsCache.Invalidate(ctx, event.Sport); cacheErr != nil {
		log.WithFields(log.Fields{
			"sport": event.Sport,
			"error": cacheErr,
		}).Warn("Failed to invalidate odds cache after event create")
	}

	return nil
}

// ListUpcomingEvents returns scheduled future events, optionally filtered
// by sport
func (o *Operations) ListUpcomingEvents(ctx context.Context, sport string) ([]*entities.SportsEvent, error) {
	var events []*entities.SportsEvent
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		events, err = o.parlayService(uow).ListUpcomingEvents(ctx, sport)
		return err
	})
	return events, err
}

// GetLiveOdds serves the event catalog for a sport through the odds cache
func (o *Operations) GetLiveOdds(ctx context.Context, sport string) ([]*entities.SportsEvent, error) {
	var events []*entities.SportsEvent
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		events, err = o.parlayService(uow).GetLiveOdds(ctx, sport)
		return err
	})
	return events, err
}

// UpdateEventScore records a live score. It never moves an event to
// completed; CompleteEvent is the only path that settles wagers.
func (o *Operations) UpdateEventScore(ctx context.Context, eventID string, homeScore, awayScore int) (*entities.SportsEvent, error) {
	var event *entities.SportsEvent
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		event, err = o.parlayService(uow).UpdateEventScore(ctx, eventID, homeScore, awayScore)
		return err
	})
	return event, err
}

// CompleteEvent records the final score, marks the event completed, and
// resolves every parlay riding on it in the same transaction
func (o *Operations) CompleteEvent(ctx context.Context, eventID string, homeScore, awayScore int) (*entities.SportsEvent, error) {
	var event *entities.SportsEvent
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := o.parlayService(uow)
		var err error
		event, err = svc.CompleteEvent(ctx, eventID, homeScore, awayScore)
		if err != nil {
			return err
		}
		_, err = svc.ResolveParlaysForEvent(ctx, eventID)
		return err
	})
	return event, err
}

// ResolveParlaysForEvent settles unresolved parlays against a completed
// event. Safe to call repeatedly.
func (o *Operations) ResolveParlaysForEvent(ctx context.Context, eventID string) ([]*entities.Parlay, error) {
	var resolved []*entities.Parlay
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		resolved, err = o.parlayService(uow).ResolveParlaysForEvent(ctx, eventID)
		return err
	})
	return resolved, err
}

// CreateParlay accepts a multi-leg wager, debiting the stake atomically with
// the leg inserts
func (o *Operations) CreateParlay(ctx context.Context, userID int64, legs []interfaces.LegSelection, totalWager int64) (*entities.Parlay, error) {
	var parlay *entities.Parlay
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		parlay, err = o.parlayService(uow).CreateParlay(ctx, userID, legs, totalWager)
		return err
	})
	return parlay, err
}

// GetUserParlays returns a user's parlays with legs, newest first
func (o *Operations) GetUserParlays(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error) {
	var parlays []*entities.Parlay
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		parlays, err = o.parlayService(uow).GetUserParlays(ctx, userID, limit)
		return err
	})
	return parlays, err
}

// CheckEligibility evaluates sweepstakes eligibility and writes an audit row
func (o *Operations) CheckEligibility(ctx context.Context, userID int64) (*entities.EligibilityResult, error) {
	var result *entities.EligibilityResult
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		result, err = o.eligibilityService(uow).CheckEligibility(ctx, userID)
		return err
	})
	return result, err
}

// VerifyEligibilityForEntry runs the stricter entry gate; it fails closed
func (o *Operations) VerifyEligibilityForEntry(ctx context.Context, userID int64) (*entities.EligibilityResult, error) {
	var result *entities.EligibilityResult
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		result, err = o.eligibilityService(uow).VerifyEligibilityForEntry(ctx, userID)
		return err
	})
	return result, err
}

// SaveComplianceProfile upserts the identity facts eligibility checks run
// against
func (o *Operations) SaveComplianceProfile(ctx context.Context, profile *entities.ComplianceProfile) error {
	return o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		return uow.ComplianceRepository().SaveProfile(ctx, profile)
	})
}

// WarmUpOddsCache loads the event catalog from persistence into the odds
// cache, one entry per sport plus the all-sports entry
func (o *Operations) WarmUpOddsCache(ctx context.Context, ttl time.Duration) error {
	var all []*entities.SportsEvent
	err := o.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		all, err = uow.EventRepository().ListAll(ctx)
		return err
	})
	if err != nil {
		return err
	}

	bySport := make(map[string][]*entities.SportsEvent)
	for _, event := range all {
		bySport[event.Sport] = append(bySport[event.Sport], event)
	}

	for sport, events := range bySport {
		if err := o.oddsCache.SetSport(ctx, sport, events, ttl); err != nil {
			return err
		}
	}
	if err := o.oddsCache.SetSport(ctx, "", all, ttl); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"events": len(all),
		"sports": len(bySport),
	}).Info("Warmed odds cache from event catalog")

	return nil
}

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

// liveOddsTTL bounds how stale a cached odds read can get.
const liveOddsTTL = 30 * time.Second

type parlayService struct {
	parlayRepo      interfaces.ParlayRepository
	eventRepo       interfaces.EventRepository
	userRepo        interfaces.UserRepository
	transactionRepo interfaces.TransactionRepository
	resolution      *ParlayResolutionService
	oddsCache       interfaces.EventOddsCache
	eventPublisher  interfaces.EventPublisher
}

// NewParlayService creates a new parlay service. oddsCache may be nil;
// live odds reads then go straight to the catalog.
func NewParlayService(parlayRepo interfaces.ParlayRepository, eventRepo interfaces.EventRepository, userRepo interfaces.UserRepository, transactionRepo interfaces.TransactionRepository, oddsCache interfaces.EventOddsCache, eventPublisher interfaces.EventPublisher) interfaces.ParlayService {
	return &parlayService{
		parlayRepo:      parlayRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		resolution:      NewParlayResolutionService(),
		oddsCache:       oddsCache,
		eventPublisher:  eventPublisher,
	}
}

// ListUpcomingEvents returns wagerable events ordered by ascending start time
func (s *parlayService) ListUpcomingEvents(ctx context.Context, sport string) ([]*entities.SportsEvent, error) {
	catalog, err := s.eventRepo.ListUpcoming(ctx, sport, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return catalog, nil
}

// CreateParlay validates the legs, computes the payout, debits the wager
// and persists the parlay with its legs as one atomic unit.
func (s *parlayService) CreateParlay(ctx context.Context, userID int64, legs []interfaces.LegSelection, totalWager int64) (*entities.Parlay, error) {
	if totalWager <= 0 {
		return nil, entities.ErrInvalidWager
	}
	if len(legs) == 0 {
		return nil, entities.ErrInvalidLegs
	}

	parlayID := uuid.New().String()
	parlayLegs := make([]*entities.ParlayLeg, 0, len(legs))
	for _, sel := range legs {
		event, err := s.eventRepo.GetByID(ctx, sel.EventID)
		if err != nil {
			return nil, fmt.Errorf("failed to get event: %w", err)
		}
		if event == nil {
			return nil, fmt.Errorf("event %s: %w", sel.EventID, entities.ErrEventNotFound)
		}
		parlayLegs = append(parlayLegs, &entities.ParlayLeg{
			ID:       uuid.New().String(),
			ParlayID: parlayID,
			EventID:  sel.EventID,
			Pick:     sel.Pick,
			BetType:  sel.BetType,
			Odds:     sel.Odds,
			Result:   entities.LegResultPending,
		})
	}

	parlay := &entities.Parlay{
		ID:              parlayID,
		UserID:          userID,
		Legs:            parlayLegs,
		TotalWager:      totalWager,
		PotentialPayout: entities.CalculatePotentialPayout(totalWager, parlayLegs),
		Status:          entities.ParlayStatusPending,
	}

	relatedType := entities.RelatedTypeParlay
	if _, err := utils.ApplyBalanceChange(ctx, s.userRepo, s.transactionRepo, s.eventPublisher, utils.BalanceChange{
		UserID:      userID,
		Amount:      -totalWager,
		Kind:        entities.TransactionKindBet,
		Description: "parlay bet",
		RelatedID:   &parlayID,
		RelatedType: &relatedType,
	}); err != nil {
		return nil, err
	}

	if err := s.parlayRepo.CreateWithLegs(ctx, parlay); err != nil {
		return nil, fmt.Errorf("failed to create parlay: %w", err)
	}

	log.WithFields(log.Fields{
		"parlayID":        parlayID,
		"userID":          userID,
		"legs":            len(parlayLegs),
		"totalWager":      totalWager,
		"potentialPayout": parlay.PotentialPayout,
	}).Info("Created parlay")

	if err := s.eventPublisher.Publish(events.ParlayPlacedEvent{
		ParlayID:        parlayID,
		UserID:          userID,
		TotalWager:      totalWager,
		PotentialPayout: parlay.PotentialPayout,
		LegCount:        len(parlayLegs),
	}); err != nil {
		log.WithError(err).Error("Failed to publish parlay placed event")
	}

	return parlay, nil
}

// UpdateEventScore stores in-progress scores. Known limitation: this path
// never transitions the event to completed, so it never triggers
// resolution on its own; the result feed calls CompleteEvent for that.
func (s *parlayService) UpdateEventScore(ctx context.Context, eventID string, homeScore, awayScore int) (*entities.SportsEvent, error) {
	return s.recordScore(ctx, eventID, homeScore, awayScore, entities.EventStatusInProgress)
}

// CompleteEvent records the final score and marks the event completed
func (s *parlayService) CompleteEvent(ctx context.Context, eventID string, homeScore, awayScore int) (*entities.SportsEvent, error) {
	return s.recordScore(ctx, eventID, homeScore, awayScore, entities.EventStatusCompleted)
}

func (s *parlayService) recordScore(ctx context.Context, eventID string, homeScore, awayScore int, status entities.EventStatus) (*entities.SportsEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, entities.ErrEventNotFound)
	}

	if err := s.eventRepo.UpdateScore(ctx, eventID, homeScore, awayScore, status); err != nil {
		return nil, fmt.Errorf("failed to update score: %w", err)
	}

	event.HomeScore = &homeScore
	event.AwayScore = &awayScore
	event.Status = status

	if s.oddsCache != nil {
		if err := s.oddsCache.Invalidate(ctx, event.Sport); err != nil {
			log.WithError(err).Warn("Failed to invalidate odds cache")
		}
	}

	log.WithFields(log.Fields{
		"eventID":   eventID,
		"homeScore": homeScore,
		"awayScore": awayScore,
		"status":    status,
	}).Info("Recorded event score")

	return event, nil
}

// ResolveParlaysForEvent settles legs riding on a completed event and pays
// out parlays whose legs have all resolved. No-op unless the event is
// completed. Idempotent: terminal parlays are excluded from the candidate
// query, so re-invocation from any trigger never double-credits.
func (s *parlayService) ResolveParlaysForEvent(ctx context.Context, eventID string) ([]*entities.Parlay, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, entities.ErrEventNotFound)
	}
	if !event.IsCompleted() {
		return nil, nil
	}

	candidates, err := s.parlayRepo.GetUnresolvedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unresolved parlays: %w", err)
	}

	var settled []*entities.Parlay
	for _, parlay := range candidates {
		// Settle this event's legs first; legs on other events keep
		// whatever result they already carry.
		for _, leg := range parlay.Legs {
			if leg.EventID != eventID || leg.IsResolved() {
				continue
			}
			result := s.resolution.DetermineLegResult(leg, event)
			if result == entities.LegResultPending {
				continue
			}
			if err := s.parlayRepo.UpdateLegResult(ctx, leg.ID, result); err != nil {
				return nil, fmt.Errorf("failed to update leg result: %w", err)
			}
			leg.Result = result
		}

		if !parlay.AllLegsResolved() {
			// Partially resolved: mark and leave for the remaining events.
			if parlay.Status == entities.ParlayStatusPending {
				if err := s.parlayRepo.UpdateStatus(ctx, parlay.ID, entities.ParlayStatusPendingResults, nil); err != nil {
					return nil, fmt.Errorf("failed to mark parlay pending results: %w", err)
				}
				parlay.Status = entities.ParlayStatusPendingResults
			}
			continue
		}

		final := s.resolution.FinalStatus(parlay)
		now := time.Now().UTC()
		if err := s.parlayRepo.UpdateStatus(ctx, parlay.ID, final, &now); err != nil {
			return nil, fmt.Errorf("failed to settle parlay: %w", err)
		}
		parlay.Status = final
		parlay.ResolvedAt = &now

		var payout int64
		if final == entities.ParlayStatusWon {
			payout = parlay.PayoutAmount()
			relatedType := entities.RelatedTypeParlay
			parlayID := parlay.ID
			if _, err := utils.ApplyBalanceChange(ctx, s.userRepo, s.transactionRepo, s.eventPublisher, utils.BalanceChange{
				UserID:      parlay.UserID,
				Amount:      payout,
				Kind:        entities.TransactionKindWin,
				Description: fmt.Sprintf("parlay win %s", parlayID),
				RelatedID:   &parlayID,
				RelatedType: &relatedType,
			}); err != nil {
				return nil, err
			}
			if err := s.userRepo.IncrementParlaysWon(ctx, parlay.UserID); err != nil {
				return nil, fmt.Errorf("failed to increment parlays won: %w", err)
			}
		}

		log.WithFields(log.Fields{
			"parlayID": parlay.ID,
			"userID":   parlay.UserID,
			"status":   final,
			"payout":   payout,
		}).Info("Settled parlay")

		if err := s.eventPublisher.Publish(events.ParlayResolvedEvent{
			ParlayID: parlay.ID,
			UserID:   parlay.UserID,
			Status:   final,
			Payout:   payout,
		}); err != nil {
			log.WithError(err).Error("Failed to publish parlay resolved event")
		}

		settled = append(settled, parlay)
	}

	return settled, nil
}

// GetLiveOdds is a pure read of odds and scores for a sport, served from
// the cache when warm
func (s *parlayService) GetLiveOdds(ctx context.Context, sport string) ([]*entities.SportsEvent, error) {
	if s.oddsCache != nil {
		cached, found, err := s.oddsCache.GetSport(ctx, sport)
		if err != nil {
			log.WithError(err).Warn("Odds cache read failed, falling back to catalog")
		} else if found {
			return cached, nil
		}
	}

	catalog, err := s.eventRepo.ListBySport(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for sport %s: %w", sport, err)
	}

	if s.oddsCache != nil {
		if err := s.oddsCache.SetSport(ctx, sport, catalog, liveOddsTTL); err != nil {
			log.WithError(err).Warn("Failed to populate odds cache")
		}
	}

	return catalog, nil
}

// GetUserParlays returns a user's parlays, newest first
func (s *parlayService) GetUserParlays(ctx context.Context, userID int64, limit int) ([]*entities.Parlay, error) {
	parlays, err := s.parlayRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user parlays: %w", err)
	}
	return parlays, nil
}

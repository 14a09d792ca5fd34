package application

import (
	"context"
	"time"

	"sweephouse/domain/entities"

	log "github.com/sirupsen/logrus"
)

// ParlayResolutionWorker periodically sweeps completed events and re-runs
// parlay resolution against them. Resolution is idempotent, so a sweep that
// overlaps an inline resolution settles nothing twice.
type ParlayResolutionWorker struct {
	ops      *Operations
	interval time.Duration
}

// NewParlayResolutionWorker creates a new resolution worker
func NewParlayResolutionWorker(ops *Operations, interval time.Duration) *ParlayResolutionWorker {
	return &ParlayResolutionWorker{
		ops:      ops,
		interval: interval,
	}
}

// Start begins the sweep loop and returns a stop function
func (w *ParlayResolutionWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Infof("Parlay resolution worker started, sweeping every %v", w.interval)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Parlay resolution worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Parlay resolution worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				if err := w.sweep(ctx); err != nil {
					log.Errorf("Error during parlay resolution sweep: %v", err)
				}
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// sweep resolves outstanding parlays for every completed event
func (w *ParlayResolutionWorker) sweep(ctx context.Context) error {
	var completed []*entities.SportsEvent
	err := w.ops.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		all, err := uow.EventRepository().ListAll(ctx)
		if err != nil {
			return err
		}
		for _, event := range all {
			if event.IsCompleted() {
				completed = append(completed, event)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, event := range completed {
		resolved, err := w.ops.ResolveParlaysForEvent(ctx, event.ID)
		if err != nil {
			log.WithFields(log.Fields{
				"eventId": event.ID,
				"error":   err,
			}).Error("Failed to resolve parlays for completed event")
			continue
		}
		if len(resolved) > 0 {
			log.WithFields(log.Fields{
				"eventId":  event.ID,
				"resolved": len(resolved),
			}).Info("Resolution sweep settled parlays")
		}
	}

	return nil
}

package interfaces

import (
	"context"
	"time"

	"sweephouse/domain/entities"
)

// EventOddsCache is a read-through cache over the event catalog, keyed by
// sport. Odds display may serve stale entries; balances never go through
// this layer.
type EventOddsCache interface {
	// GetSport returns the cached events for a sport; found is false on miss
	GetSport(ctx context.Context, sport string) (events []*entities.SportsEvent, found bool, err error)

	// SetSport caches the events for a sport with a TTL
	SetSport(ctx context.Context, sport string, events []*entities.SportsEvent, ttl time.Duration) error

	// Invalidate drops a sport's cache entry after a score or line change
	Invalidate(ctx context.Context, sport string) error
}

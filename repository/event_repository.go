package repository

import (
	"context"
	"fmt"
	"time"

	"sweephouse/database"
	"sweephouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// EventRepository implements the EventRepository interface
type EventRepository struct {
	q Queryable
}

// NewEventRepository creates a new sports event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{q: db.Pool}
}

func newEventRepository(tx Queryable) *EventRepository {
	return &EventRepository{q: tx}
}

// Create persists a catalog event
func (r *EventRepository) Create(ctx context.Context, event *entities.SportsEvent) error {
	query := `
		INSERT INTO sports_events (id, sport, home_team, away_team, start_time, status, spread, over_under, moneyline_home, moneyline_away)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query,
		event.ID,
		event.Sport,
		event.HomeTeam,
		event.AwayTeam,
		event.StartTime,
		event.Status,
		event.Spread,
		event.OverUnder,
		event.MoneylineHome,
		event.MoneylineAway,
	).Scan(&event.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create event %s vs %s: %w", event.HomeTeam, event.AwayTeam, err)
	}

	return nil
}

const eventSelectColumns = `id, sport, home_team, away_team, start_time, status, home_score, away_score, spread, over_under, moneyline_home, moneyline_away, updated_at`

func scanEvents(rows pgx.Rows) ([]*entities.SportsEvent, error) {
	defer rows.Close()

	var events []*entities.SportsEvent
	for rows.Next() {
		var event entities.SportsEvent
		err := rows.Scan(
			&event.ID,
			&event.Sport,
			&event.HomeTeam,
			&event.AwayTeam,
			&event.StartTime,
			&event.Status,
			&event.HomeScore,
			&event.AwayScore,
			&event.Spread,
			&event.OverUnder,
			&event.MoneylineHome,
			&event.MoneylineAway,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, eventID string) (*entities.SportsEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM sports_events WHERE id = $1`, eventSelectColumns)

	var event entities.SportsEvent
	err := r.q.QueryRow(ctx, query, eventID).Scan(
		&event.ID,
		&event.Sport,
		&event.HomeTeam,
		&event.AwayTeam,
		&event.StartTime,
		&event.Status,
		&event.HomeScore,
		&event.AwayScore,
		&event.Spread,
		&event.OverUnder,
		&event.MoneylineHome,
		&event.MoneylineAway,
		&event.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}

	return &event, nil
}

// ListUpcoming returns scheduled events starting after now, ascending start
// time, optionally filtered by sport ("" for all)
func (r *EventRepository) ListUpcoming(ctx context.Context, sport string, now time.Time) ([]*entities.SportsEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sports_events
		WHERE status = $1 AND start_time > $2 AND ($3 = '' OR sport = $3)
		ORDER BY start_time ASC
	`, eventSelectColumns)

	rows, err := r.q.Query(ctx, query, entities.EventStatusScheduled, now, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}

	return scanEvents(rows)
}

// ListBySport returns all events for a sport regardless of status
func (r *EventRepository) ListBySport(ctx context.Context, sport string) ([]*entities.SportsEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sports_events
		WHERE sport = $1
		ORDER BY start_time ASC
	`, eventSelectColumns)

	rows, err := r.q.Query(ctx, query, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for sport %s: %w", sport, err)
	}

	return scanEvents(rows)
}

// ListAll returns the whole catalog
func (r *EventRepository) ListAll(ctx context.Context) ([]*entities.SportsEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM sports_events ORDER BY start_time ASC`, eventSelectColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return scanEvents(rows)
}

// UpdateScore stores scores and moves the event to the given status
func (r *EventRepository) UpdateScore(ctx context.Context, eventID string, homeScore, awayScore int, status entities.EventStatus) error {
	query := `
		UPDATE sports_events
		SET home_score = $1, away_score = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.q.Exec(ctx, query, homeScore, awayScore, status, eventID)
	if err != nil {
		return fmt.Errorf("failed to update score for event %s: %w", eventID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", eventID)
	}

	return nil
}

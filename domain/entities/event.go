package entities

import "time"

// EventStatus is the lifecycle state of a sports event.
type EventStatus string

const (
	EventStatusScheduled  EventStatus = "scheduled"
	EventStatusInProgress EventStatus = "in-progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusPostponed  EventStatus = "postponed"
)

// SportsEvent is one catalog entry with its current lines and score state.
// Odds fields are pointers because a book does not carry every market for
// every event.
type SportsEvent struct {
	ID            string      `db:"id"`
	Sport         string      `db:"sport"`
	HomeTeam      string      `db:"home_team"`
	AwayTeam      string      `db:"away_team"`
	StartTime     time.Time   `db:"start_time"`
	Status        EventStatus `db:"status"`
	HomeScore     *int        `db:"home_score"`
	AwayScore     *int        `db:"away_score"`
	Spread        *float64    `db:"spread"`
	OverUnder     *float64    `db:"over_under"`
	MoneylineHome *int        `db:"moneyline_home"`
	MoneylineAway *int        `db:"moneyline_away"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// IsCompleted returns true once a final score is in
func (e *SportsEvent) IsCompleted() bool {
	return e.Status == EventStatusCompleted
}

// IsUpcoming reports whether the event is still open for wagering
func (e *SportsEvent) IsUpcoming(now time.Time) bool {
	return e.Status == EventStatusScheduled && e.StartTime.After(now)
}

// HasScores returns true when both score fields are populated
func (e *SportsEvent) HasScores() bool {
	return e.HomeScore != nil && e.AwayScore != nil
}

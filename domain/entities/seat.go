package entities

import "time"

// PositionUnderTheGun is the default position assigned on join; real seat
// rotation belongs to the (out of scope) dealing logic.
const PositionUnderTheGun = "under-the-gun"

// SeatedPlayer is one user's seat at a table. Leaving flips IsActive to
// false; the row is retained for lifetime statistics. A user holds at most
// one active seat per table.
type SeatedPlayer struct {
	ID       int64     `db:"id"`
	TableID  string    `db:"table_id"`
	UserID   int64     `db:"user_id"`
	Stack    int64     `db:"stack"`
	Position string    `db:"position"`
	IsActive bool      `db:"is_active"`
	JoinedAt time.Time `db:"joined_at"`
	LeftAt   *time.Time `db:"left_at"`
}

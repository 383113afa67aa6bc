package model

import (
	"time"
)

const (
	ObjectiveStatusActive   = "active"
	ObjectiveStatusArchived = "archived"
)

// Objective is the high-level parent of goals. Its own rollup progress is
// not computed here; goals carry weight/priority for a future aggregation.
type Objective struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

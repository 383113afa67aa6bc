package model

import (
	"database/sql"
	"time"
)

// WeightEntry is a single body-weight measurement in kilograms.
type WeightEntry struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Value      float64   `db:"value"`
	RecordedAt time.Time `db:"recorded_at"`
	CreatedAt  time.Time `db:"created_at"`
}

// ActivityEntry is one exercise session. Frequency goals count these over
// a trailing 7-day window.
type ActivityEntry struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Kind        string    `db:"kind"`
	DurationMin int       `db:"duration_min"`
	PerformedAt time.Time `db:"performed_at"`
	CreatedAt   time.Time `db:"created_at"`
}

// BodyProfile holds the user's declared body targets. TargetWeight is the
// value propagated to weight goals when it changes.
type BodyProfile struct {
	UserID       string          `db:"user_id"`
	HeightCm     sql.NullFloat64 `db:"height_cm"`
	TargetWeight sql.NullFloat64 `db:"target_weight"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

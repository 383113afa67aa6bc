package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is a planned journey with either itemized budget lines or a single
// declared total budget.
type Trip struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	Destination string          `db:"destination"`
	TotalBudget decimal.Decimal `db:"total_budget"`
	StartsOn    time.Time       `db:"starts_on"`
	EndsOn      time.Time       `db:"ends_on"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// TripBudgetItem is one estimated budget line of a trip. The sum of
// estimates is preferred over the trip's declared total.
type TripBudgetItem struct {
	ID        string          `db:"id"`
	TripID    string          `db:"trip_id"`
	UserID    string          `db:"user_id"`
	Name      string          `db:"name"`
	Estimated decimal.Decimal `db:"estimated"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

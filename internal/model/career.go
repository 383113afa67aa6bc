package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoadmapStepStatusPending    = "pending"
	RoadmapStepStatusInProgress = "in_progress"
	RoadmapStepStatusDone       = "done"
)

// CareerProfile holds the user's current position and gross salary, the
// scalar behind salary-increase goals.
type CareerProfile struct {
	UserID      string          `db:"user_id"`
	Title       string          `db:"title"`
	Company     string          `db:"company"`
	GrossSalary decimal.Decimal `db:"gross_salary"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Roadmap is an ordered career development plan made of steps.
type Roadmap struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RoadmapStep is a single step of a roadmap. Progress is a 0-100
// percentage; Status done implies progress 100.
type RoadmapStep struct {
	ID        string    `db:"id"`
	RoadmapID string    `db:"roadmap_id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Position  int       `db:"position"`
	Status    string    `db:"status"`
	Progress  int       `db:"progress"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

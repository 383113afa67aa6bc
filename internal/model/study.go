package model

import (
	"time"
)

const (
	StudyTrackStatusActive    = "active"
	StudyTrackStatusCompleted = "completed"
)

// StudyTrack is a self-reported learning track. Progress is a 0-100
// percentage owned by this module; linked goals propagate it verbatim.
type StudyTrack struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Provider  string    `db:"provider"`
	Progress  int       `db:"progress"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

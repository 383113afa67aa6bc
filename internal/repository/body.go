package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lifedeskhq/lifedesk/internal/model"
)

var (
	ErrNoWeightRecorded  = errors.New("no weight recorded")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrBodyProfileNotSet = errors.New("body profile not set")
)

type BodyRepository interface {
	CreateWeightEntry(entry *model.WeightEntry) error
	DeleteWeightEntry(userID, entryID string) error
	WeightEntries(userID string, limit int) ([]*model.WeightEntry, error)
	LatestWeight(userID string) (float64, error)

	CreateActivity(entry *model.ActivityEntry) error
	DeleteActivity(userID, entryID string) error
	CountActivitiesSince(userID string, since time.Time) (int, error)

	Profile(userID string) (*model.BodyProfile, error)
	UpsertProfile(profile *model.BodyProfile) error
}

type bodyRepository struct {
	db *sqlx.DB
}

func NewBodyRepository(db *sqlx.DB) BodyRepository {
	return &bodyRepository{db: db}
}

func (r *bodyRepository) CreateWeightEntry(entry *model.WeightEntry) error {
	query := `INSERT INTO weight_entries (id, user_id, value, recorded_at, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, entry.ID, entry.UserID, entry.Value, entry.RecordedAt, entry.CreatedAt)
	return err
}

func (r *bodyRepository) DeleteWeightEntry(userID, entryID string) error {
	result, err := r.db.Exec(`DELETE FROM weight_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return err
	}
	return requireRows(result, ErrNoWeightRecorded)
}

func (r *bodyRepository) WeightEntries(userID string, limit int) ([]*model.WeightEntry, error) {
	var entries []*model.WeightEntry
	query := `SELECT * FROM weight_entries WHERE user_id = $1 ORDER BY recorded_at DESC LIMIT $2`

	err := r.db.Select(&entries, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// LatestWeight returns the most recently recorded weight value.
func (r *bodyRepository) LatestWeight(userID string) (float64, error) {
	var value float64
	query := `SELECT value FROM weight_entries WHERE user_id = $1
	          ORDER BY recorded_at DESC, created_at DESC LIMIT 1`

	err := r.db.Get(&value, query, userID)
	if err == sql.ErrNoRows {
		return 0, ErrNoWeightRecorded
	}

	return value, err
}

func (r *bodyRepository) CreateActivity(entry *model.ActivityEntry) error {
	query := `INSERT INTO activity_entries (id, user_id, kind, duration_min, performed_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query, entry.ID, entry.UserID, entry.Kind, entry.DurationMin, entry.PerformedAt, entry.CreatedAt)
	return err
}

func (r *bodyRepository) DeleteActivity(userID, entryID string) error {
	result, err := r.db.Exec(`DELETE FROM activity_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return err
	}
	return requireRows(result, ErrActivityNotFound)
}

func (r *bodyRepository) CountActivitiesSince(userID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM activity_entries WHERE user_id = $1 AND performed_at >= $2`

	err := r.db.QueryRow(query, userID, since).Scan(&count)
	return count, err
}

func (r *bodyRepository) Profile(userID string) (*model.BodyProfile, error) {
	profile := &model.BodyProfile{}
	query := `SELECT * FROM body_profiles WHERE user_id = $1`

	err := r.db.Get(profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrBodyProfileNotSet
	}

	return profile, err
}

func (r *bodyRepository) UpsertProfile(profile *model.BodyProfile) error {
	query := `INSERT INTO body_profiles (user_id, height_cm, target_weight, updated_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id) DO UPDATE
	          SET height_cm = excluded.height_cm, target_weight = excluded.target_weight, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, profile.UserID, profile.HeightCm, profile.TargetWeight, profile.UpdatedAt)
	return err
}

package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lifedeskhq/lifedesk/internal/model"
)

var (
	ErrStudyTrackNotFound = errors.New("study track not found")
)

type StudyRepository interface {
	Create(track *model.StudyTrack) error
	ByID(userID, trackID string) (*model.StudyTrack, error)
	Tracks(userID string) ([]*model.StudyTrack, error)
	UpdateProgress(userID, trackID string, progress int, status string) error
	Delete(userID, trackID string) error
}

type studyRepository struct {
	db *sqlx.DB
}

func NewStudyRepository(db *sqlx.DB) StudyRepository {
	return &studyRepository{db: db}
}

func (r *studyRepository) Create(track *model.StudyTrack) error {
	query := `INSERT INTO study_tracks (id, user_id, name, provider, progress, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		track.ID,
		track.UserID,
		track.Name,
		track.Provider,
		track.Progress,
		track.Status,
		track.CreatedAt,
		track.UpdatedAt,
	)

	return err
}

func (r *studyRepository) ByID(userID, trackID string) (*model.StudyTrack, error) {
	track := &model.StudyTrack{}
	query := `SELECT * FROM study_tracks WHERE id = $1 AND user_id = $2`

	err := r.db.Get(track, query, trackID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrStudyTrackNotFound
	}

	return track, err
}

func (r *studyRepository) Tracks(userID string) ([]*model.StudyTrack, error) {
	var tracks []*model.StudyTrack
	query := `SELECT * FROM study_tracks WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&tracks, query, userID)
	if err != nil {
		return nil, err
	}

	return tracks, nil
}

func (r *studyRepository) UpdateProgress(userID, trackID string, progress int, status string) error {
	query := `UPDATE study_tracks SET progress = $1, status = $2, updated_at = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query, progress, status, time.Now(), trackID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrStudyTrackNotFound)
}

func (r *studyRepository) Delete(userID, trackID string) error {
	result, err := r.db.Exec(`DELETE FROM study_tracks WHERE id = $1 AND user_id = $2`, trackID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrStudyTrackNotFound)
}

package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrCareerProfileNotSet = errors.New("career profile not set")
	ErrRoadmapNotFound     = errors.New("roadmap not found")
	ErrRoadmapStepNotFound = errors.New("roadmap step not found")
)

type CareerRepository interface {
	Profile(userID string) (*model.CareerProfile, error)
	UpsertProfile(profile *model.CareerProfile) error
	UpdateSalary(userID string, salary decimal.Decimal) error

	CreateRoadmap(roadmap *model.Roadmap) error
	RoadmapByID(userID, roadmapID string) (*model.Roadmap, error)
	Roadmaps(userID string) ([]*model.Roadmap, error)
	DeleteRoadmap(userID, roadmapID string) error

	CreateStep(step *model.RoadmapStep) error
	StepByID(userID, stepID string) (*model.RoadmapStep, error)
	Steps(userID, roadmapID string) ([]*model.RoadmapStep, error)
	StepIDs(userID, roadmapID string) ([]string, error)
	UpdateStep(userID, stepID string, status string, progress int) error
	DeleteSteps(userID, roadmapID string) error
}

type careerRepository struct {
	db *sqlx.DB
}

func NewCareerRepository(db *sqlx.DB) CareerRepository {
	return &careerRepository{db: db}
}

func (r *careerRepository) Profile(userID string) (*model.CareerProfile, error) {
	profile := &model.CareerProfile{}
	query := `SELECT * FROM career_profiles WHERE user_id = $1`

	err := r.db.Get(profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCareerProfileNotSet
	}

	return profile, err
}

func (r *careerRepository) UpsertProfile(profile *model.CareerProfile) error {
	query := `INSERT INTO career_profiles (user_id, title, company, gross_salary, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id) DO UPDATE
	          SET title = excluded.title, company = excluded.company,
	              gross_salary = excluded.gross_salary, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, profile.UserID, profile.Title, profile.Company, profile.GrossSalary, profile.UpdatedAt)
	return err
}

func (r *careerRepository) UpdateSalary(userID string, salary decimal.Decimal) error {
	query := `UPDATE career_profiles SET gross_salary = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.Exec(query, salary, time.Now(), userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrCareerProfileNotSet)
}

func (r *careerRepository) CreateRoadmap(roadmap *model.Roadmap) error {
	query := `INSERT INTO roadmaps (id, user_id, name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, roadmap.ID, roadmap.UserID, roadmap.Name, roadmap.CreatedAt, roadmap.UpdatedAt)
	return err
}

func (r *careerRepository) RoadmapByID(userID, roadmapID string) (*model.Roadmap, error) {
	roadmap := &model.Roadmap{}
	query := `SELECT * FROM roadmaps WHERE id = $1 AND user_id = $2`

	err := r.db.Get(roadmap, query, roadmapID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrRoadmapNotFound
	}

	return roadmap, err
}

func (r *careerRepository) Roadmaps(userID string) ([]*model.Roadmap, error) {
	var roadmaps []*model.Roadmap
	query := `SELECT * FROM roadmaps WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&roadmaps, query, userID)
	if err != nil {
		return nil, err
	}

	return roadmaps, nil
}

func (r *careerRepository) DeleteRoadmap(userID, roadmapID string) error {
	result, err := r.db.Exec(`DELETE FROM roadmaps WHERE id = $1 AND user_id = $2`, roadmapID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrRoadmapNotFound)
}

func (r *careerRepository) CreateStep(step *model.RoadmapStep) error {
	query := `INSERT INTO roadmap_steps (id, roadmap_id, user_id, name, position, status, progress, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		step.ID,
		step.RoadmapID,
		step.UserID,
		step.Name,
		step.Position,
		step.Status,
		step.Progress,
		step.CreatedAt,
		step.UpdatedAt,
	)

	return err
}

func (r *careerRepository) StepByID(userID, stepID string) (*model.RoadmapStep, error) {
	step := &model.RoadmapStep{}
	query := `SELECT * FROM roadmap_steps WHERE id = $1 AND user_id = $2`

	err := r.db.Get(step, query, stepID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrRoadmapStepNotFound
	}

	return step, err
}

func (r *careerRepository) Steps(userID, roadmapID string) ([]*model.RoadmapStep, error) {
	var steps []*model.RoadmapStep
	query := `SELECT * FROM roadmap_steps WHERE roadmap_id = $1 AND user_id = $2 ORDER BY position ASC`

	err := r.db.Select(&steps, query, roadmapID, userID)
	if err != nil {
		return nil, err
	}

	return steps, nil
}

func (r *careerRepository) StepIDs(userID, roadmapID string) ([]string, error) {
	var ids []string
	query := `SELECT id FROM roadmap_steps WHERE roadmap_id = $1 AND user_id = $2 ORDER BY position ASC`

	err := r.db.Select(&ids, query, roadmapID, userID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *careerRepository) UpdateStep(userID, stepID string, status string, progress int) error {
	query := `UPDATE roadmap_steps SET status = $1, progress = $2, updated_at = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query, status, progress, time.Now(), stepID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrRoadmapStepNotFound)
}

func (r *careerRepository) DeleteSteps(userID, roadmapID string) error {
	_, err := r.db.Exec(`DELETE FROM roadmap_steps WHERE roadmap_id = $1 AND user_id = $2`, roadmapID, userID)
	return err
}

package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lifedeskhq/lifedesk/internal/model"
)

var (
	ErrObjectiveNotFound = errors.New("objective not found")
)

type ObjectiveRepository interface {
	Create(objective *model.Objective) error
	ByID(userID, objectiveID string) (*model.Objective, error)
	Objectives(userID string) ([]*model.Objective, error)
	Update(objective *model.Objective) error
	Delete(userID, objectiveID string) error
}

type objectiveRepository struct {
	db *sqlx.DB
}

func NewObjectiveRepository(db *sqlx.DB) ObjectiveRepository {
	return &objectiveRepository{db: db}
}

func (r *objectiveRepository) Create(objective *model.Objective) error {
	query := `INSERT INTO objectives (id, user_id, name, description, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		objective.ID,
		objective.UserID,
		objective.Name,
		objective.Description,
		objective.Status,
		objective.CreatedAt,
		objective.UpdatedAt,
	)

	return err
}

func (r *objectiveRepository) ByID(userID, objectiveID string) (*model.Objective, error) {
	objective := &model.Objective{}
	query := `SELECT * FROM objectives WHERE id = $1 AND user_id = $2`

	err := r.db.Get(objective, query, objectiveID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrObjectiveNotFound
	}

	return objective, err
}

func (r *objectiveRepository) Objectives(userID string) ([]*model.Objective, error) {
	var objectives []*model.Objective
	query := `SELECT * FROM objectives WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&objectives, query, userID)
	if err != nil {
		return nil, err
	}

	return objectives, nil
}

func (r *objectiveRepository) Update(objective *model.Objective) error {
	query := `UPDATE objectives SET name = $1, description = $2, status = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(query,
		objective.Name,
		objective.Description,
		objective.Status,
		time.Now(),
		objective.ID,
		objective.UserID,
	)
	if err != nil {
		return err
	}

	return requireRows(result, ErrObjectiveNotFound)
}

func (r *objectiveRepository) Delete(userID, objectiveID string) error {
	result, err := r.db.Exec(`DELETE FROM objectives WHERE id = $1 AND user_id = $2`, objectiveID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrObjectiveNotFound)
}

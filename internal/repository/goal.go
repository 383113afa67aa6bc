package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lifedeskhq/lifedesk/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalFilter is the only predicate shape the sync engine selects goals
// with: always user + active + auto-sync, plus the optional equality
// filters below.
type GoalFilter struct {
	UserID        string
	IndicatorType model.IndicatorType
	TargetModule  model.Module
	LinkedKind    model.LinkedEntityKind
	LinkedID      string
}

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID string) ([]*model.Goal, error)
	ByObjective(userID, objectiveID string) ([]*model.Goal, error)
	Update(goal *model.Goal) error
	Delete(userID, goalID string) error

	// Engine surface. ActiveAutoSync never returns completed or frozen
	// goals; ApplyProgress refuses to touch them even if handed their id.
	ActiveAutoSync(f GoalFilter) ([]*model.Goal, error)
	ApplyProgress(goalID string, current float64, pct int, now time.Time) error
	SetTargetValue(goalID string, target float64, now time.Time) error
	Detach(userID string, kind model.LinkedEntityKind, ids []string, now time.Time) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, objective_id, name, indicator_type, target_module,
	                             target_value, initial_value, current_value, progress, weight, priority,
	                             status, auto_sync, linked_entity_type, linked_entity_id,
	                             completed_at, last_progress_update, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.ObjectiveID,
		goal.Name,
		goal.IndicatorType,
		goal.TargetModule,
		goal.TargetValue,
		goal.InitialValue,
		goal.CurrentValue,
		goal.Progress,
		goal.Weight,
		goal.Priority,
		goal.Status,
		goal.AutoSync,
		goal.LinkedEntityType,
		goal.LinkedEntityID,
		goal.CompletedAt,
		goal.LastProgressAt,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) ByObjective(userID, objectiveID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 AND objective_id = $2 ORDER BY priority DESC, updated_at DESC`

	err := r.db.Select(&goals, query, userID, objectiveID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Update writes the user-editable fields. Engine-owned fields (progress,
// current_value, status, completion timestamps) go through ApplyProgress.
func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET name = $1, objective_id = $2, target_value = $3, initial_value = $4,
	              weight = $5, priority = $6, auto_sync = $7,
	              linked_entity_type = $8, linked_entity_id = $9, updated_at = $10
	          WHERE id = $11 AND user_id = $12`

	result, err := r.db.Exec(query,
		goal.Name,
		goal.ObjectiveID,
		goal.TargetValue,
		goal.InitialValue,
		goal.Weight,
		goal.Priority,
		goal.AutoSync,
		goal.LinkedEntityType,
		goal.LinkedEntityID,
		time.Now(),
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	return requireRows(result, ErrGoalNotFound)
}

func (r *goalRepository) Delete(userID, goalID string) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrGoalNotFound)
}

func (r *goalRepository) ActiveAutoSync(f GoalFilter) ([]*model.Goal, error) {
	query := `SELECT * FROM goals WHERE user_id = $1 AND status = $2 AND auto_sync = true`
	args := []any{f.UserID, model.GoalStatusActive}

	var extra []string
	add := func(column string, value any) {
		args = append(args, value)
		extra = append(extra, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.IndicatorType != "" {
		add("indicator_type", f.IndicatorType)
	}
	if f.TargetModule != "" {
		add("target_module", f.TargetModule)
	}
	if f.LinkedKind != "" {
		add("linked_entity_type", f.LinkedKind)
		if f.LinkedKind.Scoped() {
			add("linked_entity_id", f.LinkedID)
		}
	}

	if len(extra) > 0 {
		query += " AND " + strings.Join(extra, " AND ")
	}

	var goals []*model.Goal
	err := r.db.Select(&goals, query, args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// ApplyProgress persists a recompute result. The WHERE clause repeats the
// active + auto-sync predicate so a goal that completed (or was frozen)
// between select and write is never touched: completion is a one-way door
// for the engine. A progress of 100 flips the goal to completed.
func (r *goalRepository) ApplyProgress(goalID string, current float64, pct int, now time.Time) error {
	query := `UPDATE goals
	          SET current_value = $1,
	              progress = $2,
	              status = CASE WHEN $2 >= 100 THEN $3 ELSE status END,
	              completed_at = CASE WHEN $2 >= 100 THEN $4 ELSE completed_at END,
	              last_progress_update = $4,
	              updated_at = $4
	          WHERE id = $5 AND status = $6 AND auto_sync = true`

	_, err := r.db.Exec(query, current, pct, model.GoalStatusCompleted, now, goalID, model.GoalStatusActive)
	return err
}

// SetTargetValue propagates a changed source target (e.g. a new target
// weight) to a goal, without recomputing progress.
func (r *goalRepository) SetTargetValue(goalID string, target float64, now time.Time) error {
	query := `UPDATE goals SET target_value = $1, updated_at = $2
	          WHERE id = $3 AND status = $4 AND auto_sync = true`

	_, err := r.db.Exec(query, target, now, goalID, model.GoalStatusActive)
	return err
}

// Detach clears the weak reference on every goal pointing at one of the
// deleted entities and freezes the goal (auto_sync off). Progress, current
// value and status are left exactly as they were.
func (r *goalRepository) Detach(userID string, kind model.LinkedEntityKind, ids []string, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	args := []any{now, userID, kind}
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	query := `UPDATE goals
	          SET linked_entity_type = NULL, linked_entity_id = NULL, auto_sync = false, updated_at = $1
	          WHERE user_id = $2 AND linked_entity_type = $3 AND linked_entity_id IN (` +
		strings.Join(placeholders, ", ") + `)`

	_, err := r.db.Exec(query, args...)
	return err
}

// requireRows maps a zero-row update/delete to the given sentinel.
func requireRows(result sql.Result, missing error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return missing
	}
	return nil
}

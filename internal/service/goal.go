package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
)

var (
	ErrInvalidIndicator = errors.New("invalid indicator type")
	ErrInvalidLink      = errors.New("linked entity kind and id must be set together")
)

// NewGoalInput is the user-supplied shape for creating a goal.
type NewGoalInput struct {
	ObjectiveID  string
	Name         string
	Indicator    model.IndicatorType
	TargetModule model.Module
	TargetValue  float64
	InitialValue *float64
	Weight       int
	Priority     int
	Linked       model.LinkedEntity
}

// UpdateGoalInput carries the user-editable fields. Engine-owned fields
// (progress, current value, status) are never writable here.
type UpdateGoalInput struct {
	ObjectiveID  string
	Name         string
	TargetValue  float64
	InitialValue *float64
	Weight       int
	Priority     int
	AutoSync     bool
	Linked       model.LinkedEntity
}

// GoalService is the user-facing CRUD surface for goals. All automatic
// progress mutation goes through SyncService instead.
type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

func (s *GoalService) Create(userID string, in NewGoalInput) (*model.Goal, error) {
	switch in.Indicator {
	case model.IndicatorWeight, model.IndicatorFrequency, model.IndicatorPercentage, model.IndicatorMonetary:
	default:
		return nil, ErrInvalidIndicator
	}
	if in.Linked.Kind.Scoped() && in.Linked.ID == "" {
		return nil, ErrInvalidLink
	}

	now := time.Now()
	goal := &model.Goal{
		ID:            uuid.New().String(),
		UserID:        userID,
		ObjectiveID:   in.ObjectiveID,
		Name:          in.Name,
		IndicatorType: in.Indicator,
		TargetModule:  in.TargetModule,
		TargetValue:   in.TargetValue,
		Weight:        in.Weight,
		Priority:      in.Priority,
		Status:        model.GoalStatusActive,
		AutoSync:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.InitialValue != nil {
		goal.InitialValue = sql.NullFloat64{Float64: *in.InitialValue, Valid: true}
	}
	goal.SetLinked(in.Linked)

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

func (s *GoalService) ByObjective(userID, objectiveID string) ([]*model.Goal, error) {
	return s.repo.ByObjective(userID, objectiveID)
}

func (s *GoalService) Update(userID, goalID string, in UpdateGoalInput) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if in.Linked.Kind.Scoped() && in.Linked.ID == "" {
		return nil, ErrInvalidLink
	}

	goal.ObjectiveID = in.ObjectiveID
	goal.Name = in.Name
	goal.TargetValue = in.TargetValue
	goal.InitialValue = sql.NullFloat64{}
	if in.InitialValue != nil {
		goal.InitialValue = sql.NullFloat64{Float64: *in.InitialValue, Valid: true}
	}
	goal.Weight = in.Weight
	goal.Priority = in.Priority
	goal.AutoSync = in.AutoSync
	goal.SetLinked(in.Linked)

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.repo.Delete(userID, goalID)
}

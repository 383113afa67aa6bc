package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
)

// ObjectiveService is plain CRUD for the high-level parents of goals.
// Objective-level progress rollup is intentionally not computed; goals
// carry weight/priority for a future aggregation.
type ObjectiveService struct {
	repo repository.ObjectiveRepository
}

func NewObjectiveService(repo repository.ObjectiveRepository) *ObjectiveService {
	return &ObjectiveService{repo: repo}
}

func (s *ObjectiveService) Create(userID, name, description string) (*model.Objective, error) {
	now := time.Now()
	objective := &model.Objective{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Status:      model.ObjectiveStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(objective)
	if err != nil {
		return nil, fmt.Errorf("failed to create objective: %w", err)
	}

	return objective, nil
}

func (s *ObjectiveService) ByID(userID, objectiveID string) (*model.Objective, error) {
	return s.repo.ByID(userID, objectiveID)
}

func (s *ObjectiveService) Objectives(userID string) ([]*model.Objective, error) {
	return s.repo.Objectives(userID)
}

func (s *ObjectiveService) Update(userID, objectiveID, name, description, status string) error {
	objective, err := s.repo.ByID(userID, objectiveID)
	if err != nil {
		return err
	}

	objective.Name = name
	objective.Description = description
	objective.Status = status

	return s.repo.Update(objective)
}

func (s *ObjectiveService) Delete(userID, objectiveID string) error {
	_, err := s.repo.ByID(userID, objectiveID)
	if err != nil {
		return err
	}

	return s.repo.Delete(userID, objectiveID)
}

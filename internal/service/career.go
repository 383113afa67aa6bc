package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/shopspring/decimal"
)

// CareerService owns the career profile (salary) and development
// roadmaps. Completing a roadmap cascades 100% to every goal linked to
// any of its steps; deleting a roadmap detaches those goals.
type CareerService struct {
	repo repository.CareerRepository
	sync *SyncService
}

func NewCareerService(repo repository.CareerRepository, sync *SyncService) *CareerService {
	return &CareerService{repo: repo, sync: sync}
}

func (s *CareerService) Profile(userID string) (*model.CareerProfile, error) {
	return s.repo.Profile(userID)
}

func (s *CareerService) SaveProfile(userID, title, company string, grossSalary decimal.Decimal) error {
	profile := &model.CareerProfile{
		UserID:      userID,
		Title:       title,
		Company:     company,
		GrossSalary: grossSalary,
		UpdatedAt:   time.Now(),
	}

	err := s.repo.UpsertProfile(profile)
	if err != nil {
		return fmt.Errorf("failed to save career profile: %w", err)
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventSalaryChanged, UserID: userID})
}

func (s *CareerService) UpdateSalary(userID string, grossSalary decimal.Decimal) error {
	err := s.repo.UpdateSalary(userID, grossSalary)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventSalaryChanged, UserID: userID})
}

func (s *CareerService) CreateRoadmap(userID, name string, stepNames []string) (*model.Roadmap, []*model.RoadmapStep, error) {
	now := time.Now()
	roadmap := &model.Roadmap{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.CreateRoadmap(roadmap)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create roadmap: %w", err)
	}

	steps := make([]*model.RoadmapStep, 0, len(stepNames))
	for i, stepName := range stepNames {
		step := &model.RoadmapStep{
			ID:        uuid.New().String(),
			RoadmapID: roadmap.ID,
			UserID:    userID,
			Name:      stepName,
			Position:  i + 1,
			Status:    model.RoadmapStepStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = s.repo.CreateStep(step)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create roadmap step %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}

	return roadmap, steps, nil
}

func (s *CareerService) Roadmaps(userID string) ([]*model.Roadmap, error) {
	return s.repo.Roadmaps(userID)
}

func (s *CareerService) Steps(userID, roadmapID string) ([]*model.RoadmapStep, error) {
	if _, err := s.repo.RoadmapByID(userID, roadmapID); err != nil {
		return nil, err
	}
	return s.repo.Steps(userID, roadmapID)
}

// UpdateStep writes a step's status and progress, then propagates to any
// goals linked to that step.
func (s *CareerService) UpdateStep(userID, stepID, status string, pct int) error {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if status == model.RoadmapStepStatusDone {
		pct = 100
	}

	err := s.repo.UpdateStep(userID, stepID, status, pct)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventRoadmapStepChanged, UserID: userID, EntityID: stepID})
}

// CompleteRoadmap marks every step done and pushes 100% to all goals
// linked to any of the roadmap's steps in one call.
func (s *CareerService) CompleteRoadmap(userID, roadmapID string) error {
	stepIDs, err := s.repo.StepIDs(userID, roadmapID)
	if err != nil {
		return err
	}

	for _, stepID := range stepIDs {
		err = s.repo.UpdateStep(userID, stepID, model.RoadmapStepStatusDone, 100)
		if err != nil {
			return err
		}
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventRoadmapCompleted, UserID: userID, EntityID: roadmapID})
}

// DeleteRoadmap removes the roadmap and its steps, then detaches every
// goal that referenced any of those steps.
func (s *CareerService) DeleteRoadmap(userID, roadmapID string) error {
	stepIDs, err := s.repo.StepIDs(userID, roadmapID)
	if err != nil {
		return err
	}

	err = s.repo.DeleteSteps(userID, roadmapID)
	if err != nil {
		return err
	}

	err = s.repo.DeleteRoadmap(userID, roadmapID)
	if err != nil {
		return err
	}

	return s.sync.Unlink(userID, model.LinkedRoadmapStep, stepIDs)
}

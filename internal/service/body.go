package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
)

// BodyService owns weight measurements, activity records and the body
// profile. Each committed write triggers exactly one recompute.
type BodyService struct {
	repo repository.BodyRepository
	sync *SyncService
}

func NewBodyService(repo repository.BodyRepository, sync *SyncService) *BodyService {
	return &BodyService{repo: repo, sync: sync}
}

func (s *BodyService) LogWeight(userID string, value float64, recordedAt time.Time) (*model.WeightEntry, error) {
	entry := &model.WeightEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Value:      value,
		RecordedAt: recordedAt,
		CreatedAt:  time.Now(),
	}

	err := s.repo.CreateWeightEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to log weight: %w", err)
	}

	err = s.sync.Reconcile(SourceEvent{Kind: EventWeightLogged, UserID: userID})
	if err != nil {
		return entry, err
	}

	return entry, nil
}

func (s *BodyService) DeleteWeight(userID, entryID string) error {
	err := s.repo.DeleteWeightEntry(userID, entryID)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventWeightLogged, UserID: userID})
}

func (s *BodyService) WeightEntries(userID string, limit int) ([]*model.WeightEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.WeightEntries(userID, limit)
}

func (s *BodyService) SetTargetWeight(userID string, target float64) error {
	profile, err := s.repo.Profile(userID)
	if err == repository.ErrBodyProfileNotSet {
		profile = &model.BodyProfile{UserID: userID}
	} else if err != nil {
		return err
	}

	profile.TargetWeight = sql.NullFloat64{Float64: target, Valid: true}
	profile.UpdatedAt = time.Now()

	err = s.repo.UpsertProfile(profile)
	if err != nil {
		return fmt.Errorf("failed to save body profile: %w", err)
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventWeightTargetChanged, UserID: userID})
}

func (s *BodyService) LogActivity(userID, kind string, durationMin int, performedAt time.Time) (*model.ActivityEntry, error) {
	entry := &model.ActivityEntry{
		ID:          uuid.New().String(),
		UserID:      userID,
		Kind:        kind,
		DurationMin: durationMin,
		PerformedAt: performedAt,
		CreatedAt:   time.Now(),
	}

	err := s.repo.CreateActivity(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}

	err = s.sync.Reconcile(SourceEvent{Kind: EventActivityLogged, UserID: userID})
	if err != nil {
		return entry, err
	}

	return entry, nil
}

func (s *BodyService) DeleteActivity(userID, entryID string) error {
	err := s.repo.DeleteActivity(userID, entryID)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventActivityLogged, UserID: userID})
}

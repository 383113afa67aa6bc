package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
)

// StudyService owns learning tracks. Track progress is self-reported
// 0-100; linked goals propagate it verbatim. Deleting a track detaches
// its goals instead of deleting them.
type StudyService struct {
	repo repository.StudyRepository
	sync *SyncService
}

func NewStudyService(repo repository.StudyRepository, sync *SyncService) *StudyService {
	return &StudyService{repo: repo, sync: sync}
}

func (s *StudyService) Create(userID, name, provider string) (*model.StudyTrack, error) {
	now := time.Now()
	track := &model.StudyTrack{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Provider:  provider,
		Progress:  0,
		Status:    model.StudyTrackStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(track)
	if err != nil {
		return nil, fmt.Errorf("failed to create study track: %w", err)
	}

	return track, nil
}

func (s *StudyService) ByID(userID, trackID string) (*model.StudyTrack, error) {
	return s.repo.ByID(userID, trackID)
}

func (s *StudyService) Tracks(userID string) ([]*model.StudyTrack, error) {
	return s.repo.Tracks(userID)
}

func (s *StudyService) UpdateProgress(userID, trackID string, pct int) error {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	status := model.StudyTrackStatusActive
	if pct == 100 {
		status = model.StudyTrackStatusCompleted
	}

	err := s.repo.UpdateProgress(userID, trackID, pct, status)
	if err != nil {
		return err
	}

	kind := EventStudyTrackProgress
	if pct == 100 {
		kind = EventStudyTrackCompleted
	}

	return s.sync.Reconcile(SourceEvent{Kind: kind, UserID: userID, EntityID: trackID})
}

func (s *StudyService) Complete(userID, trackID string) error {
	return s.UpdateProgress(userID, trackID, 100)
}

// Delete removes the track and detaches any goals that watched it; their
// last synced progress stays frozen.
func (s *StudyService) Delete(userID, trackID string) error {
	err := s.repo.Delete(userID, trackID)
	if err != nil {
		return err
	}

	return s.sync.Unlink(userID, model.LinkedStudyTrack, []string{trackID})
}

package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/shopspring/decimal"
)

// TravelService owns trips and their budget lines. Budget mutations
// recompute only the goals linked to that trip; deleting a trip detaches
// them.
type TravelService struct {
	repo repository.TravelRepository
	sync *SyncService
}

func NewTravelService(repo repository.TravelRepository, sync *SyncService) *TravelService {
	return &TravelService{repo: repo, sync: sync}
}

func (s *TravelService) CreateTrip(userID, name, destination string, totalBudget decimal.Decimal, startsOn, endsOn time.Time) (*model.Trip, error) {
	now := time.Now()
	trip := &model.Trip{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Destination: destination,
		TotalBudget: totalBudget,
		StartsOn:    startsOn,
		EndsOn:      endsOn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.CreateTrip(trip)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	return trip, nil
}

func (s *TravelService) Trips(userID string) ([]*model.Trip, error) {
	return s.repo.Trips(userID)
}

func (s *TravelService) TripByID(userID, tripID string) (*model.Trip, error) {
	return s.repo.TripByID(userID, tripID)
}

func (s *TravelService) UpdateTrip(userID, tripID, name, destination string, totalBudget decimal.Decimal, startsOn, endsOn time.Time) error {
	trip, err := s.repo.TripByID(userID, tripID)
	if err != nil {
		return err
	}

	trip.Name = name
	trip.Destination = destination
	trip.TotalBudget = totalBudget
	trip.StartsOn = startsOn
	trip.EndsOn = endsOn

	err = s.repo.UpdateTrip(trip)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventTripBudgetChanged, UserID: userID, EntityID: tripID})
}

func (s *TravelService) AddBudgetItem(userID, tripID, name string, estimated decimal.Decimal) (*model.TripBudgetItem, error) {
	if _, err := s.repo.TripByID(userID, tripID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.TripBudgetItem{
		ID:        uuid.New().String(),
		TripID:    tripID,
		UserID:    userID,
		Name:      name,
		Estimated: estimated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.CreateBudgetItem(item)
	if err != nil {
		return nil, fmt.Errorf("failed to add budget item: %w", err)
	}

	err = s.sync.Reconcile(SourceEvent{Kind: EventTripBudgetChanged, UserID: userID, EntityID: tripID})
	if err != nil {
		return item, err
	}

	return item, nil
}

func (s *TravelService) BudgetItems(userID, tripID string) ([]*model.TripBudgetItem, error) {
	return s.repo.BudgetItems(userID, tripID)
}

func (s *TravelService) UpdateBudgetItem(userID, itemID, tripID, name string, estimated decimal.Decimal) error {
	item := &model.TripBudgetItem{
		ID:        itemID,
		UserID:    userID,
		Name:      name,
		Estimated: estimated,
	}

	err := s.repo.UpdateBudgetItem(item)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventTripBudgetChanged, UserID: userID, EntityID: tripID})
}

func (s *TravelService) DeleteBudgetItem(userID, itemID, tripID string) error {
	err := s.repo.DeleteBudgetItem(userID, itemID)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventTripBudgetChanged, UserID: userID, EntityID: tripID})
}

// DeleteTrip removes the trip and its budget lines, then detaches the
// goals that watched this trip. Their progress freezes at its last synced
// value.
func (s *TravelService) DeleteTrip(userID, tripID string) error {
	err := s.repo.DeleteBudgetItems(userID, tripID)
	if err != nil {
		return err
	}

	err = s.repo.DeleteTrip(userID, tripID)
	if err != nil {
		return err
	}

	return s.sync.Unlink(userID, model.LinkedTripBudget, []string{tripID})
}

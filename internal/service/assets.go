package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/shopspring/decimal"
)

// AssetsService owns portfolio positions and dividends. Any position
// mutation re-prices the single per-user portfolio goal; any dividend
// mutation re-averages the trailing-12-month passive income.
type AssetsService struct {
	repo repository.AssetsRepository
	sync *SyncService
}

func NewAssetsService(repo repository.AssetsRepository, sync *SyncService) *AssetsService {
	return &AssetsService{repo: repo, sync: sync}
}

func (s *AssetsService) AddPosition(userID, symbol string, quantity, avgCost decimal.Decimal) (*model.Position, error) {
	now := time.Now()
	position := &model.Position{
		ID:        uuid.New().String(),
		UserID:    userID,
		Symbol:    symbol,
		Quantity:  quantity,
		AvgCost:   avgCost,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.CreatePosition(position)
	if err != nil {
		return nil, fmt.Errorf("failed to add position: %w", err)
	}

	err = s.sync.Reconcile(SourceEvent{Kind: EventPortfolioChanged, UserID: userID})
	if err != nil {
		return position, err
	}

	return position, nil
}

func (s *AssetsService) Positions(userID string) ([]*model.Position, error) {
	return s.repo.Positions(userID)
}

// Reprice records a fresh quote for one position and revalues the
// portfolio.
func (s *AssetsService) Reprice(userID, positionID string, price decimal.Decimal) error {
	err := s.repo.UpdatePrice(userID, positionID, price)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventPortfolioChanged, UserID: userID})
}

func (s *AssetsService) UpdatePosition(userID, positionID string, quantity, avgCost decimal.Decimal) error {
	position, err := s.repo.PositionByID(userID, positionID)
	if err != nil {
		return err
	}

	position.Quantity = quantity
	position.AvgCost = avgCost

	err = s.repo.UpdatePosition(position)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventPortfolioChanged, UserID: userID})
}

func (s *AssetsService) DeletePosition(userID, positionID string) error {
	err := s.repo.DeletePosition(userID, positionID)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventPortfolioChanged, UserID: userID})
}

func (s *AssetsService) RecordDividend(userID, positionID string, amount decimal.Decimal, receivedAt time.Time) (*model.Dividend, error) {
	dividend := &model.Dividend{
		ID:         uuid.New().String(),
		UserID:     userID,
		Amount:     amount,
		ReceivedAt: receivedAt,
		CreatedAt:  time.Now(),
	}
	if positionID != "" {
		dividend.PositionID = sql.NullString{String: positionID, Valid: true}
	}

	err := s.repo.CreateDividend(dividend)
	if err != nil {
		return nil, fmt.Errorf("failed to record dividend: %w", err)
	}

	err = s.sync.Reconcile(SourceEvent{Kind: EventDividendChanged, UserID: userID})
	if err != nil {
		return dividend, err
	}

	return dividend, nil
}

func (s *AssetsService) UpdateDividend(userID, dividendID string, amount decimal.Decimal, receivedAt time.Time) error {
	dividend := &model.Dividend{
		ID:         dividendID,
		UserID:     userID,
		Amount:     amount,
		ReceivedAt: receivedAt,
	}

	err := s.repo.UpdateDividend(dividend)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventDividendChanged, UserID: userID})
}

func (s *AssetsService) DeleteDividend(userID, dividendID string) error {
	err := s.repo.DeleteDividend(userID, dividendID)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventDividendChanged, UserID: userID})
}

package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/shopspring/decimal"
)

// FinanceService owns categories and transactions. Expense writes
// recompute the goals watching that category's current-month spend;
// deleting a category detaches its goals.
type FinanceService struct {
	repo repository.FinanceRepository
	sync *SyncService
}

func NewFinanceService(repo repository.FinanceRepository, sync *SyncService) *FinanceService {
	return &FinanceService{repo: repo, sync: sync}
}

func (s *FinanceService) CreateCategory(userID, name, kind string) (*model.Category, error) {
	now := time.Now()
	category := &model.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.CreateCategory(category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *FinanceService) Categories(userID string) ([]*model.Category, error) {
	return s.repo.Categories(userID)
}

// DeleteCategory removes the category and detaches the goals that watched
// its spend. Transactions keep their category id as a historical label.
func (s *FinanceService) DeleteCategory(userID, categoryID string) error {
	err := s.repo.DeleteCategory(userID, categoryID)
	if err != nil {
		return err
	}

	return s.sync.Unlink(userID, model.LinkedFinanceCategory, []string{categoryID})
}

func (s *FinanceService) AddTransaction(userID, categoryID, txType, description string, amount decimal.Decimal, occurredAt time.Time) (*model.Transaction, error) {
	if _, err := s.repo.CategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	tx := &model.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		OccurredAt:  occurredAt,
		CreatedAt:   time.Now(),
	}

	err := s.repo.CreateTransaction(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to add transaction: %w", err)
	}

	err = s.sync.Reconcile(SourceEvent{Kind: EventCategorySpendChanged, UserID: userID, EntityID: categoryID})
	if err != nil {
		return tx, err
	}

	return tx, nil
}

func (s *FinanceService) UpdateTransaction(userID, txID, categoryID, txType, description string, amount decimal.Decimal, occurredAt time.Time) error {
	existing, err := s.repo.TransactionByID(userID, txID)
	if err != nil {
		return err
	}

	tx := &model.Transaction{
		ID:          txID,
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		OccurredAt:  occurredAt,
	}

	err = s.repo.UpdateTransaction(tx)
	if err != nil {
		return err
	}

	// A move between categories changes both aggregates.
	err = s.sync.Reconcile(SourceEvent{Kind: EventCategorySpendChanged, UserID: userID, EntityID: categoryID})
	if err != nil {
		return err
	}
	if existing.CategoryID != categoryID {
		return s.sync.Reconcile(SourceEvent{Kind: EventCategorySpendChanged, UserID: userID, EntityID: existing.CategoryID})
	}
	return nil
}

func (s *FinanceService) DeleteTransaction(userID, txID string) error {
	tx, err := s.repo.TransactionByID(userID, txID)
	if err != nil {
		return err
	}

	err = s.repo.DeleteTransaction(userID, txID)
	if err != nil {
		return err
	}

	return s.sync.Reconcile(SourceEvent{Kind: EventCategorySpendChanged, UserID: userID, EntityID: tx.CategoryID})
}

package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

type FinanceRepository interface {
	CreateCategory(category *model.Category) error
	CategoryByID(userID, categoryID string) (*model.Category, error)
	Categories(userID string) ([]*model.Category, error)
	DeleteCategory(userID, categoryID string) error

	CreateTransaction(tx *model.Transaction) error
	TransactionByID(userID, txID string) (*model.Transaction, error)
	UpdateTransaction(tx *model.Transaction) error
	DeleteTransaction(userID, txID string) error
	SumCategoryExpenses(userID, categoryID string, from, to time.Time) (decimal.Decimal, error)
}

type financeRepository struct {
	db *sqlx.DB
}

func NewFinanceRepository(db *sqlx.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) CreateCategory(category *model.Category) error {
	query := `INSERT INTO categories (id, user_id, name, kind, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		category.ID,
		category.UserID,
		category.Name,
		category.Kind,
		category.CreatedAt,
		category.UpdatedAt,
	)

	return err
}

func (r *financeRepository) CategoryByID(userID, categoryID string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE id = $1 AND user_id = $2`

	err := r.db.Get(category, query, categoryID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}

	return category, err
}

func (r *financeRepository) Categories(userID string) ([]*model.Category, error) {
	var categories []*model.Category
	query := `SELECT * FROM categories WHERE user_id = $1 ORDER BY name ASC`

	err := r.db.Select(&categories, query, userID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *financeRepository) DeleteCategory(userID, categoryID string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrCategoryNotFound)
}

func (r *financeRepository) CreateTransaction(tx *model.Transaction) error {
	query := `INSERT INTO transactions (id, user_id, category_id, type, amount, description, occurred_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		tx.ID,
		tx.UserID,
		tx.CategoryID,
		tx.Type,
		tx.Amount,
		tx.Description,
		tx.OccurredAt,
		tx.CreatedAt,
	)

	return err
}

func (r *financeRepository) TransactionByID(userID, txID string) (*model.Transaction, error) {
	tx := &model.Transaction{}
	query := `SELECT * FROM transactions WHERE id = $1 AND user_id = $2`

	err := r.db.Get(tx, query, txID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}

	return tx, err
}

func (r *financeRepository) UpdateTransaction(tx *model.Transaction) error {
	query := `UPDATE transactions SET category_id = $1, type = $2, amount = $3, description = $4, occurred_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(query,
		tx.CategoryID,
		tx.Type,
		tx.Amount,
		tx.Description,
		tx.OccurredAt,
		tx.ID,
		tx.UserID,
	)
	if err != nil {
		return err
	}

	return requireRows(result, ErrTransactionNotFound)
}

func (r *financeRepository) DeleteTransaction(userID, txID string) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, txID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrTransactionNotFound)
}

// SumCategoryExpenses totals expense transactions of one category in
// [from, to), summed in decimal.
func (r *financeRepository) SumCategoryExpenses(userID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	query := `SELECT amount FROM transactions
	          WHERE user_id = $1 AND category_id = $2 AND type = $3
	            AND occurred_at >= $4 AND occurred_at < $5`

	err := r.db.Select(&amounts, query, userID, categoryID, model.TransactionTypeExpense, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.Sum(decimal.Zero, amounts...), nil
}

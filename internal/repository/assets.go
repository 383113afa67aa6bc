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
	ErrPositionNotFound = errors.New("position not found")
	ErrDividendNotFound = errors.New("dividend not found")
)

type AssetsRepository interface {
	CreatePosition(position *model.Position) error
	PositionByID(userID, positionID string) (*model.Position, error)
	Positions(userID string) ([]*model.Position, error)
	UpdatePosition(position *model.Position) error
	UpdatePrice(userID, positionID string, price decimal.Decimal) error
	DeletePosition(userID, positionID string) error

	CreateDividend(dividend *model.Dividend) error
	UpdateDividend(dividend *model.Dividend) error
	DeleteDividend(userID, dividendID string) error
	SumDividendsSince(userID string, since time.Time) (decimal.Decimal, error)
}

type assetsRepository struct {
	db *sqlx.DB
}

func NewAssetsRepository(db *sqlx.DB) AssetsRepository {
	return &assetsRepository{db: db}
}

func (r *assetsRepository) CreatePosition(position *model.Position) error {
	query := `INSERT INTO positions (id, user_id, symbol, quantity, avg_cost, last_price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		position.ID,
		position.UserID,
		position.Symbol,
		position.Quantity,
		position.AvgCost,
		position.LastPrice,
		position.CreatedAt,
		position.UpdatedAt,
	)

	return err
}

func (r *assetsRepository) PositionByID(userID, positionID string) (*model.Position, error) {
	position := &model.Position{}
	query := `SELECT * FROM positions WHERE id = $1 AND user_id = $2`

	err := r.db.Get(position, query, positionID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrPositionNotFound
	}

	return position, err
}

func (r *assetsRepository) Positions(userID string) ([]*model.Position, error) {
	var positions []*model.Position
	query := `SELECT * FROM positions WHERE user_id = $1 ORDER BY symbol ASC`

	err := r.db.Select(&positions, query, userID)
	if err != nil {
		return nil, err
	}

	return positions, nil
}

func (r *assetsRepository) UpdatePosition(position *model.Position) error {
	query := `UPDATE positions SET symbol = $1, quantity = $2, avg_cost = $3, last_price = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(query,
		position.Symbol,
		position.Quantity,
		position.AvgCost,
		position.LastPrice,
		time.Now(),
		position.ID,
		position.UserID,
	)
	if err != nil {
		return err
	}

	return requireRows(result, ErrPositionNotFound)
}

func (r *assetsRepository) UpdatePrice(userID, positionID string, price decimal.Decimal) error {
	query := `UPDATE positions SET last_price = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, decimal.NullDecimal{Decimal: price, Valid: true}, time.Now(), positionID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrPositionNotFound)
}

func (r *assetsRepository) DeletePosition(userID, positionID string) error {
	result, err := r.db.Exec(`DELETE FROM positions WHERE id = $1 AND user_id = $2`, positionID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrPositionNotFound)
}

func (r *assetsRepository) CreateDividend(dividend *model.Dividend) error {
	query := `INSERT INTO dividends (id, user_id, position_id, amount, received_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		dividend.ID,
		dividend.UserID,
		dividend.PositionID,
		dividend.Amount,
		dividend.ReceivedAt,
		dividend.CreatedAt,
	)

	return err
}

func (r *assetsRepository) UpdateDividend(dividend *model.Dividend) error {
	query := `UPDATE dividends SET amount = $1, received_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, dividend.Amount, dividend.ReceivedAt, dividend.ID, dividend.UserID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrDividendNotFound)
}

func (r *assetsRepository) DeleteDividend(userID, dividendID string) error {
	result, err := r.db.Exec(`DELETE FROM dividends WHERE id = $1 AND user_id = $2`, dividendID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrDividendNotFound)
}

// SumDividendsSince totals received distributions in decimal. Rows are
// summed in Go so amounts stored as exact decimals never pass through
// float arithmetic.
func (r *assetsRepository) SumDividendsSince(userID string, since time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	query := `SELECT amount FROM dividends WHERE user_id = $1 AND received_at >= $2`

	err := r.db.Select(&amounts, query, userID, since)
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.Sum(decimal.Zero, amounts...), nil
}

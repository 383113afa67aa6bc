package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Position is a held asset. Valuation uses LastPrice when a quote is
// known and falls back to AvgCost otherwise.
type Position struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	Symbol    string          `db:"symbol"`
	Quantity  decimal.Decimal `db:"quantity"`
	AvgCost   decimal.Decimal `db:"avg_cost"`
	LastPrice decimal.NullDecimal `db:"last_price"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// MarketValue is quantity x (last price if known, else average cost).
func (p *Position) MarketValue() decimal.Decimal {
	price := p.AvgCost
	if p.LastPrice.Valid {
		price = p.LastPrice.Decimal
	}
	return p.Quantity.Mul(price)
}

// Dividend is a received cash distribution. Passive-income goals average
// these over a trailing 12 months.
type Dividend struct {
	ID         string          `db:"id"`
	UserID     string          `db:"user_id"`
	PositionID sql.NullString  `db:"position_id"`
	Amount     decimal.Decimal `db:"amount"`
	ReceivedAt time.Time       `db:"received_at"`
	CreatedAt  time.Time       `db:"created_at"`
}

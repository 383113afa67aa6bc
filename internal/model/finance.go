package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Category groups transactions. Spend goals watch the expense sum of one
// category in the current calendar month.
type Category struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Kind      string    `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Transaction is a single money movement.
type Transaction struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	CategoryID  string          `db:"category_id"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	OccurredAt  time.Time       `db:"occurred_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

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
	ErrTripNotFound           = errors.New("trip not found")
	ErrTripBudgetItemNotFound = errors.New("trip budget item not found")
)

type TravelRepository interface {
	CreateTrip(trip *model.Trip) error
	TripByID(userID, tripID string) (*model.Trip, error)
	Trips(userID string) ([]*model.Trip, error)
	UpdateTrip(trip *model.Trip) error
	DeleteTrip(userID, tripID string) error

	CreateBudgetItem(item *model.TripBudgetItem) error
	BudgetItems(userID, tripID string) ([]*model.TripBudgetItem, error)
	UpdateBudgetItem(item *model.TripBudgetItem) error
	DeleteBudgetItem(userID, itemID string) error
	DeleteBudgetItems(userID, tripID string) error
	SumEstimates(userID, tripID string) (decimal.Decimal, error)
}

type travelRepository struct {
	db *sqlx.DB
}

func NewTravelRepository(db *sqlx.DB) TravelRepository {
	return &travelRepository{db: db}
}

func (r *travelRepository) CreateTrip(trip *model.Trip) error {
	query := `INSERT INTO trips (id, user_id, name, destination, total_budget, starts_on, ends_on, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		trip.ID,
		trip.UserID,
		trip.Name,
		trip.Destination,
		trip.TotalBudget,
		trip.StartsOn,
		trip.EndsOn,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	return err
}

func (r *travelRepository) TripByID(userID, tripID string) (*model.Trip, error) {
	trip := &model.Trip{}
	query := `SELECT * FROM trips WHERE id = $1 AND user_id = $2`

	err := r.db.Get(trip, query, tripID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTripNotFound
	}

	return trip, err
}

func (r *travelRepository) Trips(userID string) ([]*model.Trip, error) {
	var trips []*model.Trip
	query := `SELECT * FROM trips WHERE user_id = $1 ORDER BY starts_on DESC`

	err := r.db.Select(&trips, query, userID)
	if err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *travelRepository) UpdateTrip(trip *model.Trip) error {
	query := `UPDATE trips SET name = $1, destination = $2, total_budget = $3, starts_on = $4, ends_on = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := r.db.Exec(query,
		trip.Name,
		trip.Destination,
		trip.TotalBudget,
		trip.StartsOn,
		trip.EndsOn,
		time.Now(),
		trip.ID,
		trip.UserID,
	)
	if err != nil {
		return err
	}

	return requireRows(result, ErrTripNotFound)
}

func (r *travelRepository) DeleteTrip(userID, tripID string) error {
	result, err := r.db.Exec(`DELETE FROM trips WHERE id = $1 AND user_id = $2`, tripID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrTripNotFound)
}

func (r *travelRepository) CreateBudgetItem(item *model.TripBudgetItem) error {
	query := `INSERT INTO trip_budget_items (id, trip_id, user_id, name, estimated, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		item.ID,
		item.TripID,
		item.UserID,
		item.Name,
		item.Estimated,
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

func (r *travelRepository) BudgetItems(userID, tripID string) ([]*model.TripBudgetItem, error) {
	var items []*model.TripBudgetItem
	query := `SELECT * FROM trip_budget_items WHERE trip_id = $1 AND user_id = $2 ORDER BY created_at ASC`

	err := r.db.Select(&items, query, tripID, userID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *travelRepository) UpdateBudgetItem(item *model.TripBudgetItem) error {
	query := `UPDATE trip_budget_items SET name = $1, estimated = $2, updated_at = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query, item.Name, item.Estimated, time.Now(), item.ID, item.UserID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrTripBudgetItemNotFound)
}

func (r *travelRepository) DeleteBudgetItem(userID, itemID string) error {
	result, err := r.db.Exec(`DELETE FROM trip_budget_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return err
	}

	return requireRows(result, ErrTripBudgetItemNotFound)
}

func (r *travelRepository) DeleteBudgetItems(userID, tripID string) error {
	_, err := r.db.Exec(`DELETE FROM trip_budget_items WHERE trip_id = $1 AND user_id = $2`, tripID, userID)
	return err
}

// SumEstimates totals a trip's budget lines in decimal, summed in Go.
func (r *travelRepository) SumEstimates(userID, tripID string) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	query := `SELECT estimated FROM trip_budget_items WHERE trip_id = $1 AND user_id = $2`

	err := r.db.Select(&amounts, query, tripID, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.Sum(decimal.Zero, amounts...), nil
}

package handler

import (
	"net/http"
	"time"

	"github.com/lifedeskhq/lifedesk/internal/ctxkeys"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/lifedeskhq/lifedesk/internal/webutil"
	"github.com/shopspring/decimal"
)

type TravelHandler struct {
	travelService *service.TravelService
}

func NewTravelHandler(travelService *service.TravelService) *TravelHandler {
	return &TravelHandler{travelService: travelService}
}

type tripRequest struct {
	Name        string          `json:"name"`
	Destination string          `json:"destination"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	StartsOn    time.Time       `json:"starts_on"`
	EndsOn      time.Time       `json:"ends_on"`
}

func (h *TravelHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req tripRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		webutil.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	trip, err := h.travelService.CreateTrip(userID, req.Name, req.Destination, req.TotalBudget, req.StartsOn, req.EndsOn)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, trip)
}

func (h *TravelHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	trips, err := h.travelService.Trips(userID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, trips)
}

func (h *TravelHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	trip, err := h.travelService.TripByID(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, trip)
}

func (h *TravelHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req tripRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.travelService.UpdateTrip(userID, r.PathValue("id"), req.Name, req.Destination, req.TotalBudget, req.StartsOn, req.EndsOn)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TravelHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.travelService.DeleteTrip(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type budgetItemRequest struct {
	Name      string          `json:"name"`
	Estimated decimal.Decimal `json:"estimated"`
}

func (h *TravelHandler) AddBudgetItem(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req budgetItemRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		webutil.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	item, err := h.travelService.AddBudgetItem(userID, r.PathValue("id"), req.Name, req.Estimated)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, item)
}

func (h *TravelHandler) ListBudgetItems(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	items, err := h.travelService.BudgetItems(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, items)
}

func (h *TravelHandler) UpdateBudgetItem(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req budgetItemRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.travelService.UpdateBudgetItem(userID, r.PathValue("itemID"), r.PathValue("id"), req.Name, req.Estimated)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TravelHandler) DeleteBudgetItem(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.travelService.DeleteBudgetItem(userID, r.PathValue("itemID"), r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"time"

	"github.com/lifedeskhq/lifedesk/internal/ctxkeys"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/lifedeskhq/lifedesk/internal/webutil"
	"github.com/shopspring/decimal"
)

type AssetsHandler struct {
	assetsService *service.AssetsService
}

func NewAssetsHandler(assetsService *service.AssetsService) *AssetsHandler {
	return &AssetsHandler{assetsService: assetsService}
}

type positionRequest struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	AvgCost  decimal.Decimal `json:"avg_cost"`
}

func (h *AssetsHandler) AddPosition(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req positionRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" {
		webutil.Error(w, http.StatusBadRequest, "symbol is required")
		return
	}

	position, err := h.assetsService.AddPosition(userID, req.Symbol, req.Quantity, req.AvgCost)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, position)
}

func (h *AssetsHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	positions, err := h.assetsService.Positions(userID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, positions)
}

type priceRequest struct {
	Price decimal.Decimal `json:"price"`
}

func (h *AssetsHandler) Reprice(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req priceRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.assetsService.Reprice(userID, r.PathValue("id"), req.Price)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AssetsHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req positionRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.assetsService.UpdatePosition(userID, r.PathValue("id"), req.Quantity, req.AvgCost)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AssetsHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.assetsService.DeletePosition(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type dividendRequest struct {
	PositionID string          `json:"position_id"`
	Amount     decimal.Decimal `json:"amount"`
	ReceivedAt time.Time       `json:"received_at"`
}

func (h *AssetsHandler) RecordDividend(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req dividendRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ReceivedAt.IsZero() {
		req.ReceivedAt = time.Now()
	}

	dividend, err := h.assetsService.RecordDividend(userID, req.PositionID, req.Amount, req.ReceivedAt)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, dividend)
}

func (h *AssetsHandler) UpdateDividend(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req dividendRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ReceivedAt.IsZero() {
		req.ReceivedAt = time.Now()
	}

	err := h.assetsService.UpdateDividend(userID, r.PathValue("id"), req.Amount, req.ReceivedAt)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AssetsHandler) DeleteDividend(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.assetsService.DeleteDividend(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

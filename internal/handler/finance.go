package handler

import (
	"net/http"
	"time"

	"github.com/lifedeskhq/lifedesk/internal/ctxkeys"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/lifedeskhq/lifedesk/internal/webutil"
	"github.com/shopspring/decimal"
)

type FinanceHandler struct {
	financeService *service.FinanceService
}

func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

type categoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (h *FinanceHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req categoryRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		webutil.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	category, err := h.financeService.CreateCategory(userID, req.Name, req.Kind)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, category)
}

func (h *FinanceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	categories, err := h.financeService.Categories(userID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, categories)
}

func (h *FinanceHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.financeService.DeleteCategory(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type transactionRequest struct {
	CategoryID  string          `json:"category_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func (h *FinanceHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req transactionRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CategoryID == "" {
		webutil.Error(w, http.StatusBadRequest, "category_id is required")
		return
	}
	if req.OccurredAt.IsZero() {
		req.OccurredAt = time.Now()
	}

	tx, err := h.financeService.AddTransaction(userID, req.CategoryID, req.Type, req.Description, req.Amount, req.OccurredAt)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, tx)
}

func (h *FinanceHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req transactionRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OccurredAt.IsZero() {
		req.OccurredAt = time.Now()
	}

	err := h.financeService.UpdateTransaction(userID, r.PathValue("id"), req.CategoryID, req.Type, req.Description, req.Amount, req.OccurredAt)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FinanceHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.financeService.DeleteTransaction(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

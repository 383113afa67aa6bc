package handler

import (
	"net/http"
	"time"

	"github.com/lifedeskhq/lifedesk/internal/ctxkeys"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/lifedeskhq/lifedesk/internal/webutil"
)

type BodyHandler struct {
	bodyService *service.BodyService
}

func NewBodyHandler(bodyService *service.BodyService) *BodyHandler {
	return &BodyHandler{bodyService: bodyService}
}

type weightRequest struct {
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h *BodyHandler) LogWeight(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req weightRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value <= 0 {
		webutil.Error(w, http.StatusBadRequest, "value must be positive")
		return
	}
	if req.RecordedAt.IsZero() {
		req.RecordedAt = time.Now()
	}

	entry, err := h.bodyService.LogWeight(userID, req.Value, req.RecordedAt)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, entry)
}

func (h *BodyHandler) ListWeights(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	entries, err := h.bodyService.WeightEntries(userID, 0)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, entries)
}

func (h *BodyHandler) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.bodyService.DeleteWeight(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type targetWeightRequest struct {
	TargetWeight float64 `json:"target_weight"`
}

func (h *BodyHandler) SetTargetWeight(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req targetWeightRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TargetWeight <= 0 {
		webutil.Error(w, http.StatusBadRequest, "target_weight must be positive")
		return
	}

	err := h.bodyService.SetTargetWeight(userID, req.TargetWeight)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type activityRequest struct {
	Kind        string    `json:"kind"`
	DurationMin int       `json:"duration_min"`
	PerformedAt time.Time `json:"performed_at"`
}

func (h *BodyHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req activityRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Kind == "" {
		webutil.Error(w, http.StatusBadRequest, "kind is required")
		return
	}
	if req.PerformedAt.IsZero() {
		req.PerformedAt = time.Now()
	}

	entry, err := h.bodyService.LogActivity(userID, req.Kind, req.DurationMin, req.PerformedAt)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, entry)
}

func (h *BodyHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.bodyService.DeleteActivity(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/lifedeskhq/lifedesk/internal/ctxkeys"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/lifedeskhq/lifedesk/internal/webutil"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type goalRequest struct {
	ObjectiveID      string   `json:"objective_id"`
	Name             string   `json:"name"`
	IndicatorType    string   `json:"indicator_type"`
	TargetModule     string   `json:"target_module"`
	TargetValue      float64  `json:"target_value"`
	InitialValue     *float64 `json:"initial_value"`
	Weight           int      `json:"weight"`
	Priority         int      `json:"priority"`
	AutoSync         *bool    `json:"auto_sync"`
	LinkedEntityType string   `json:"linked_entity_type"`
	LinkedEntityID   string   `json:"linked_entity_id"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req goalRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		webutil.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	goal, err := h.goalService.Create(userID, service.NewGoalInput{
		ObjectiveID:  req.ObjectiveID,
		Name:         req.Name,
		Indicator:    model.IndicatorType(req.IndicatorType),
		TargetModule: model.Module(req.TargetModule),
		TargetValue:  req.TargetValue,
		InitialValue: req.InitialValue,
		Weight:       req.Weight,
		Priority:     req.Priority,
		Linked: model.LinkedEntity{
			Kind: model.LinkedEntityKind(req.LinkedEntityType),
			ID:   req.LinkedEntityID,
		},
	})
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(userID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goal, err := h.goalService.ByID(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req goalRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	autoSync := true
	if req.AutoSync != nil {
		autoSync = *req.AutoSync
	}

	goal, err := h.goalService.Update(userID, r.PathValue("id"), service.UpdateGoalInput{
		ObjectiveID:  req.ObjectiveID,
		Name:         req.Name,
		TargetValue:  req.TargetValue,
		InitialValue: req.InitialValue,
		Weight:       req.Weight,
		Priority:     req.Priority,
		AutoSync:     autoSync,
		Linked: model.LinkedEntity{
			Kind: model.LinkedEntityKind(req.LinkedEntityType),
			ID:   req.LinkedEntityID,
		},
	})
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.goalService.Delete(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

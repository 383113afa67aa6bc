package handler

import (
	"net/http"

	"github.com/lifedeskhq/lifedesk/internal/ctxkeys"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/lifedeskhq/lifedesk/internal/webutil"
)

type ObjectiveHandler struct {
	objectiveService *service.ObjectiveService
	goalService      *service.GoalService
}

func NewObjectiveHandler(objectiveService *service.ObjectiveService, goalService *service.GoalService) *ObjectiveHandler {
	return &ObjectiveHandler{objectiveService: objectiveService, goalService: goalService}
}

type objectiveRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *ObjectiveHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req objectiveRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		webutil.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	objective, err := h.objectiveService.Create(userID, req.Name, req.Description)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, objective)
}

func (h *ObjectiveHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	objectives, err := h.objectiveService.Objectives(userID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, objectives)
}

// Goals lists the goals under one objective. The objective-level progress
// rollup is left to the client until an aggregation formula is specified.
func (h *ObjectiveHandler) Goals(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	if _, err := h.objectiveService.ByID(userID, r.PathValue("id")); err != nil {
		webutil.HandleError(w, err)
		return
	}

	goals, err := h.goalService.ByObjective(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, goals)
}

func (h *ObjectiveHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req objectiveRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		req.Status = model.ObjectiveStatusActive
	}

	err := h.objectiveService.Update(userID, r.PathValue("id"), req.Name, req.Description, req.Status)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ObjectiveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.objectiveService.Delete(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

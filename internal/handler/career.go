package handler

import (
	"net/http"

	"github.com/lifedeskhq/lifedesk/internal/ctxkeys"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/lifedeskhq/lifedesk/internal/webutil"
	"github.com/shopspring/decimal"
)

type CareerHandler struct {
	careerService *service.CareerService
}

func NewCareerHandler(careerService *service.CareerService) *CareerHandler {
	return &CareerHandler{careerService: careerService}
}

func (h *CareerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	profile, err := h.careerService.Profile(userID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, profile)
}

type careerProfileRequest struct {
	Title       string          `json:"title"`
	Company     string          `json:"company"`
	GrossSalary decimal.Decimal `json:"gross_salary"`
}

func (h *CareerHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req careerProfileRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.careerService.SaveProfile(userID, req.Title, req.Company, req.GrossSalary)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type salaryRequest struct {
	GrossSalary decimal.Decimal `json:"gross_salary"`
}

func (h *CareerHandler) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req salaryRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.careerService.UpdateSalary(userID, req.GrossSalary)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type roadmapRequest struct {
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
}

func (h *CareerHandler) CreateRoadmap(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req roadmapRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		webutil.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	roadmap, steps, err := h.careerService.CreateRoadmap(userID, req.Name, req.Steps)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, map[string]any{
		"roadmap": roadmap,
		"steps":   steps,
	})
}

func (h *CareerHandler) ListRoadmaps(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	roadmaps, err := h.careerService.Roadmaps(userID)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, roadmaps)
}

func (h *CareerHandler) ListSteps(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	steps, err := h.careerService.Steps(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	webutil.JSON(w, http.StatusOK, steps)
}

type stepRequest struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

func (h *CareerHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req stepRequest
	if err := webutil.Decode(r, &req); err != nil {
		webutil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.careerService.UpdateStep(userID, r.PathValue("id"), req.Status, req.Progress)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CareerHandler) CompleteRoadmap(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.careerService.CompleteRoadmap(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CareerHandler) DeleteRoadmap(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.careerService.DeleteRoadmap(userID, r.PathValue("id"))
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

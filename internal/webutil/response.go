package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/lifedeskhq/lifedesk/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Error writes a JSON error with an explicit status code.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, errorResponse{Error: message})
}

// HandleError maps service/repository errors to HTTP status codes.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidIndicator),
		errors.Is(err, service.ErrInvalidLink):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		repository.ErrGoalNotFound,
		repository.ErrObjectiveNotFound,
		repository.ErrNoWeightRecorded,
		repository.ErrActivityNotFound,
		repository.ErrBodyProfileNotSet,
		repository.ErrStudyTrackNotFound,
		repository.ErrCareerProfileNotSet,
		repository.ErrRoadmapNotFound,
		repository.ErrRoadmapStepNotFound,
		repository.ErrPositionNotFound,
		repository.ErrDividendNotFound,
		repository.ErrTripNotFound,
		repository.ErrTripBudgetItemNotFound,
		repository.ErrCategoryNotFound,
		repository.ErrTransactionNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Decode reads a JSON request body into dst.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

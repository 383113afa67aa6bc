package routes

import (
	"net/http"

	"github.com/lifedeskhq/lifedesk/internal/app"
	"github.com/lifedeskhq/lifedesk/internal/handler"
	"github.com/lifedeskhq/lifedesk/internal/middleware"
	"github.com/lifedeskhq/lifedesk/internal/webutil"
	"github.com/rs/cors"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	goal := handler.NewGoalHandler(app.GoalService)
	objective := handler.NewObjectiveHandler(app.ObjectiveService, app.GoalService)
	body := handler.NewBodyHandler(app.BodyService)
	study := handler.NewStudyHandler(app.StudyService)
	career := handler.NewCareerHandler(app.CareerService)
	assets := handler.NewAssetsHandler(app.AssetsService)
	travel := handler.NewTravelHandler(app.TravelService)
	finance := handler.NewFinanceHandler(app.FinanceService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		webutil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Goals
	mux.HandleFunc("POST /api/goals", middleware.RequireUser(goal.Create))
	mux.HandleFunc("GET /api/goals", middleware.RequireUser(goal.List))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireUser(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireUser(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireUser(goal.Delete))

	// Objectives
	mux.HandleFunc("POST /api/objectives", middleware.RequireUser(objective.Create))
	mux.HandleFunc("GET /api/objectives", middleware.RequireUser(objective.List))
	mux.HandleFunc("GET /api/objectives/{id}/goals", middleware.RequireUser(objective.Goals))
	mux.HandleFunc("PUT /api/objectives/{id}", middleware.RequireUser(objective.Update))
	mux.HandleFunc("DELETE /api/objectives/{id}", middleware.RequireUser(objective.Delete))

	// Body
	mux.HandleFunc("POST /api/body/weights", middleware.RequireUser(body.LogWeight))
	mux.HandleFunc("GET /api/body/weights", middleware.RequireUser(body.ListWeights))
	mux.HandleFunc("DELETE /api/body/weights/{id}", middleware.RequireUser(body.DeleteWeight))
	mux.HandleFunc("PUT /api/body/target-weight", middleware.RequireUser(body.SetTargetWeight))
	mux.HandleFunc("POST /api/body/activities", middleware.RequireUser(body.LogActivity))
	mux.HandleFunc("DELETE /api/body/activities/{id}", middleware.RequireUser(body.DeleteActivity))

	// Study
	mux.HandleFunc("POST /api/study/tracks", middleware.RequireUser(study.Create))
	mux.HandleFunc("GET /api/study/tracks", middleware.RequireUser(study.List))
	mux.HandleFunc("PATCH /api/study/tracks/{id}/progress", middleware.RequireUser(study.UpdateProgress))
	mux.HandleFunc("POST /api/study/tracks/{id}/complete", middleware.RequireUser(study.Complete))
	mux.HandleFunc("DELETE /api/study/tracks/{id}", middleware.RequireUser(study.Delete))

	// Career
	mux.HandleFunc("GET /api/career/profile", middleware.RequireUser(career.Profile))
	mux.HandleFunc("PUT /api/career/profile", middleware.RequireUser(career.SaveProfile))
	mux.HandleFunc("PATCH /api/career/salary", middleware.RequireUser(career.UpdateSalary))
	mux.HandleFunc("POST /api/career/roadmaps", middleware.RequireUser(career.CreateRoadmap))
	mux.HandleFunc("GET /api/career/roadmaps", middleware.RequireUser(career.ListRoadmaps))
	mux.HandleFunc("GET /api/career/roadmaps/{id}/steps", middleware.RequireUser(career.ListSteps))
	mux.HandleFunc("POST /api/career/roadmaps/{id}/complete", middleware.RequireUser(career.CompleteRoadmap))
	mux.HandleFunc("DELETE /api/career/roadmaps/{id}", middleware.RequireUser(career.DeleteRoadmap))
	mux.HandleFunc("PATCH /api/career/steps/{id}", middleware.RequireUser(career.UpdateStep))

	// Assets
	mux.HandleFunc("POST /api/assets/positions", middleware.RequireUser(assets.AddPosition))
	mux.HandleFunc("GET /api/assets/positions", middleware.RequireUser(assets.ListPositions))
	mux.HandleFunc("PATCH /api/assets/positions/{id}/price", middleware.RequireUser(assets.Reprice))
	mux.HandleFunc("PUT /api/assets/positions/{id}", middleware.RequireUser(assets.UpdatePosition))
	mux.HandleFunc("DELETE /api/assets/positions/{id}", middleware.RequireUser(assets.DeletePosition))
	mux.HandleFunc("POST /api/assets/dividends", middleware.RequireUser(assets.RecordDividend))
	mux.HandleFunc("PUT /api/assets/dividends/{id}", middleware.RequireUser(assets.UpdateDividend))
	mux.HandleFunc("DELETE /api/assets/dividends/{id}", middleware.RequireUser(assets.DeleteDividend))

	// Travel
	mux.HandleFunc("POST /api/travel/trips", middleware.RequireUser(travel.CreateTrip))
	mux.HandleFunc("GET /api/travel/trips", middleware.RequireUser(travel.ListTrips))
	mux.HandleFunc("GET /api/travel/trips/{id}", middleware.RequireUser(travel.GetTrip))
	mux.HandleFunc("PUT /api/travel/trips/{id}", middleware.RequireUser(travel.UpdateTrip))
	mux.HandleFunc("DELETE /api/travel/trips/{id}", middleware.RequireUser(travel.DeleteTrip))
	mux.HandleFunc("POST /api/travel/trips/{id}/budget-items", middleware.RequireUser(travel.AddBudgetItem))
	mux.HandleFunc("GET /api/travel/trips/{id}/budget-items", middleware.RequireUser(travel.ListBudgetItems))
	mux.HandleFunc("PUT /api/travel/trips/{id}/budget-items/{itemID}", middleware.RequireUser(travel.UpdateBudgetItem))
	mux.HandleFunc("DELETE /api/travel/trips/{id}/budget-items/{itemID}", middleware.RequireUser(travel.DeleteBudgetItem))

	// Finance
	mux.HandleFunc("POST /api/finance/categories", middleware.RequireUser(finance.CreateCategory))
	mux.HandleFunc("GET /api/finance/categories", middleware.RequireUser(finance.ListCategories))
	mux.HandleFunc("DELETE /api/finance/categories/{id}", middleware.RequireUser(finance.DeleteCategory))
	mux.HandleFunc("POST /api/finance/transactions", middleware.RequireUser(finance.AddTransaction))
	mux.HandleFunc("PUT /api/finance/transactions/{id}", middleware.RequireUser(finance.UpdateTransaction))
	mux.HandleFunc("DELETE /api/finance/transactions/{id}", middleware.RequireUser(finance.DeleteTransaction))

	c := cors.New(cors.Options{
		AllowedOrigins: app.Cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	})

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		c.Handler,
	)
}

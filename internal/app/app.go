package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lifedeskhq/lifedesk/internal/config"
	"github.com/lifedeskhq/lifedesk/internal/db"
	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/lifedeskhq/lifedesk/internal/service"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	SyncService      *service.SyncService
	GoalService      *service.GoalService
	ObjectiveService *service.ObjectiveService
	BodyService      *service.BodyService
	StudyService     *service.StudyService
	CareerService    *service.CareerService
	AssetsService    *service.AssetsService
	TravelService    *service.TravelService
	FinanceService   *service.FinanceService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	objectiveRepository := repository.NewObjectiveRepository(database)
	bodyRepository := repository.NewBodyRepository(database)
	studyRepository := repository.NewStudyRepository(database)
	careerRepository := repository.NewCareerRepository(database)
	assetsRepository := repository.NewAssetsRepository(database)
	travelRepository := repository.NewTravelRepository(database)
	financeRepository := repository.NewFinanceRepository(database)

	// The sync engine comes first; every source-module service reports its
	// writes to it.
	syncService := service.NewSyncService(
		goalRepository,
		bodyRepository,
		studyRepository,
		careerRepository,
		assetsRepository,
		travelRepository,
		financeRepository,
		cfg.FrequencyWindow,
	)

	return &App{
		Cfg:              cfg,
		DB:               database,
		SyncService:      syncService,
		GoalService:      service.NewGoalService(goalRepository),
		ObjectiveService: service.NewObjectiveService(objectiveRepository),
		BodyService:      service.NewBodyService(bodyRepository, syncService),
		StudyService:     service.NewStudyService(studyRepository, syncService),
		CareerService:    service.NewCareerService(careerRepository, syncService),
		AssetsService:    service.NewAssetsService(assetsRepository, syncService),
		TravelService:    service.NewTravelService(travelRepository, syncService),
		FinanceService:   service.NewFinanceService(financeRepository, syncService),
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

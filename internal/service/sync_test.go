package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lifedeskhq/lifedesk/internal/db"
	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "user-1"

type env struct {
	sync    *service.SyncService
	goals   *service.GoalService
	body    *service.BodyService
	study   *service.StudyService
	career  *service.CareerService
	assets  *service.AssetsService
	travel  *service.TravelService
	finance *service.FinanceService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "lifedesk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	goalRepo := repository.NewGoalRepository(database)
	bodyRepo := repository.NewBodyRepository(database)
	studyRepo := repository.NewStudyRepository(database)
	careerRepo := repository.NewCareerRepository(database)
	assetsRepo := repository.NewAssetsRepository(database)
	travelRepo := repository.NewTravelRepository(database)
	financeRepo := repository.NewFinanceRepository(database)

	sync := service.NewSyncService(goalRepo, bodyRepo, studyRepo, careerRepo, assetsRepo, travelRepo, financeRepo, 0)

	return &env{
		sync:    sync,
		goals:   service.NewGoalService(goalRepo),
		body:    service.NewBodyService(bodyRepo, sync),
		study:   service.NewStudyService(studyRepo, sync),
		career:  service.NewCareerService(careerRepo, sync),
		assets:  service.NewAssetsService(assetsRepo, sync),
		travel:  service.NewTravelService(travelRepo, sync),
		finance: service.NewFinanceService(financeRepo, sync),
	}
}

func (e *env) goal(t *testing.T, goalID string) *model.Goal {
	t.Helper()
	goal, err := e.goals.ByID(testUser, goalID)
	require.NoError(t, err)
	return goal
}

func (e *env) createGoal(t *testing.T, in service.NewGoalInput) *model.Goal {
	t.Helper()
	goal, err := e.goals.Create(testUser, in)
	require.NoError(t, err)
	return goal
}

func ptr(v float64) *float64 { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSyncWeightDirectional(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "lose weight",
		Indicator:    model.IndicatorWeight,
		TargetModule: model.ModuleBody,
		TargetValue:  80,
		InitialValue: ptr(100),
	})

	_, err := e.body.LogWeight(testUser, 90, time.Now())
	require.NoError(t, err)

	got := e.goal(t, goal.ID)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, 90.0, got.CurrentValue)
	assert.Equal(t, model.GoalStatusActive, got.Status)
	assert.True(t, got.LastProgressAt.Valid)

	// Re-logging the same value is a no-op on the outcome.
	_, err = e.body.LogWeight(testUser, 90, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 50, e.goal(t, goal.ID).Progress)
}

func TestSyncWeightGaining(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "bulk",
		Indicator:    model.IndicatorWeight,
		TargetModule: model.ModuleBody,
		TargetValue:  80,
		InitialValue: ptr(60),
	})

	_, err := e.body.LogWeight(testUser, 70, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 50, e.goal(t, goal.ID).Progress)
}

func TestSyncWeightUsesLatestEntry(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "lose weight",
		Indicator:    model.IndicatorWeight,
		TargetModule: model.ModuleBody,
		TargetValue:  80,
		InitialValue: ptr(100),
	})

	_, err := e.body.LogWeight(testUser, 95, time.Now().AddDate(0, 0, -3))
	require.NoError(t, err)
	_, err = e.body.LogWeight(testUser, 85, time.Now())
	require.NoError(t, err)

	got := e.goal(t, goal.ID)
	assert.Equal(t, 85.0, got.CurrentValue)
	assert.Equal(t, 75, got.Progress)
}

func TestSyncWeightTargetDualEffect(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "lose weight",
		Indicator:    model.IndicatorWeight,
		TargetModule: model.ModuleBody,
		TargetValue:  85,
		InitialValue: ptr(100),
	})

	_, err := e.body.LogWeight(testUser, 90, time.Now())
	require.NoError(t, err)

	require.NoError(t, e.body.SetTargetWeight(testUser, 80))

	got := e.goal(t, goal.ID)
	assert.Equal(t, 80.0, got.TargetValue)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, 90.0, got.CurrentValue)
}

func TestSyncExerciseFrequency(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "train 5x a week",
		Indicator:    model.IndicatorFrequency,
		TargetModule: model.ModuleBody,
		TargetValue:  5,
	})

	// One stale entry outside the trailing window.
	_, err := e.body.LogActivity(testUser, "run", 30, time.Now().AddDate(0, 0, -10))
	require.NoError(t, err)

	for range 3 {
		_, err = e.body.LogActivity(testUser, "run", 30, time.Now())
		require.NoError(t, err)
	}

	assert.Equal(t, 60, e.goal(t, goal.ID).Progress)
}

func TestSyncStudyTrackProgress(t *testing.T) {
	e := newEnv(t)

	track, err := e.study.Create(testUser, "go course", "udemy")
	require.NoError(t, err)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "finish go course",
		Indicator:    model.IndicatorPercentage,
		TargetModule: model.ModuleStudy,
		TargetValue:  100,
		Linked:       model.LinkedEntity{Kind: model.LinkedStudyTrack, ID: track.ID},
	})

	require.NoError(t, e.study.UpdateProgress(testUser, track.ID, 40))
	assert.Equal(t, 40, e.goal(t, goal.ID).Progress)

	require.NoError(t, e.study.Complete(testUser, track.ID))

	got := e.goal(t, goal.ID)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, model.GoalStatusCompleted, got.Status)
	assert.True(t, got.CompletedAt.Valid)
}

func TestStudyTrackDeleteDetachesGoal(t *testing.T) {
	e := newEnv(t)

	track, err := e.study.Create(testUser, "go course", "udemy")
	require.NoError(t, err)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "finish go course",
		Indicator:    model.IndicatorPercentage,
		TargetModule: model.ModuleStudy,
		TargetValue:  100,
		Linked:       model.LinkedEntity{Kind: model.LinkedStudyTrack, ID: track.ID},
	})

	require.NoError(t, e.study.UpdateProgress(testUser, track.ID, 40))
	require.NoError(t, e.study.Delete(testUser, track.ID))

	got := e.goal(t, goal.ID)
	assert.True(t, got.Linked().IsZero())
	assert.False(t, got.AutoSync)
	assert.Equal(t, 40, got.Progress)
	assert.Equal(t, model.GoalStatusActive, got.Status)
}

func TestSyncRoadmapStepDone(t *testing.T) {
	e := newEnv(t)

	_, steps, err := e.career.CreateRoadmap(testUser, "senior track", []string{"mentor", "lead project"})
	require.NoError(t, err)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "mentor someone",
		Indicator:    model.IndicatorPercentage,
		TargetModule: model.ModuleCareer,
		TargetValue:  100,
		Linked:       model.LinkedEntity{Kind: model.LinkedRoadmapStep, ID: steps[0].ID},
	})

	require.NoError(t, e.career.UpdateStep(testUser, steps[0].ID, model.RoadmapStepStatusInProgress, 30))
	assert.Equal(t, 30, e.goal(t, goal.ID).Progress)

	// A done step counts as 100 regardless of its stored progress.
	require.NoError(t, e.career.UpdateStep(testUser, steps[0].ID, model.RoadmapStepStatusDone, 30))

	got := e.goal(t, goal.ID)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, model.GoalStatusCompleted, got.Status)
}

func TestRoadmapCompletionCascade(t *testing.T) {
	e := newEnv(t)

	roadmap, steps, err := e.career.CreateRoadmap(testUser, "senior track", []string{"a", "b", "c"})
	require.NoError(t, err)
	_, otherSteps, err := e.career.CreateRoadmap(testUser, "other track", []string{"x"})
	require.NoError(t, err)

	g1 := e.createGoal(t, service.NewGoalInput{
		Name: "step a", Indicator: model.IndicatorPercentage, TargetModule: model.ModuleCareer,
		TargetValue: 100, Linked: model.LinkedEntity{Kind: model.LinkedRoadmapStep, ID: steps[0].ID},
	})
	g2 := e.createGoal(t, service.NewGoalInput{
		Name: "step b", Indicator: model.IndicatorPercentage, TargetModule: model.ModuleCareer,
		TargetValue: 100, Linked: model.LinkedEntity{Kind: model.LinkedRoadmapStep, ID: steps[1].ID},
	})
	unrelated := e.createGoal(t, service.NewGoalInput{
		Name: "step x", Indicator: model.IndicatorPercentage, TargetModule: model.ModuleCareer,
		TargetValue: 100, Linked: model.LinkedEntity{Kind: model.LinkedRoadmapStep, ID: otherSteps[0].ID},
	})

	require.NoError(t, e.career.CompleteRoadmap(testUser, roadmap.ID))

	assert.Equal(t, model.GoalStatusCompleted, e.goal(t, g1.ID).Status)
	assert.Equal(t, model.GoalStatusCompleted, e.goal(t, g2.ID).Status)

	got := e.goal(t, unrelated.ID)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, model.GoalStatusActive, got.Status)
}

func TestRoadmapDeleteDetachesGoals(t *testing.T) {
	e := newEnv(t)

	roadmap, steps, err := e.career.CreateRoadmap(testUser, "senior track", []string{"a", "b"})
	require.NoError(t, err)

	goal := e.createGoal(t, service.NewGoalInput{
		Name: "step a", Indicator: model.IndicatorPercentage, TargetModule: model.ModuleCareer,
		TargetValue: 100, Linked: model.LinkedEntity{Kind: model.LinkedRoadmapStep, ID: steps[0].ID},
	})

	require.NoError(t, e.career.UpdateStep(testUser, steps[0].ID, model.RoadmapStepStatusInProgress, 60))
	require.NoError(t, e.career.DeleteRoadmap(testUser, roadmap.ID))

	got := e.goal(t, goal.ID)
	assert.True(t, got.Linked().IsZero())
	assert.False(t, got.AutoSync)
	assert.Equal(t, 60, got.Progress)
}

func TestSyncSalary(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "reach 10k",
		Indicator:    model.IndicatorMonetary,
		TargetModule: model.ModuleCareer,
		TargetValue:  10000,
		Linked:       model.LinkedEntity{Kind: model.LinkedSalaryIncrease},
	})

	require.NoError(t, e.career.SaveProfile(testUser, "engineer", "acme", dec("5000")))
	assert.Equal(t, 50, e.goal(t, goal.ID).Progress)

	require.NoError(t, e.career.UpdateSalary(testUser, dec("12000")))

	got := e.goal(t, goal.ID)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, model.GoalStatusCompleted, got.Status)
}

func TestSyncPortfolioTotalWithPriceFallback(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "10k invested",
		Indicator:    model.IndicatorMonetary,
		TargetModule: model.ModuleAssets,
		TargetValue:  10000,
		Linked:       model.LinkedEntity{Kind: model.LinkedPortfolioTotal},
	})

	// No quote yet: the position is valued at average cost.
	position, err := e.assets.AddPosition(testUser, "VWCE", dec("100"), dec("50"))
	require.NoError(t, err)
	assert.Equal(t, 50, e.goal(t, goal.ID).Progress)

	require.NoError(t, e.assets.Reprice(testUser, position.ID, dec("60")))

	got := e.goal(t, goal.ID)
	assert.Equal(t, 60, got.Progress)
	assert.Equal(t, 6000.0, got.CurrentValue)
}

func TestCompletionIsSticky(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "10k invested",
		Indicator:    model.IndicatorMonetary,
		TargetModule: model.ModuleAssets,
		TargetValue:  10000,
		Linked:       model.LinkedEntity{Kind: model.LinkedPortfolioTotal},
	})

	position, err := e.assets.AddPosition(testUser, "VWCE", dec("100"), dec("100"))
	require.NoError(t, err)

	got := e.goal(t, goal.ID)
	require.Equal(t, 100, got.Progress)
	require.Equal(t, model.GoalStatusCompleted, got.Status)
	completedAt := got.CompletedAt.Time

	// The metric dropping afterwards must not reopen or rewrite the goal.
	require.NoError(t, e.assets.Reprice(testUser, position.ID, dec("10")))

	got = e.goal(t, goal.ID)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, model.GoalStatusCompleted, got.Status)
	assert.Equal(t, 10000.0, got.CurrentValue)
	assert.WithinDuration(t, completedAt, got.CompletedAt.Time, time.Second)
}

func TestSyncPassiveIncome(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "200/month passive",
		Indicator:    model.IndicatorMonetary,
		TargetModule: model.ModuleAssets,
		TargetValue:  200,
		Linked:       model.LinkedEntity{Kind: model.LinkedPassiveIncome},
	})

	// Outside the trailing 12 months: ignored.
	_, err := e.assets.RecordDividend(testUser, "", dec("9999"), time.Now().AddDate(-2, 0, 0))
	require.NoError(t, err)

	_, err = e.assets.RecordDividend(testUser, "", dec("1200"), time.Now().AddDate(0, -2, 0))
	require.NoError(t, err)

	// 1200 over 12 months averages 100/month against a 200 target.
	assert.Equal(t, 50, e.goal(t, goal.ID).Progress)
}

func TestSyncTripBudgetIsScopedPerTrip(t *testing.T) {
	e := newEnv(t)

	tripA, err := e.travel.CreateTrip(testUser, "japan", "Tokyo", dec("0"), time.Now(), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	tripB, err := e.travel.CreateTrip(testUser, "norway", "Oslo", dec("0"), time.Now(), time.Now().AddDate(0, 2, 0))
	require.NoError(t, err)

	goalA := e.createGoal(t, service.NewGoalInput{
		Name: "save for japan", Indicator: model.IndicatorMonetary, TargetModule: model.ModuleTravel,
		TargetValue: 4000, Linked: model.LinkedEntity{Kind: model.LinkedTripBudget, ID: tripA.ID},
	})
	goalB := e.createGoal(t, service.NewGoalInput{
		Name: "save for norway", Indicator: model.IndicatorMonetary, TargetModule: model.ModuleTravel,
		TargetValue: 4000, Linked: model.LinkedEntity{Kind: model.LinkedTripBudget, ID: tripB.ID},
	})

	_, err = e.travel.AddBudgetItem(testUser, tripA.ID, "flights", dec("1000"))
	require.NoError(t, err)

	assert.Equal(t, 25, e.goal(t, goalA.ID).Progress)
	assert.Equal(t, 0, e.goal(t, goalB.ID).Progress)
}

func TestSyncTripBudgetFallsBackToTotalBudget(t *testing.T) {
	e := newEnv(t)

	trip, err := e.travel.CreateTrip(testUser, "japan", "Tokyo", dec("2000"), time.Now(), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)

	goal := e.createGoal(t, service.NewGoalInput{
		Name: "save for japan", Indicator: model.IndicatorMonetary, TargetModule: model.ModuleTravel,
		TargetValue: 4000, Linked: model.LinkedEntity{Kind: model.LinkedTripBudget, ID: trip.ID},
	})

	// No budget lines yet: the trip's declared total stands in.
	require.NoError(t, e.travel.UpdateTrip(testUser, trip.ID, trip.Name, trip.Destination, trip.TotalBudget, trip.StartsOn, trip.EndsOn))
	assert.Equal(t, 50, e.goal(t, goal.ID).Progress)

	// Itemized lines take over once they exist.
	_, err = e.travel.AddBudgetItem(testUser, trip.ID, "flights", dec("1000"))
	require.NoError(t, err)
	assert.Equal(t, 25, e.goal(t, goal.ID).Progress)
}

func TestTripDeleteFreezesGoal(t *testing.T) {
	e := newEnv(t)

	trip, err := e.travel.CreateTrip(testUser, "japan", "Tokyo", dec("0"), time.Now(), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)

	goal := e.createGoal(t, service.NewGoalInput{
		Name: "save for japan", Indicator: model.IndicatorMonetary, TargetModule: model.ModuleTravel,
		TargetValue: 4000, Linked: model.LinkedEntity{Kind: model.LinkedTripBudget, ID: trip.ID},
	})

	_, err = e.travel.AddBudgetItem(testUser, trip.ID, "flights", dec("1000"))
	require.NoError(t, err)
	require.Equal(t, 25, e.goal(t, goal.ID).Progress)

	require.NoError(t, e.travel.DeleteTrip(testUser, trip.ID))

	got := e.goal(t, goal.ID)
	assert.True(t, got.Linked().IsZero())
	assert.False(t, got.AutoSync)
	assert.Equal(t, 25, got.Progress)
	assert.Equal(t, 1000.0, got.CurrentValue)
}

func TestSyncCategorySpendCurrentMonthOnly(t *testing.T) {
	e := newEnv(t)

	category, err := e.finance.CreateCategory(testUser, "groceries", "expense")
	require.NoError(t, err)

	goal := e.createGoal(t, service.NewGoalInput{
		Name: "grocery budget", Indicator: model.IndicatorMonetary, TargetModule: model.ModuleFinance,
		TargetValue: 1000, Linked: model.LinkedEntity{Kind: model.LinkedFinanceCategory, ID: category.ID},
	})

	// Last month's spend is out of scope.
	_, err = e.finance.AddTransaction(testUser, category.ID, model.TransactionTypeExpense, "old", dec("400"), time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)

	_, err = e.finance.AddTransaction(testUser, category.ID, model.TransactionTypeExpense, "food", dec("300"), time.Now())
	require.NoError(t, err)

	// Income in the same category does not count as spend.
	_, err = e.finance.AddTransaction(testUser, category.ID, model.TransactionTypeIncome, "refund", dec("500"), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 30, e.goal(t, goal.ID).Progress)
}

func TestCategoryDeleteDetachesGoal(t *testing.T) {
	e := newEnv(t)

	category, err := e.finance.CreateCategory(testUser, "groceries", "expense")
	require.NoError(t, err)

	goal := e.createGoal(t, service.NewGoalInput{
		Name: "grocery budget", Indicator: model.IndicatorMonetary, TargetModule: model.ModuleFinance,
		TargetValue: 1000, Linked: model.LinkedEntity{Kind: model.LinkedFinanceCategory, ID: category.ID},
	})

	_, err = e.finance.AddTransaction(testUser, category.ID, model.TransactionTypeExpense, "food", dec("300"), time.Now())
	require.NoError(t, err)
	require.NoError(t, e.finance.DeleteCategory(testUser, category.ID))

	got := e.goal(t, goal.ID)
	assert.True(t, got.Linked().IsZero())
	assert.False(t, got.AutoSync)
	assert.Equal(t, 30, got.Progress)
}

func TestAutoSyncOffExcludesGoal(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "manual goal",
		Indicator:    model.IndicatorWeight,
		TargetModule: model.ModuleBody,
		TargetValue:  80,
		InitialValue: ptr(100),
	})

	_, err := e.goals.Update(testUser, goal.ID, service.UpdateGoalInput{
		Name:         goal.Name,
		TargetValue:  goal.TargetValue,
		InitialValue: ptr(100),
		AutoSync:     false,
	})
	require.NoError(t, err)

	_, err = e.body.LogWeight(testUser, 90, time.Now())
	require.NoError(t, err)

	got := e.goal(t, goal.ID)
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, 0.0, got.CurrentValue)
}

func TestReconcileUnknownEvent(t *testing.T) {
	e := newEnv(t)

	err := e.sync.Reconcile(service.SourceEvent{Kind: "bogus", UserID: testUser})
	assert.ErrorIs(t, err, service.ErrUnknownEvent)
}

func TestUnlinkNoIDsIsNoop(t *testing.T) {
	e := newEnv(t)

	assert.NoError(t, e.sync.Unlink(testUser, model.LinkedRoadmapStep, nil))
}

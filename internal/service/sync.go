package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/progress"
	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/shopspring/decimal"
)

// EventKind names a source-module mutation that goals may watch.
type EventKind string

const (
	EventWeightLogged         EventKind = "weight_logged"
	EventWeightTargetChanged  EventKind = "weight_target_changed"
	EventActivityLogged       EventKind = "activity_logged"
	EventStudyTrackProgress   EventKind = "study_track_progress"
	EventStudyTrackCompleted  EventKind = "study_track_completed"
	EventRoadmapStepChanged   EventKind = "roadmap_step_changed"
	EventRoadmapCompleted     EventKind = "roadmap_completed"
	EventPortfolioChanged     EventKind = "portfolio_changed"
	EventDividendChanged      EventKind = "dividend_changed"
	EventSalaryChanged        EventKind = "salary_changed"
	EventTripBudgetChanged    EventKind = "trip_budget_changed"
	EventCategorySpendChanged EventKind = "category_spend_changed"
)

// SourceEvent is what a source module hands the engine after its own write
// commits: the event kind, the user, and at most one entity id. Never a
// pre-computed metric; the engine re-reads the source so there is exactly
// one place that knows how to derive it.
type SourceEvent struct {
	Kind     EventKind
	UserID   string
	EntityID string
}

var ErrUnknownEvent = errors.New("unknown source event")

// SyncService recomputes and persists goal progress whenever a source
// module mutates data that goals watch. Every operation is synchronous,
// idempotent and stateless: it re-reads the current source aggregate,
// selects the matching active auto-sync goals, applies the indicator
// formula and writes back. Concurrent triggers race under last-write-wins,
// which is safe because nothing is applied as a delta.
type SyncService struct {
	goals   repository.GoalRepository
	body    repository.BodyRepository
	study   repository.StudyRepository
	career  repository.CareerRepository
	assets  repository.AssetsRepository
	travel  repository.TravelRepository
	finance repository.FinanceRepository

	freqWindow time.Duration
}

func NewSyncService(
	goals repository.GoalRepository,
	body repository.BodyRepository,
	study repository.StudyRepository,
	career repository.CareerRepository,
	assets repository.AssetsRepository,
	travel repository.TravelRepository,
	finance repository.FinanceRepository,
	freqWindow time.Duration,
) *SyncService {
	if freqWindow <= 0 {
		freqWindow = 7 * 24 * time.Hour
	}
	return &SyncService{
		goals:      goals,
		body:       body,
		study:      study,
		career:     career,
		assets:     assets,
		travel:     travel,
		finance:    finance,
		freqWindow: freqWindow,
	}
}

// Reconcile is the single entry point for source modules. The mapping from
// event to aggregate, formula and goal filter lives entirely here.
func (s *SyncService) Reconcile(ev SourceEvent) error {
	switch ev.Kind {
	case EventWeightLogged:
		return s.SyncWeight(ev.UserID)
	case EventWeightTargetChanged:
		return s.SyncWeightTarget(ev.UserID)
	case EventActivityLogged:
		return s.SyncExerciseFrequency(ev.UserID)
	case EventStudyTrackProgress:
		return s.SyncStudyTrack(ev.UserID, ev.EntityID)
	case EventStudyTrackCompleted:
		return s.SyncStudyTrackCompleted(ev.UserID, ev.EntityID)
	case EventRoadmapStepChanged:
		return s.SyncRoadmapStep(ev.UserID, ev.EntityID)
	case EventRoadmapCompleted:
		return s.SyncRoadmapCompleted(ev.UserID, ev.EntityID)
	case EventPortfolioChanged:
		return s.SyncPortfolioTotal(ev.UserID)
	case EventDividendChanged:
		return s.SyncPassiveIncome(ev.UserID)
	case EventSalaryChanged:
		return s.SyncSalary(ev.UserID)
	case EventTripBudgetChanged:
		return s.SyncTripBudget(ev.UserID, ev.EntityID)
	case EventCategorySpendChanged:
		return s.SyncCategorySpend(ev.UserID, ev.EntityID)
	}
	return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
}

// Unlink detaches every goal referencing one of the deleted source
// entities: the weak reference is cleared and auto-sync forced off, while
// progress, current value and status stay frozen as a historical record.
// The goals themselves are never deleted here.
func (s *SyncService) Unlink(userID string, kind model.LinkedEntityKind, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.goals.Detach(userID, kind, ids, time.Now())
}

// SyncWeight recomputes all weight goals from the latest recorded weight.
func (s *SyncService) SyncWeight(userID string) error {
	current, err := s.body.LatestWeight(userID)
	if errors.Is(err, repository.ErrNoWeightRecorded) {
		return nil
	}
	if err != nil {
		return err
	}

	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:        userID,
		IndicatorType: model.IndicatorWeight,
		TargetModule:  model.ModuleBody,
	})
	if err != nil {
		return err
	}

	return s.recompute(goals, current, func(g *model.Goal) int {
		return progress.Weight(current, g.TargetValue, initialOf(g))
	})
}

// SyncWeightTarget propagates a changed target weight from the body
// profile to every weight goal, and recomputes progress in the same call
// when a current weight is already known.
func (s *SyncService) SyncWeightTarget(userID string) error {
	profile, err := s.body.Profile(userID)
	if errors.Is(err, repository.ErrBodyProfileNotSet) {
		return nil
	}
	if err != nil {
		return err
	}
	if !profile.TargetWeight.Valid {
		return nil
	}
	target := profile.TargetWeight.Float64

	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:        userID,
		IndicatorType: model.IndicatorWeight,
		TargetModule:  model.ModuleBody,
	})
	if err != nil {
		return err
	}

	current, werr := s.body.LatestWeight(userID)
	hasWeight := werr == nil
	if werr != nil && !errors.Is(werr, repository.ErrNoWeightRecorded) {
		return werr
	}

	now := time.Now()
	var errs []error
	for _, goal := range goals {
		if goal.Status == model.GoalStatusCompleted || !goal.AutoSync {
			continue
		}
		if err := s.goals.SetTargetValue(goal.ID, target, now); err != nil {
			errs = append(errs, fmt.Errorf("goal %s: %w", goal.ID, err))
			continue
		}
		if hasWeight {
			pct := progress.Weight(current, target, initialOf(goal))
			if err := s.goals.ApplyProgress(goal.ID, current, pct, now); err != nil {
				errs = append(errs, fmt.Errorf("goal %s: %w", goal.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// SyncExerciseFrequency recomputes frequency goals from the count of
// activities in the trailing window (7 days unless configured otherwise).
func (s *SyncService) SyncExerciseFrequency(userID string) error {
	count, err := s.body.CountActivitiesSince(userID, time.Now().Add(-s.freqWindow))
	if err != nil {
		return err
	}

	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:        userID,
		IndicatorType: model.IndicatorFrequency,
		TargetModule:  model.ModuleBody,
	})
	if err != nil {
		return err
	}

	return s.recompute(goals, float64(count), func(g *model.Goal) int {
		return progress.Frequency(count, g.TargetValue)
	})
}

// SyncStudyTrack propagates a track's self-reported percentage to goals
// linked to that track.
func (s *SyncService) SyncStudyTrack(userID, trackID string) error {
	track, err := s.study.ByID(userID, trackID)
	if errors.Is(err, repository.ErrStudyTrackNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.syncLinkedProgress(userID, model.LinkedStudyTrack, trackID, float64(track.Progress))
}

// SyncStudyTrackCompleted is the completion variant: the track still has
// to exist, and linked goals jump to 100.
func (s *SyncService) SyncStudyTrackCompleted(userID, trackID string) error {
	_, err := s.study.ByID(userID, trackID)
	if errors.Is(err, repository.ErrStudyTrackNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.syncLinkedProgress(userID, model.LinkedStudyTrack, trackID, 100)
}

// SyncRoadmapStep propagates a step's percentage to goals linked to it. A
// step whose status is done counts as 100 regardless of its stored
// progress.
func (s *SyncService) SyncRoadmapStep(userID, stepID string) error {
	step, err := s.career.StepByID(userID, stepID)
	if errors.Is(err, repository.ErrRoadmapStepNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	value := float64(step.Progress)
	if step.Status == model.RoadmapStepStatusDone {
		value = 100
	}

	return s.syncLinkedProgress(userID, model.LinkedRoadmapStep, stepID, value)
}

// SyncRoadmapCompleted cascades completion of a whole roadmap: every goal
// linked to any of its steps goes to 100. Goals linked to steps of other
// roadmaps are untouched.
func (s *SyncService) SyncRoadmapCompleted(userID, roadmapID string) error {
	stepIDs, err := s.career.StepIDs(userID, roadmapID)
	if err != nil {
		return err
	}

	var errs []error
	for _, stepID := range stepIDs {
		if err := s.syncLinkedProgress(userID, model.LinkedRoadmapStep, stepID, 100); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SyncPortfolioTotal recomputes the single per-user portfolio goal from
// the sum over all positions of quantity x (last price if known, else
// average cost).
func (s *SyncService) SyncPortfolioTotal(userID string) error {
	positions, err := s.assets.Positions(userID)
	if err != nil {
		return err
	}

	total := decimalTotal(positions)

	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:       userID,
		TargetModule: model.ModuleAssets,
		LinkedKind:   model.LinkedPortfolioTotal,
	})
	if err != nil {
		return err
	}

	return s.recompute(goals, total, func(g *model.Goal) int {
		return progress.Monetary(total, g.TargetValue)
	})
}

// SyncPassiveIncome recomputes passive-income goals from the monthly
// average of distributions received in the trailing 12 months.
func (s *SyncService) SyncPassiveIncome(userID string) error {
	sum, err := s.assets.SumDividendsSince(userID, time.Now().AddDate(-1, 0, 0))
	if err != nil {
		return err
	}

	monthly := sum.Div(twelve).InexactFloat64()

	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:     userID,
		LinkedKind: model.LinkedPassiveIncome,
	})
	if err != nil {
		return err
	}

	return s.recompute(goals, monthly, func(g *model.Goal) int {
		return progress.Monetary(monthly, g.TargetValue)
	})
}

// SyncSalary recomputes salary-increase goals from the current gross
// salary scalar on the career profile.
func (s *SyncService) SyncSalary(userID string) error {
	profile, err := s.career.Profile(userID)
	if errors.Is(err, repository.ErrCareerProfileNotSet) {
		return nil
	}
	if err != nil {
		return err
	}

	salary := profile.GrossSalary.InexactFloat64()

	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:       userID,
		TargetModule: model.ModuleCareer,
		LinkedKind:   model.LinkedSalaryIncrease,
	})
	if err != nil {
		return err
	}

	return s.recompute(goals, salary, func(g *model.Goal) int {
		return progress.Monetary(salary, g.TargetValue)
	})
}

// SyncTripBudget recomputes the goals linked to one trip. The sum of the
// trip's estimated budget lines is preferred; when that sum is zero the
// trip's declared total budget is used instead. Goals of the user's other
// trips are never selected.
func (s *SyncService) SyncTripBudget(userID, tripID string) error {
	sum, err := s.travel.SumEstimates(userID, tripID)
	if err != nil {
		return err
	}

	if sum.IsZero() {
		trip, err := s.travel.TripByID(userID, tripID)
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		sum = trip.TotalBudget
	}

	amount := sum.InexactFloat64()

	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:     userID,
		LinkedKind: model.LinkedTripBudget,
		LinkedID:   tripID,
	})
	if err != nil {
		return err
	}

	return s.recompute(goals, amount, func(g *model.Goal) int {
		return progress.Monetary(amount, g.TargetValue)
	})
}

// SyncCategorySpend recomputes goals linked to one finance category from
// the expense sum of the current calendar month.
func (s *SyncService) SyncCategorySpend(userID, categoryID string) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	spent, err := s.finance.SumCategoryExpenses(userID, categoryID, from, to)
	if err != nil {
		return err
	}

	amount := spent.InexactFloat64()

	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:     userID,
		LinkedKind: model.LinkedFinanceCategory,
		LinkedID:   categoryID,
	})
	if err != nil {
		return err
	}

	return s.recompute(goals, amount, func(g *model.Goal) int {
		return progress.Monetary(amount, g.TargetValue)
	})
}

// syncLinkedProgress is the shared pass-through path for every linked
// percentage source.
func (s *SyncService) syncLinkedProgress(userID string, kind model.LinkedEntityKind, entityID string, value float64) error {
	goals, err := s.goals.ActiveAutoSync(repository.GoalFilter{
		UserID:     userID,
		LinkedKind: kind,
		LinkedID:   entityID,
	})
	if err != nil {
		return err
	}

	return s.recompute(goals, value, func(g *model.Goal) int {
		return progress.Percentage(value)
	})
}

// recompute writes a computed percentage to each selected goal. Goal
// writes are independent: one failure is logged and joined into the
// returned error without rolling back the others. The completed/frozen
// guard repeats the selection predicate so a completed goal is never
// recomputed even if a caller hands one in.
func (s *SyncService) recompute(goals []*model.Goal, current float64, compute func(*model.Goal) int) error {
	now := time.Now()
	var errs []error
	for _, goal := range goals {
		if goal.Status == model.GoalStatusCompleted || !goal.AutoSync {
			continue
		}
		pct := compute(goal)
		if err := s.goals.ApplyProgress(goal.ID, current, pct, now); err != nil {
			slog.Error("goal progress write failed", "goal_id", goal.ID, "error", err)
			errs = append(errs, fmt.Errorf("goal %s: %w", goal.ID, err))
		}
	}
	return errors.Join(errs...)
}

func initialOf(g *model.Goal) *float64 {
	if !g.InitialValue.Valid {
		return nil
	}
	v := g.InitialValue.Float64
	return &v
}

var twelve = decimal.NewFromInt(12)

// decimalTotal values the portfolio in decimal and converts once at the
// formula boundary.
func decimalTotal(positions []*model.Position) float64 {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.MarketValue())
	}
	return total.InexactFloat64()
}

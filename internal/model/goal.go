package model

import (
	"database/sql"
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// IndicatorType selects the formula that turns a raw metric into progress.
type IndicatorType string

const (
	IndicatorWeight     IndicatorType = "weight"
	IndicatorFrequency  IndicatorType = "frequency"
	IndicatorPercentage IndicatorType = "percentage"
	IndicatorMonetary   IndicatorType = "monetary"
)

// Module is the domain area a goal belongs to. Used for filtering and
// display only, never for computation.
type Module string

const (
	ModuleBody    Module = "body"
	ModuleCareer  Module = "career"
	ModuleAssets  Module = "assets"
	ModuleTravel  Module = "travel"
	ModuleFinance Module = "finance"
	ModuleStudy   Module = "study"
)

// LinkedEntityKind tags the weak reference from a goal to a source entity.
// It is a label + id pair, never an ownership relationship.
type LinkedEntityKind string

const (
	LinkedStudyTrack      LinkedEntityKind = "study_track"
	LinkedRoadmapStep     LinkedEntityKind = "roadmap_step"
	LinkedTripBudget      LinkedEntityKind = "trip_budget"
	LinkedFinanceCategory LinkedEntityKind = "finance_category"
	LinkedPortfolioTotal  LinkedEntityKind = "portfolio_total"
	LinkedPassiveIncome   LinkedEntityKind = "passive_income_12m"
	LinkedSalaryIncrease  LinkedEntityKind = "salary_increase"
)

// LinkedEntity is the nullable tagged pointer a goal holds to its source.
// The zero value means "not linked".
type LinkedEntity struct {
	Kind LinkedEntityKind
	ID   string
}

func (l LinkedEntity) IsZero() bool {
	return l.Kind == "" && l.ID == ""
}

// Scoped reports whether this kind points at a specific entity id.
// Per-user singletons (portfolio total, passive income, salary) carry a
// kind but no id.
func (k LinkedEntityKind) Scoped() bool {
	switch k {
	case LinkedStudyTrack, LinkedRoadmapStep, LinkedTripBudget, LinkedFinanceCategory:
		return true
	}
	return false
}

type Goal struct {
	ID               string          `db:"id"`
	UserID           string          `db:"user_id"`
	ObjectiveID      string          `db:"objective_id"`
	Name             string          `db:"name"`
	IndicatorType    IndicatorType   `db:"indicator_type"`
	TargetModule     Module          `db:"target_module"`
	TargetValue      float64         `db:"target_value"`
	InitialValue     sql.NullFloat64 `db:"initial_value"`
	CurrentValue     float64         `db:"current_value"`
	Progress         int             `db:"progress"`
	Weight           int             `db:"weight"`
	Priority         int             `db:"priority"`
	Status           string          `db:"status"`
	AutoSync         bool            `db:"auto_sync"`
	LinkedEntityType sql.NullString  `db:"linked_entity_type"`
	LinkedEntityID   sql.NullString  `db:"linked_entity_id"`
	CompletedAt      sql.NullTime    `db:"completed_at"`
	LastProgressAt   sql.NullTime    `db:"last_progress_update"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// Linked returns the goal's weak reference, or the zero LinkedEntity when
// the goal is detached.
func (g *Goal) Linked() LinkedEntity {
	if !g.LinkedEntityType.Valid {
		return LinkedEntity{}
	}
	return LinkedEntity{
		Kind: LinkedEntityKind(g.LinkedEntityType.String),
		ID:   g.LinkedEntityID.String,
	}
}

// SetLinked writes the weak reference columns. Both columns are set or
// both are null; singleton kinds store an empty id.
func (g *Goal) SetLinked(l LinkedEntity) {
	if l.IsZero() {
		g.LinkedEntityType = sql.NullString{}
		g.LinkedEntityID = sql.NullString{}
		return
	}
	g.LinkedEntityType = sql.NullString{String: string(l.Kind), Valid: true}
	g.LinkedEntityID = sql.NullString{String: l.ID, Valid: true}
}

package service_test

import (
	"testing"
	"time"

	"github.com/lifedeskhq/lifedesk/internal/model"
	"github.com/lifedeskhq/lifedesk/internal/repository"
	"github.com/lifedeskhq/lifedesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalCreateValidation(t *testing.T) {
	e := newEnv(t)

	_, err := e.goals.Create(testUser, service.NewGoalInput{
		Name:      "bad indicator",
		Indicator: "velocity",
	})
	assert.ErrorIs(t, err, service.ErrInvalidIndicator)

	_, err = e.goals.Create(testUser, service.NewGoalInput{
		Name:      "scoped link without id",
		Indicator: model.IndicatorPercentage,
		Linked:    model.LinkedEntity{Kind: model.LinkedStudyTrack},
	})
	assert.ErrorIs(t, err, service.ErrInvalidLink)
}

func TestGoalCreateDefaults(t *testing.T) {
	e := newEnv(t)

	goal := e.createGoal(t, service.NewGoalInput{
		Name:         "new goal",
		Indicator:    model.IndicatorMonetary,
		TargetModule: model.ModuleAssets,
		TargetValue:  10000,
		Linked:       model.LinkedEntity{Kind: model.LinkedPortfolioTotal},
	})

	assert.Equal(t, model.GoalStatusActive, goal.Status)
	assert.True(t, goal.AutoSync)
	assert.Equal(t, 0, goal.Progress)

	got := e.goal(t, goal.ID)
	assert.Equal(t, model.LinkedPortfolioTotal, got.Linked().Kind)
}

func TestGoalUpdateDoesNotTouchEngineFields(t *testing.T) {
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
	require.Equal(t, 50, e.goal(t, goal.ID).Progress)

	_, err = e.goals.Update(testUser, goal.ID, service.UpdateGoalInput{
		Name:         "renamed",
		TargetValue:  80,
		InitialValue: ptr(100),
		Weight:       3,
		AutoSync:     true,
	})
	require.NoError(t, err)

	got := e.goal(t, goal.ID)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, 90.0, got.CurrentValue)
}

func TestGoalDeleteMissing(t *testing.T) {
	e := newEnv(t)

	err := e.goals.Delete(testUser, "nope")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

package plan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/model"
)

var testNow = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func flex(v float64) *model.FlexFloat {
	f := model.FlexFloat(v)
	return &f
}

func TestComposeNilStateIsInvalidInput(t *testing.T) {
	resp, err := Compose(nil, nil, false, testNow)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestComposeDefaultContributionDistribution(t *testing.T) {
	state := &model.BudgetState{
		Income: 5000,
		Categories: []model.PlannedCategory{
			{Name: "Housing", Planned: 2500},
			{Name: "Food & Dining", Planned: 1500},
		},
		Goals: []model.Goal{
			{Name: "Emergency fund", TargetAmount: 3000},
			{Name: "Vacation", TargetAmount: 1200},
		},
	}

	resp, err := Compose(state, nil, false, testNow)
	require.NoError(t, err)

	assert.InDelta(t, 4000, resp.PlannedSpending, 0.0001)
	assert.InDelta(t, 1000, resp.Surplus, 0.0001)

	// 20% of surplus split across the two goals lacking a contribution.
	require.Len(t, resp.Goals, 2)
	assert.InDelta(t, 100, resp.Goals[0].MonthlyContribution, 0.0001)
	assert.InDelta(t, 100, resp.Goals[1].MonthlyContribution, 0.0001)
	assert.Equal(t, 30, resp.Goals[0].MonthsToGoal)
	assert.Equal(t, 12, resp.Goals[1].MonthsToGoal)
}

func TestComposeExplicitContributionPreserved(t *testing.T) {
	state := &model.BudgetState{
		Income: 5000,
		Categories: []model.PlannedCategory{
			{Name: "Housing", Planned: 4000},
		},
		Goals: []model.Goal{
			{Name: "Down payment", TargetAmount: 10000, CurrentAmount: 1000, MonthlyContribution: flex(750)},
			{Name: "Vacation", TargetAmount: 1200},
		},
	}

	resp, err := Compose(state, nil, false, testNow)
	require.NoError(t, err)

	require.Len(t, resp.Goals, 2)
	assert.InDelta(t, 750, resp.Goals[0].MonthlyContribution, 0.0001)
	assert.Equal(t, 12, resp.Goals[0].MonthsToGoal)

	// One goal needs a default: round(1000 * 0.2 / 1) = 200.
	assert.InDelta(t, 200, resp.Goals[1].MonthlyContribution, 0.0001)
}

func TestComposeNoDefaultWhenNarrationAvailable(t *testing.T) {
	state := &model.BudgetState{
		Income:     5000,
		Categories: []model.PlannedCategory{{Name: "Housing", Planned: 4000}},
		Goals:      []model.Goal{{Name: "Vacation", TargetAmount: 1200}},
	}

	resp, err := Compose(state, nil, true, testNow)
	require.NoError(t, err)

	require.Len(t, resp.Goals, 1)
	assert.Zero(t, resp.Goals[0].MonthlyContribution)
	assert.Zero(t, resp.Goals[0].MonthsToGoal)
}

func TestComposeNoDefaultWithoutSurplus(t *testing.T) {
	state := &model.BudgetState{
		Income:     3000,
		Categories: []model.PlannedCategory{{Name: "Housing", Planned: 3500}},
		Goals:      []model.Goal{{Name: "Vacation", TargetAmount: 1200}},
	}

	resp, err := Compose(state, nil, false, testNow)
	require.NoError(t, err)

	assert.InDelta(t, -500, resp.Surplus, 0.0001)
	assert.Zero(t, resp.Goals[0].MonthlyContribution)
}

func TestComposeZeroExplicitContributionIsNotDefaulted(t *testing.T) {
	state := &model.BudgetState{
		Income: 5000,
		Goals: []model.Goal{
			{Name: "Paused goal", TargetAmount: 1200, MonthlyContribution: flex(0)},
		},
	}

	resp, err := Compose(state, nil, false, testNow)
	require.NoError(t, err)

	// An explicit zero counts as a caller decision, not an absent value.
	assert.Zero(t, resp.Goals[0].MonthlyContribution)
	assert.Zero(t, resp.Goals[0].MonthsToGoal)
}

func TestComposeEchoesSnapshotAndCategories(t *testing.T) {
	snap := &model.Snapshot{TotalSpending: 1234}
	state := &model.BudgetState{
		Income:     4000,
		Categories: []model.PlannedCategory{{Name: "Lifestyle", Planned: 300}},
	}

	resp, err := Compose(state, snap, false, testNow)
	require.NoError(t, err)

	assert.Same(t, snap, resp.Snapshot)
	assert.Equal(t, state.Categories, resp.Categories)
	assert.Contains(t, resp.Narration, "rule-of-thumb")
}

type stubNarrator struct {
	text string
	err  error

	prompt string
}

func (s *stubNarrator) Narrate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestComposerUsesNarrator(t *testing.T) {
	narrator := &stubNarrator{text: "You are on track this month."}
	composer := NewComposer(narrator)
	composer.now = func() time.Time { return testNow }

	state := &model.BudgetState{
		Income: 5000,
		Goals:  []model.Goal{{Name: "Vacation", TargetAmount: 1200, MonthlyContribution: flex(100)}},
	}

	resp, err := composer.ComposePlan(context.Background(), state, nil)
	require.NoError(t, err)

	assert.Equal(t, "You are on track this month.", resp.Narration)
	assert.Contains(t, narrator.prompt, "Monthly income: 5000.00")
	assert.Contains(t, narrator.prompt, "Vacation")
}

func TestComposerNarratorFailureFallsBack(t *testing.T) {
	narrator := &stubNarrator{err: errors.New("api unavailable")}
	composer := NewComposer(narrator)
	composer.now = func() time.Time { return testNow }

	state := &model.BudgetState{Income: 5000}

	resp, err := composer.ComposePlan(context.Background(), state, nil)
	require.NoError(t, err)
	assert.True(t, strings.Contains(resp.Narration, "narration"))
}

func TestComposerWithoutNarrator(t *testing.T) {
	composer := NewComposer(nil)
	composer.now = func() time.Time { return testNow }

	state := &model.BudgetState{
		Income:     5000,
		Categories: []model.PlannedCategory{{Name: "Housing", Planned: 4000}},
		Goals:      []model.Goal{{Name: "Vacation", TargetAmount: 1200}},
	}

	resp, err := composer.ComposePlan(context.Background(), state, nil)
	require.NoError(t, err)
	assert.Contains(t, resp.Narration, "rule-of-thumb")
	assert.InDelta(t, 200, resp.Goals[0].MonthlyContribution, 0.0001)
}

// Package plan composes budget state, spending snapshots, and goal
// forecasts into a single plan response.
package plan

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/forecast"
	"github.com/harwellgs/pocketsage/internal/model"
	"github.com/harwellgs/pocketsage/internal/service"
)

const (
	// surplusShare is the fraction of monthly surplus distributed across
	// goals that carry no explicit contribution.
	surplusShare = 0.2

	fallbackNarration = "Plan composed with rule-of-thumb defaults: goals without a set contribution split 20% of your monthly surplus."
	advisorNarration  = "Plan composed with advisor narration."
)

// Compose builds a plan from caller-supplied budget state, an optional
// snapshot, and wall-clock now. It is pure: same inputs, same plan. The only
// rejected input is a nil budget state; every field inside a present state
// coerces rather than errors.
func Compose(state *model.BudgetState, snap *model.Snapshot, narrationAvailable bool, now time.Time) (*model.PlanResponse, error) {
	if state == nil {
		return nil, common.ErrInvalidInput
	}

	income := float64(state.Income)

	var plannedSpending float64
	for _, c := range state.Categories {
		plannedSpending += float64(c.Planned)
	}

	surplus := income - plannedSpending

	needingDefault := 0
	for _, g := range state.Goals {
		if g.MonthlyContribution == nil {
			needingDefault++
		}
	}

	defaultContribution := 0.0
	if !narrationAvailable && surplus > 0 && needingDefault > 0 {
		defaultContribution = math.Max(math.Round(surplus*surplusShare/float64(needingDefault)), 0)
	}

	goals := make([]model.PlanGoal, 0, len(state.Goals))
	for _, g := range state.Goals {
		contribution := defaultContribution
		if g.MonthlyContribution != nil {
			contribution = float64(*g.MonthlyContribution)
		}

		fc := forecast.Forecast(float64(g.TargetAmount), float64(g.CurrentAmount), contribution, now)

		goals = append(goals, model.PlanGoal{
			Name:                    g.Name,
			TargetAmount:            float64(g.TargetAmount),
			CurrentAmount:           float64(g.CurrentAmount),
			MonthlyContribution:     contribution,
			MonthsToGoal:            fc.MonthsToGoal,
			ProjectedCompletionDate: fc.ProjectedCompletionDate,
		})
	}

	narration := fallbackNarration
	if narrationAvailable {
		narration = advisorNarration
	}

	return &model.PlanResponse{
		Snapshot:        snap,
		Narration:       narration,
		Categories:      state.Categories,
		Goals:           goals,
		Income:          income,
		PlannedSpending: plannedSpending,
		Surplus:         surplus,
	}, nil
}

// Composer wraps Compose with an optional narration collaborator.
type Composer struct {
	narrator service.Narrator
	logger   *slog.Logger
	now      func() time.Time
}

// NewComposer creates a plan composer. A nil narrator switches the composer
// to its deterministic rule-of-thumb path.
func NewComposer(narrator service.Narrator) *Composer {
	return &Composer{
		narrator: narrator,
		logger:   slog.Default().With("component", "plan"),
		now:      time.Now,
	}
}

// ComposePlan builds the plan and, when a narrator is configured, replaces
// the stock narration with generated text. Narration failures degrade to the
// deterministic narration rather than failing the plan.
func (c *Composer) ComposePlan(ctx context.Context, state *model.BudgetState, snap *model.Snapshot) (*model.PlanResponse, error) {
	resp, err := Compose(state, snap, c.narrator != nil, c.now())
	if err != nil {
		return nil, err
	}

	if c.narrator == nil {
		return resp, nil
	}

	text, err := c.narrator.Narrate(ctx, narrationPrompt(resp))
	if err != nil {
		c.logger.Warn("Narration failed, using stock narration", "error", err)
		return resp, nil
	}
	if text != "" {
		resp.Narration = text
	}

	return resp, nil
}

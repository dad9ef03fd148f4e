package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that tolerates sloppy JSON. Upstream budget data is
// hand-entered and inconsistent, so numbers, numeric strings, null, and
// outright garbage all decode without error; anything unparsable coerces to
// zero.
type FlexFloat float64

// UnmarshalJSON never returns an error for scalar values.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = FlexFloat(n)
			return nil
		}
	}

	*f = 0
	return nil
}

// PlannedCategory is one budgeted spending line in a user's plan.
type PlannedCategory struct {
	Name    string    `json:"name,omitempty"`
	Planned FlexFloat `json:"planned"`
}

// Goal is a savings goal owned by the caller. MonthlyContribution is nil
// when the user has not chosen one; the plan composer may assign a default.
type Goal struct {
	Name                string     `json:"name,omitempty"`
	MonthlyContribution *FlexFloat `json:"monthlyContribution,omitempty"`
	TargetAmount        FlexFloat  `json:"targetAmount"`
	CurrentAmount       FlexFloat  `json:"currentAmount"`
}

// BudgetState is the caller-supplied budget: income, planned categories,
// and savings goals. All numeric fields degrade gracefully to zero.
type BudgetState struct {
	Categories []PlannedCategory `json:"categories"`
	Goals      []Goal            `json:"goals"`
	Income     FlexFloat         `json:"income"`
}

// GoalForecast holds the derived completion projection for a goal. A met
// goal, or one with no viable contribution, has zero months and no date.
type GoalForecast struct {
	ProjectedCompletionDate string `json:"projectedCompletionDate,omitempty"` // YYYY-MM-DD
	MonthsToGoal            int    `json:"monthsToGoal"`
}

// PlanGoal is an input goal echoed back with its contribution resolved and
// forecast fields attached.
type PlanGoal struct {
	Name                    string  `json:"name,omitempty"`
	ProjectedCompletionDate string  `json:"projectedCompletionDate,omitempty"`
	TargetAmount            float64 `json:"targetAmount"`
	CurrentAmount           float64 `json:"currentAmount"`
	MonthlyContribution     float64 `json:"monthlyContribution"`
	MonthsToGoal            int     `json:"monthsToGoal"`
}

// PlanResponse is a composed budget plan. Narration describes how the plan
// was derived; it is informational only and carries no structured data.
type PlanResponse struct {
	Snapshot        *Snapshot         `json:"snapshot,omitempty"`
	Narration       string            `json:"narration"`
	Categories      []PlannedCategory `json:"categories"`
	Goals           []PlanGoal        `json:"goals"`
	Income          float64           `json:"income"`
	PlannedSpending float64           `json:"plannedSpending"`
	Surplus         float64           `json:"surplus"`
}

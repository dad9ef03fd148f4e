// Package forecast projects savings-goal completion from contribution pace.
package forecast

import (
	"math"
	"time"

	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/model"
)

// Forecast computes months-to-completion and a projected completion date for
// a goal. A goal that is already met, or has no viable contribution, yields
// the zero forecast rather than an error.
func Forecast(target, current, monthlyContribution float64, now time.Time) model.GoalForecast {
	target = sanitize(target)
	current = sanitize(current)
	monthlyContribution = sanitize(monthlyContribution)

	remaining := target - current
	if remaining <= 0 || monthlyContribution <= 0 {
		return model.GoalForecast{}
	}

	months := int(math.Ceil(remaining / monthlyContribution))
	if months < 1 {
		months = 1
	}

	completion := common.DateOnly(now).AddDate(0, months, 0)

	return model.GoalForecast{
		MonthsToGoal:            months,
		ProjectedCompletionDate: completion.Format("2006-01-02"),
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

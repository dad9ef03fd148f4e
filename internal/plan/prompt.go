package plan

import (
	"fmt"
	"strings"

	"github.com/harwellgs/pocketsage/internal/model"
)

// narrationPrompt renders a plan into the prompt sent to the narrator.
func narrationPrompt(resp *model.PlanResponse) string {
	var b strings.Builder

	b.WriteString("You are a pragmatic personal finance advisor. Summarize this monthly plan in 2-3 sentences of plain language. Do not invent numbers.\n\n")
	fmt.Fprintf(&b, "Monthly income: %.2f\n", resp.Income)
	fmt.Fprintf(&b, "Planned spending: %.2f\n", resp.PlannedSpending)
	fmt.Fprintf(&b, "Surplus: %.2f\n", resp.Surplus)

	if len(resp.Categories) > 0 {
		b.WriteString("\nPlanned categories:\n")
		for _, c := range resp.Categories {
			fmt.Fprintf(&b, "- %s: %.2f\n", c.Name, float64(c.Planned))
		}
	}

	if len(resp.Goals) > 0 {
		b.WriteString("\nGoals:\n")
		for _, g := range resp.Goals {
			fmt.Fprintf(&b, "- %s: %.2f of %.2f saved, contributing %.2f/month", g.Name, g.CurrentAmount, g.TargetAmount, g.MonthlyContribution)
			if g.MonthsToGoal > 0 {
				fmt.Fprintf(&b, ", done in %d months (%s)", g.MonthsToGoal, g.ProjectedCompletionDate)
			}
			b.WriteString("\n")
		}
	}

	if resp.Snapshot != nil {
		b.WriteString("\nRecent spending by category:\n")
		for _, c := range model.CoreCategories() {
			fmt.Fprintf(&b, "- %s: %.2f\n", c, resp.Snapshot.CategoryTotals[c])
		}
		fmt.Fprintf(&b, "Total recent spending: %.2f\n", resp.Snapshot.TotalSpending)
	}

	return b.String()
}

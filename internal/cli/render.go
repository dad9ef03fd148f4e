package cli

import (
	"fmt"
	"strings"

	"github.com/harwellgs/pocketsage/internal/model"
)

// RenderSnapshot renders a snapshot as styled terminal output.
func RenderSnapshot(snap *model.Snapshot) string {
	var b strings.Builder

	b.WriteString(FormatTitle(fmt.Sprintf("Spending Snapshot  %s – %s",
		snap.Start.Format("Jan 2, 2006"), snap.End.Format("Jan 2, 2006"))))
	b.WriteString("\n\n")

	b.WriteString(TableHeaderStyle.Render("Category") + "\n")
	for _, c := range model.CoreCategories() {
		line := fmt.Sprintf("%-18s %10.2f", c, snap.CategoryTotals[c])
		if snap.CategoryTotals[c] == 0 {
			b.WriteString(SubtleStyle.Render(line))
		} else {
			b.WriteString(TableCellStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(BoldStyle.Render(fmt.Sprintf("%-18s %10.2f", "Total spending", snap.TotalSpending)))
	b.WriteString("\n")
	b.WriteString(SuccessStyle.Render(fmt.Sprintf("%-18s %10.2f", "Total income", snap.TotalIncome)))
	b.WriteString("\n")

	if len(snap.Sample) > 0 {
		b.WriteString("\n")
		b.WriteString(TableHeaderStyle.Render("Recent transactions") + "\n")
		for _, tx := range snap.Sample {
			b.WriteString(fmt.Sprintf("%s  %-32s %10.2f\n", tx.Date, truncate(tx.Name, 32), tx.Amount))
		}
	}

	return b.String()
}

// RenderPlan renders a composed plan as styled terminal output.
func RenderPlan(resp *model.PlanResponse) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Monthly Plan"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%-18s %10.2f\n", "Income", resp.Income))
	b.WriteString(fmt.Sprintf("%-18s %10.2f\n", "Planned spending", resp.PlannedSpending))

	surplusLine := fmt.Sprintf("%-18s %10.2f", "Surplus", resp.Surplus)
	if resp.Surplus < 0 {
		b.WriteString(ErrorStyle.Render(surplusLine))
	} else {
		b.WriteString(SuccessStyle.Render(surplusLine))
	}
	b.WriteString("\n")

	if len(resp.Goals) > 0 {
		b.WriteString("\n")
		b.WriteString(TableHeaderStyle.Render(GoalIcon+" Goals") + "\n")
		for _, g := range resp.Goals {
			b.WriteString(fmt.Sprintf("%-24s %.2f / %.2f  (%.2f/mo)",
				truncate(g.Name, 24), g.CurrentAmount, g.TargetAmount, g.MonthlyContribution))
			if g.MonthsToGoal > 0 {
				b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %d months, done %s", g.MonthsToGoal, g.ProjectedCompletionDate)))
			} else {
				b.WriteString(SuccessStyle.Render("  " + SuccessIcon + " reached"))
			}
			b.WriteString("\n")
		}
	}

	if resp.Narration != "" {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(resp.Narration))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

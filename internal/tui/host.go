package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jask/moneyboard/internal/catalog"
	"github.com/jask/moneyboard/internal/filter"
	"github.com/jask/moneyboard/internal/records"
	"github.com/jask/moneyboard/internal/widgets"
)

// RenderContext is the common prop set the host hands every widget
// renderer: the shared filtered view plus session context. The filter
// panel additionally reads MaxAmount, Categories, and PendingRange.
type RenderContext struct {
	Expenses     []records.Expense
	Income       []records.Income
	Loading      bool
	UserID       string
	Period       filter.Period
	Filters      filter.Filters
	MaxAmount    float64
	Categories   []string
	PendingRange *[2]float64
	Currency     string
}

type renderFunc func(rc RenderContext, width, height int) string

// rendererFor resolves the renderer handle for a catalog kind. A kind
// without an entry here renders a placeholder instead of crashing.
func rendererFor(kind string) (renderFunc, bool) {
	r, ok := renderers[kind]
	return r, ok
}

var renderers = map[string]renderFunc{
	"overview":              renderOverview,
	"spendingTrend":         renderSpendingTrend,
	"categoryBreakdown":     renderCategoryBreakdown,
	"incomeVsExpense":       renderIncomeVsExpense,
	"recentTransactions":    renderRecentTransactions,
	"topExpenses":           renderTopExpenses,
	"budgetProgress":        renderBudgetProgress,
	"savingsGoal":           renderSavingsGoal,
	"monthlySummary":        renderMonthlySummary,
	"accountBalance":        renderAccountBalance,
	"calendarHeatmap":       renderCalendarHeatmap,
	catalog.KindFilterPanel: renderFilterPanel,
}

func money(currency string, v float64) string {
	return fmt.Sprintf("%s%.2f", currency, v)
}

func totalExpenses(rows []records.Expense) float64 {
	sum := 0.0
	for _, r := range rows {
		sum += r.Amount
	}
	return sum
}

func totalIncome(rows []records.Income) float64 {
	sum := 0.0
	for _, r := range rows {
		sum += r.Amount
	}
	return sum
}

func categoryTotals(rows []records.Expense) []widgets.BarPoint {
	totals := make(map[string]float64)
	for _, r := range rows {
		totals[r.CategoryName] += r.Amount
	}
	points := make([]widgets.BarPoint, 0, len(totals))
	for name, sum := range totals {
		points = append(points, widgets.BarPoint{Label: name, Value: sum})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	return points
}

func renderOverview(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	spent := totalExpenses(rc.Expenses)
	earned := totalIncome(rc.Income)
	lines := []string{
		fmt.Sprintf("Spent   %s  (%d records)", money(rc.Currency, spent), len(rc.Expenses)),
		fmt.Sprintf("Earned  %s  (%d records)", money(rc.Currency, earned), len(rc.Income)),
		fmt.Sprintf("Net     %s", money(rc.Currency, earned-spent)),
	}
	return strings.Join(lines, "\n")
}

func renderSpendingTrend(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	daily := make(map[string]float64)
	var days []string
	for _, r := range rc.Expenses {
		if _, seen := daily[r.Date]; !seen {
			days = append(days, r.Date)
		}
		daily[r.Date] += r.Amount
	}
	if len(days) == 0 {
		return "(no data)"
	}
	sort.Strings(days)
	values := make([]float64, len(days))
	for i, d := range days {
		values[i] = daily[d]
	}
	spark := widgets.Sparkline{Values: values}.Render(width, 1)
	return fmt.Sprintf("%s\n%s … %s", spark, days[0], days[len(days)-1])
}

func renderCategoryBreakdown(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	return widgets.BarChart{Data: categoryTotals(rc.Expenses)}.Render(width, height)
}

func renderIncomeVsExpense(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	return widgets.BarChart{Data: []widgets.BarPoint{
		{Label: "Income", Value: totalIncome(rc.Income)},
		{Label: "Expense", Value: totalExpenses(rc.Expenses)},
	}}.Render(width, height)
}

func renderRecentTransactions(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	rows := append([]records.Expense(nil), rc.Expenses...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	table := widgets.Table{Headers: []string{"Date", "Amount", "Category"}}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{r.Date, money(rc.Currency, r.Amount), r.CategoryName})
	}
	return table.Render(width, height)
}

func renderTopExpenses(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	rows := append([]records.Expense(nil), rc.Expenses...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
	list := widgets.List{}
	for _, r := range rows {
		desc := r.Description
		if desc == "" {
			desc = r.CategoryName
		}
		list.Items = append(list.Items, fmt.Sprintf("%s  %s", money(rc.Currency, r.Amount), desc))
	}
	return list.Render(width, height)
}

func renderBudgetProgress(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	earned := totalIncome(rc.Income)
	if earned <= 0 {
		return "(no income this period)"
	}
	spent := totalExpenses(rc.Expenses)
	gauge := widgets.Gauge{Ratio: spent / earned}.Render(width, 1)
	return fmt.Sprintf("spent vs income\n%s", gauge)
}

func renderSavingsGoal(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	earned := totalIncome(rc.Income)
	if earned <= 0 {
		return "(no income this period)"
	}
	saved := earned - totalExpenses(rc.Expenses)
	if saved < 0 {
		saved = 0
	}
	gauge := widgets.Gauge{Ratio: saved / earned}.Render(width, 1)
	return fmt.Sprintf("saved %s\n%s", money(rc.Currency, saved), gauge)
}

func renderMonthlySummary(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	type monthRow struct{ spent, earned float64 }
	byMonth := make(map[string]*monthRow)
	var months []string
	monthKey := func(date string) (string, bool) {
		if len(date) < 7 {
			return "", false
		}
		return date[:7], true
	}
	for _, r := range rc.Expenses {
		if key, ok := monthKey(r.Date); ok {
			if byMonth[key] == nil {
				byMonth[key] = &monthRow{}
				months = append(months, key)
			}
			byMonth[key].spent += r.Amount
		}
	}
	for _, r := range rc.Income {
		if key, ok := monthKey(r.Date); ok {
			if byMonth[key] == nil {
				byMonth[key] = &monthRow{}
				months = append(months, key)
			}
			byMonth[key].earned += r.Amount
		}
	}
	if len(months) == 0 {
		return "(no data)"
	}
	sort.Strings(months)
	table := widgets.Table{Headers: []string{"Month", "Spent", "Earned"}}
	for _, m := range months {
		table.Rows = append(table.Rows, []string{m, money(rc.Currency, byMonth[m].spent), money(rc.Currency, byMonth[m].earned)})
	}
	return table.Render(width, height)
}

func renderAccountBalance(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	balance := totalIncome(rc.Income) - totalExpenses(rc.Expenses)
	return fmt.Sprintf("Period balance\n\n  %s", money(rc.Currency, balance))
}

func renderCalendarHeatmap(rc RenderContext, width, height int) string {
	if rc.Loading {
		return "loading…"
	}
	daily := make(map[string]float64)
	var days []string
	for _, r := range rc.Expenses {
		if _, seen := daily[r.Date]; !seen {
			days = append(days, r.Date)
		}
		daily[r.Date] += r.Amount
	}
	if len(days) == 0 {
		return "(no data)"
	}
	sort.Strings(days)
	maxV := 0.0
	for _, v := range daily {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	glyphs := []rune(" ░▒▓█")
	var b strings.Builder
	for i, d := range days {
		idx := int((daily[d] / maxV) * float64(len(glyphs)-1))
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(glyphs[idx])
		if (i+1)%maxInt(1, width-4) == 0 {
			b.WriteByte('\n')
		}
	}
	return fmt.Sprintf("%s … %s\n%s", days[0], days[len(days)-1], b.String())
}

func renderFilterPanel(rc RenderContext, width, height int) string {
	lo, hi := rc.Filters.AmountRange[0], rc.Filters.AmountRange[1]
	rangeNote := ""
	if rc.PendingRange != nil {
		lo, hi = rc.PendingRange[0], rc.PendingRange[1]
		rangeNote = " (pending)"
	}
	lines := []string{
		fmt.Sprintf("Period  %s", periodLabel(rc.Period)),
		fmt.Sprintf("Amount  %s – %s of %s%s", money(rc.Currency, lo), money(rc.Currency, hi), money(rc.Currency, rc.MaxAmount), rangeNote),
		"",
		"Categories (1-9 toggles)",
	}
	for i, name := range rc.Categories {
		if i >= 9 {
			break
		}
		mark := " "
		if rc.Filters.Categories[name] {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf(" %d [%s] %s", i+1, mark, name))
	}
	return strings.Join(lines, "\n")
}

func periodLabel(p filter.Period) string {
	switch {
	case p.AllTime():
		return "all time"
	case p.Partial():
		return "incomplete range"
	default:
		return fmt.Sprintf("%s → %s (%s)", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"), p.Preset)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

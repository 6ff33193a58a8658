package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-features/internal/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	noteStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(headers...)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func renderReport(report types.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Evaluation " + report.ID))
	b.WriteString("\n")

	agreement := newTable("Resolution", "Bars", "Price acc", "Direction acc", "Agreement", "Concordant acc", "High conf", "High conf acc")
	walkForward := newTable("Resolution", "Folds", "Completed", "Skipped", "Mean RMSE", "Mean R²")
	pnl := newTable("Resolution", "Backtest P&L", "Lookbacks")

	for _, r := range report.Resolutions {
		res := fmt.Sprintf("%dm", r.Resolution)
		a := r.Agreement

		agreement.Row(res,
			fmt.Sprintf("%d", a.Total),
			pct(a.PriceAccuracy),
			pct(a.DirectionAccuracy),
			fmt.Sprintf("%d (%s)", a.Agreeing, pct(a.AgreementRate)),
			pct(a.ConcordantAccuracy),
			fmt.Sprintf("%d (%s)", a.HighConfidence, pct(a.HighConfidenceRate)),
			pct(a.HighConfidenceAccuracy),
		)

		wf := r.WalkForward
		walkForward.Row(res,
			fmt.Sprintf("%d", len(wf.Folds)),
			fmt.Sprintf("%d", wf.Completed),
			fmt.Sprintf("%d", wf.Skipped),
			optionalFloat(wf.MeanRMSE),
			optionalFloat(wf.MeanRSquared),
		)

		lookbacks := make([]string, len(r.Lookbacks))
		for i, lb := range r.Lookbacks {
			lookbacks[i] = fmt.Sprintf("%s: %s", lb.Name, lb.PnL.StringFixed(4))
		}

		pnl.Row(res, r.BacktestPnL.StringFixed(4), strings.Join(lookbacks, ", "))
	}

	b.WriteString(agreement.String())
	b.WriteString("\n")
	b.WriteString(walkForward.String())
	b.WriteString("\n")
	b.WriteString(pnl.String())

	return b.String()
}

func optionalFloat(v optional.Option[float64]) string {
	if v.IsNone() {
		return "n/a"
	}

	return fmt.Sprintf("%.4f", v.Unwrap())
}

func renderPatterns(resolution int, stats []types.PatternStat) string {
	title := titleStyle.Render(fmt.Sprintf("Patterns %dm", resolution))
	if len(stats) == 0 {
		return title + "\n" + noteStyle.Render("no pattern set reached the minimum occurrences")
	}

	t := newTable("Patterns", "Count", "Hits", "Hit rate")
	for _, s := range stats {
		t.Row(strings.Join(s.Patterns, " + "), fmt.Sprintf("%d", s.Count), fmt.Sprintf("%d", s.Hits), pct(s.HitRate*100))
	}

	return title + "\n" + t.String()
}

func renderSignals(signals []types.Signal) string {
	if len(signals) == 0 {
		return noteStyle.Render("no signal")
	}

	t := newTable("Time", "Resolution", "Direction", "Close", "Forecast", "Confidence")
	for _, s := range signals {
		t.Row(
			s.Time.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%dm", s.Resolution),
			strings.ToUpper(string(s.Type)),
			fmt.Sprintf("%.4f", s.Close),
			fmt.Sprintf("%.4f", s.PredictedClose),
			fmt.Sprintf("%.2f", s.Confidence),
		)
	}

	return t.String()
}

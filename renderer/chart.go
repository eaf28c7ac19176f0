// Package renderer formats Smart Wallet reports as markdown strings, ready
// for terminal display.
package renderer

import (
	"fmt"
	"io"
	"strings"

	smartwallet "github.com/Debraj8301/smart-wallet"
	"github.com/Debraj8301/smart-wallet/api"
)

// barWidth is the character width of a full behavioral-tag bar.
const barWidth = 30

// StatsMarkdown renders a full statistics report: overview, category totals,
// behavioral-tag spending, and payment-method distribution. Empty charts are
// skipped entirely. The palette continues from one pie-style chart to the
// next so the two never reuse the same leading colors.
func StatsMarkdown(report *api.StatsReport, month, currency string) string {
	var sb strings.Builder

	if month == "" {
		sb.WriteString("# Spending report\n\n")
	} else {
		fmt.Fprintf(&sb, "# Spending report — %s\n\n", month)
	}
	fmt.Fprintf(&sb, "%d transactions (%d unverified, %d flagged)\n\n",
		report.Overview.TotalTransactions, report.Overview.Unverified, report.Overview.Flagged)

	categories := smartwallet.ToSeries(report.Charts.CategoryDebits, 0)
	payments := smartwallet.ToSeries(report.Charts.PaymentTypeDistribution, len(categories))
	behavior := smartwallet.ToBehaviorSeries(report.Charts.TagSpending)

	ConditionalBlock(&sb, func(w io.Writer) bool {
		renderSeries(w, "Spending by category", categories, currency)
		return len(categories) > 0
	})
	ConditionalBlock(&sb, func(w io.Writer) bool {
		renderBehavior(w, "Behavioral spending", behavior, currency)
		return len(behavior) > 0
	})
	ConditionalBlock(&sb, func(w io.Writer) bool {
		renderSeries(w, "Payment methods", payments, currency)
		return len(payments) > 0
	})

	return sb.String()
}

// renderSeries writes one colored series as a markdown table with each
// entry's share of the series total.
func renderSeries(w io.Writer, title string, s smartwallet.ChartSeries, currency string) {
	fmt.Fprintf(w, "## %s\n\n", title)
	fmt.Fprintf(w, "| | Label | Amount | Share |\n")
	fmt.Fprintf(w, "|---|---|---:|---:|\n")
	total := s.Total()
	for _, e := range s {
		share := smartwallet.Percent(0)
		if total > 0 {
			share = smartwallet.Percent(100 * e.Amount / total)
		}
		fmt.Fprintf(w, "| `%s` | %s | %s | %s |\n",
			e.Color, e.Label, smartwallet.FormatAmount(e.Amount, currency), share)
	}
	fmt.Fprintf(w, "\n")
}

// renderBehavior writes the behavioral-tag series as bars scaled by each
// entry's width percent.
func renderBehavior(w io.Writer, title string, s smartwallet.BehaviorTagSeries, currency string) {
	fmt.Fprintf(w, "## %s\n\n", title)
	longest := 0
	for _, e := range s {
		if len(e.Label) > longest {
			longest = len(e.Label)
		}
	}
	for _, e := range s {
		n := int(float64(e.WidthPercent) / 100 * barWidth)
		if n < 1 {
			n = 1
		}
		fmt.Fprintf(w, "    %-*s %s %s\n",
			longest, e.Label, strings.Repeat("█", n), smartwallet.FormatAmount(e.Amount, currency))
	}
	fmt.Fprintf(w, "\n")
}

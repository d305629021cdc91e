// Package report ranks and renders scan results. It makes no domain
// decisions; ordering and formatting only.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/normalize"
	"github.com/olekukonko/tablewriter"
)

// Rank returns a copy of the opportunities sorted by descending profit
// percentage. The sort is stable: ties keep the evaluator's emission order,
// so a given input always produces the same ranking.
func Rank(opps []arbitrage.Opportunity) []arbitrage.Opportunity {
	ranked := make([]arbitrage.Opportunity, len(opps))
	copy(ranked, opps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ProfitPct > ranked[j].ProfitPct
	})
	return ranked
}

// Reporter renders ranked opportunities and market snapshots to a writer.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// RenderOpportunities prints the ranked opportunity list: a summary table
// followed by a detail block per opportunity.
func (r *Reporter) RenderOpportunities(opps []arbitrage.Opportunity, minProfitPct float64) {
	if len(opps) == 0 {
		fmt.Fprintf(r.out, "\nNO PROFITABLE ARBITRAGE OPPORTUNITIES FOUND (minimum profit: %.2f%%)\n", minProfitPct)
		return
	}

	fmt.Fprintf(r.out, "\nFOUND %d ARBITRAGE OPPORTUNITIES\n\n", len(opps))

	table := tablewriter.NewWriter(r.out)
	table.Header("#", "Strategy", "Kalshi", "K price", "K fee", "Polymarket", "P price", "P fee", "Cost", "Profit", "Profit %")

	for i, opp := range opps {
		table.Append(
			fmt.Sprintf("%d", i+1),
			opp.Direction.Describe(),
			truncate(opp.KalshiTitle, 30),
			fmt.Sprintf("%.1fc", opp.KalshiPriceCents),
			fmt.Sprintf("%.2fc", opp.KalshiFeeCents),
			truncate(opp.PolymarketTitle, 30),
			fmt.Sprintf("%.1fc", opp.PolymarketPriceCents),
			fmt.Sprintf("%.2fc", opp.PolymarketFeeCents),
			fmt.Sprintf("%.2fc", opp.TotalCostCents),
			fmt.Sprintf("%.2fc", opp.ProfitCents),
			fmt.Sprintf("%.2f%%", opp.ProfitPct),
		)
	}
	table.Render()

	for i, opp := range opps {
		fmt.Fprintf(r.out, "\n#%d - %.2f%% profit\n", i+1, opp.ProfitPct)
		fmt.Fprintf(r.out, "Strategy:   %s\n", opp.Direction.Describe())
		fmt.Fprintf(r.out, "Kalshi:     %s\n", truncate(opp.KalshiTitle, 60))
		fmt.Fprintf(r.out, "            Ticker: %s\n", opp.KalshiIdentifier)
		fmt.Fprintf(r.out, "            Price: %.1fc + Fee: %.2fc\n", opp.KalshiPriceCents, opp.KalshiFeeCents)
		fmt.Fprintf(r.out, "Polymarket: %s\n", truncate(opp.PolymarketTitle, 60))
		fmt.Fprintf(r.out, "            Market: %s\n", opp.PolymarketIdentifier)
		fmt.Fprintf(r.out, "            Price: %.1fc + Fee: %.2fc\n", opp.PolymarketPriceCents, opp.PolymarketFeeCents)
		fmt.Fprintf(r.out, "Total Cost: %.2fc\n", opp.TotalCostCents)
		fmt.Fprintf(r.out, "Profit:     %.2fc (%.2f%%)\n", opp.ProfitCents, opp.ProfitPct)
	}
	fmt.Fprintln(r.out)
}

// RenderMarkets prints a snapshot table of normalized records from both venues.
func (r *Reporter) RenderMarkets(records []normalize.Market) {
	if len(records) == 0 {
		fmt.Fprintln(r.out, "\nNo BTC markets found")
		return
	}

	fmt.Fprintf(r.out, "\n%d BTC markets\n\n", len(records))

	table := tablewriter.NewWriter(r.out)
	table.Header("#", "Venue", "Market", "Identifier", "Yes ask", "No ask", "Volume")

	for i, rec := range records {
		table.Append(
			fmt.Sprintf("%d", i+1),
			string(rec.Venue),
			truncate(rec.DisplayKey, 45),
			rec.Identifier,
			centsLabel(rec.YesAskCents),
			centsLabel(rec.NoAskCents),
			fmt.Sprintf("%.0f", rec.Volume),
		)
	}
	table.Render()
}

func centsLabel(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1fc", *v)
}

// truncate shortens s to maxLen runes. Titles can carry multi-byte runes, so
// the cut must never split one.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

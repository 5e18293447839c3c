package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"stock_compare/internal/feature/comparison/domain/entity"
)

// formatGain renders a percentage with two decimals and an explicit sign.
func formatGain(pct float64) string {
	d := decimal.NewFromFloat(pct).Round(2)
	s := d.StringFixed(2)
	if d.IsPositive() {
		return "+" + s + "%"
	}
	if d.IsZero() {
		return "0.00%"
	}
	return s + "%"
}

// renderSummary prints one row per symbol: window actually covered, final gain and source tier.
func renderSummary(w io.Writer, res entity.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tFROM\tTO\tDAYS\tGAIN\tSOURCE")
	for _, s := range res.Series {
		first, last := s.Points[0], s.Points[len(s.Points)-1]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			s.Symbol,
			first.Date.Format(entity.DateLayout),
			last.Date.Format(entity.DateLayout),
			len(s.Points),
			formatGain(last.GainPct),
			source(s.Source),
		)
	}
	_ = tw.Flush()
}

// renderSeries prints one row per trading day with a column per symbol.
// Days missing for a symbol are left blank.
func renderSeries(w io.Writer, res entity.ComparisonResult) {
	var dates []time.Time
	byDate := make([]map[time.Time]float64, len(res.Series))
	for i, s := range res.Series {
		byDate[i] = make(map[time.Time]float64, len(s.Points))
		for _, p := range s.Points {
			if _, seen := byDate[i][p.Date]; !seen {
				dates = append(dates, p.Date)
			}
			byDate[i][p.Date] = p.GainPct
		}
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	dates = slices.CompactFunc(dates, func(a, b time.Time) bool { return a.Equal(b) })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"DATE"}
	for _, s := range res.Series {
		header = append(header, s.Symbol.String())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, d := range dates {
		row := []string{d.Format(entity.DateLayout)}
		for i := range res.Series {
			if g, ok := byDate[i][d]; ok {
				row = append(row, formatGain(g))
			} else {
				row = append(row, "")
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	_ = tw.Flush()
}

func source(sel entity.SourceSelection) string {
	s := sel.Provider + "/" + string(sel.Tier)
	if sel.FellBack {
		s += " (fallback)"
	}
	return s
}

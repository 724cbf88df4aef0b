// Package chart renders the principal versus interest breakdown of a loan as
// a standalone HTML pie chart.
package chart

import (
	"fmt"
	"io"

	"github.com/GiftinTech/Loan-Calculator/pkg/amortization"
	"github.com/GiftinTech/Loan-Calculator/pkg/format"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	PageTitle      = "Loan breakdown"
	SeriesName     = "breakdown"
	PrincipalLabel = "Principal"
	InterestLabel  = "Interest"
)

// Breakdown builds the pie chart for a summary. Slice values are plain
// numbers so the chart library can compute percentages.
func Breakdown(summary amortization.Summary, symbol string) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: PageTitle}),
		charts.WithTitleOpts(opts.Title{
			Title: PageTitle,
			Subtitle: fmt.Sprintf("Total payment %s over %d installments",
				format.Currency(summary.TotalPayment, symbol), summary.Installments()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	pie.AddSeries(SeriesName, []opts.PieData{
		{Name: PrincipalLabel, Value: summary.Principal.Round(2).InexactFloat64()},
		{Name: InterestLabel, Value: summary.TotalInterest.InexactFloat64()},
	}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))

	return pie
}

// RenderBreakdown writes the breakdown chart page for summary to w.
func RenderBreakdown(w io.Writer, summary amortization.Summary, symbol string) error {
	if err := Breakdown(summary, symbol).Render(w); err != nil {
		return fmt.Errorf("failed to render breakdown chart: %w", err)
	}
	return nil
}

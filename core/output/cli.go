package output

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"tax-dashboard/core/indicator"
	"tax-dashboard/core/tax"
	"tax-dashboard/core/ui"
	"tax-dashboard/internal/errors"
)

// CLIFormatter renders reports as terminal tables
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a terminal formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes the report
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	out := ui.NewWriter(w, f.noColor)

	switch {
	case report.Assessment != nil:
		f.assessment(out, report.Assessment)
	case report.Comparison != nil:
		f.comparison(out, report.Comparison)
	case report.Schedules != nil:
		for _, s := range report.Schedules {
			f.schedule(out, s)
		}
	case report.Analysis != nil:
		f.analysis(out, report.Analysis)
	default:
		return errors.InvalidInput("empty report")
	}
	return nil
}

func (f *CLIFormatter) assessment(out *ui.Writer, a *tax.Assessment) {
	out.Header(fmt.Sprintf("Tax Assessment (%s)", a.Schedule))
	out.Field("Income", FormatMoney(a.Income, a.Currency))
	out.Field("Tax", out.Color(ui.Bold, FormatMoney(a.Tax, a.Currency)))
	out.Field("Net income", FormatMoney(a.NetIncome(), a.Currency))
	out.Field("Effective rate", FormatRate(a.EffectiveRate))
	out.Field("Marginal rate", FormatRate(a.MarginalRate))

	if len(a.Slices) == 0 {
		return
	}
	out.Println("")
	table := out.NewTable("Band", "Rate", "Taxable", "Tax")
	for _, s := range a.Slices {
		table.AddRow(
			FormatBand(s.Lower, s.Upper, a.Currency),
			FormatRate(s.Rate),
			FormatMoney(s.Taxable, a.Currency),
			FormatMoney(s.Tax, a.Currency),
		)
	}
	table.Render()
}

func (f *CLIFormatter) comparison(out *ui.Writer, c *tax.Comparison) {
	currency := c.Base.Currency
	out.Header("Schedule Comparison")
	out.Field("Income", FormatMoney(c.Income, currency))
	out.Println("")

	table := out.NewTable("Schedule", "Tax", "Effective", "Marginal")
	for _, a := range []*tax.Assessment{c.Base, c.Proposed} {
		table.AddRow(a.Schedule, FormatMoney(a.Tax, currency), FormatRate(a.EffectiveRate), FormatRate(a.MarginalRate))
	}
	table.Render()

	out.Println("")
	out.Field("Difference", out.Delta(FormatSignedMoney(c.Delta, currency), c.Delta.Sign()))
}

func (f *CLIFormatter) schedule(out *ui.Writer, s tax.Schedule) {
	title := s.Name
	if s.Description != "" {
		title += " - " + s.Description
	}
	out.Header(title)

	table := out.NewTable("Band", "Rate")
	lower := decimal.Zero
	for _, b := range s.Brackets {
		table.AddRow(FormatBand(lower, b.UpTo, s.Currency), FormatRate(b.Rate))
		if b.UpTo != nil {
			lower = *b.UpTo
		}
	}
	table.Render()
}

func (f *CLIFormatter) analysis(out *ui.Writer, a *indicator.Analysis) {
	out.Header("Moving Average Crossovers")
	out.Field("Closes", fmt.Sprintf("%d", len(a.Closes)))
	out.Field("Windows", fmt.Sprintf("%d / %d days", a.ShortWin, a.LongWin))

	if n := len(a.Closes); n > 0 {
		last := n - 1
		out.Field("Last close", a.Closes[last].Price.StringFixed(2))
		out.Field(fmt.Sprintf("%d-day SMA", a.ShortWin), pointString(a.Short[last]))
		out.Field(fmt.Sprintf("%d-day SMA", a.LongWin), pointString(a.Long[last]))
	}

	if len(a.Crossovers) == 0 {
		out.Println("")
		out.Warning("no crossovers in range")
		return
	}

	out.Println("")
	table := out.NewTable("Date", "Signal", "Close", "Short", "Long")
	for _, c := range a.Crossovers {
		table.AddRow(
			a.Closes[c.Index].Date.Format(time.DateOnly),
			string(c.Kind),
			a.Closes[c.Index].Price.StringFixed(2),
			pointString(a.Short[c.Index]),
			pointString(a.Long[c.Index]),
		)
	}
	table.Render()
}

func pointString(p indicator.Point) string {
	if !p.Ready {
		return "n/a"
	}
	return p.Value.StringFixed(2)
}

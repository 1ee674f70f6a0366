package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"tax-dashboard/core/tax"
	"tax-dashboard/internal/errors"
)

// MarkdownFormatter renders reports as markdown tables
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter { return &MarkdownFormatter{} }

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var b strings.Builder

	switch {
	case report.Assessment != nil:
		a := report.Assessment
		fmt.Fprintf(&b, "## Tax assessment: %s\n\n", a.Schedule)
		fmt.Fprintf(&b, "Tax on **%s** is **%s** (effective %s, marginal %s).\n\n",
			FormatMoney(a.Income, a.Currency), FormatMoney(a.Tax, a.Currency),
			FormatRate(a.EffectiveRate), FormatRate(a.MarginalRate))
		b.WriteString("| Band | Rate | Taxable | Tax |\n|---|---:|---:|---:|\n")
		for _, s := range a.Slices {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", FormatBand(s.Lower, s.Upper, a.Currency),
				FormatRate(s.Rate), FormatMoney(s.Taxable, a.Currency), FormatMoney(s.Tax, a.Currency))
		}
	case report.Comparison != nil:
		c := report.Comparison
		cur := c.Base.Currency
		fmt.Fprintf(&b, "## Schedule comparison at %s\n\n", FormatMoney(c.Income, cur))
		b.WriteString("| Schedule | Tax | Effective | Marginal |\n|---|---:|---:|---:|\n")
		for _, a := range []*tax.Assessment{c.Base, c.Proposed} {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", a.Schedule, FormatMoney(a.Tax, cur),
				FormatRate(a.EffectiveRate), FormatRate(a.MarginalRate))
		}
		fmt.Fprintf(&b, "\nDifference: **%s**\n", FormatSignedMoney(c.Delta, cur))
	case report.Schedules != nil:
		for _, s := range report.Schedules {
			fmt.Fprintf(&b, "## %s\n\n| Band | Rate |\n|---|---:|\n", s.Name)
			lower := decimal.Zero
			for _, br := range s.Brackets {
				fmt.Fprintf(&b, "| %s | %s |\n", FormatBand(lower, br.UpTo, s.Currency), FormatRate(br.Rate))
				if br.UpTo != nil {
					lower = *br.UpTo
				}
			}
			b.WriteString("\n")
		}
	case report.Analysis != nil:
		a := report.Analysis
		fmt.Fprintf(&b, "## %d/%d-day SMA crossovers\n\n| Date | Signal | Close |\n|---|---|---:|\n", a.ShortWin, a.LongWin)
		for _, c := range a.Crossovers {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", a.Closes[c.Index].Date.Format("2006-01-02"),
				c.Kind, a.Closes[c.Index].Price.StringFixed(2))
		}
	default:
		return errors.InvalidInput("empty report")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

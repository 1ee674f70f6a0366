// Package cmd - tax and compare commands
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tax-dashboard/core/output"
	"tax-dashboard/core/tax"
	"tax-dashboard/internal/errors"
	"tax-dashboard/internal/logging"
)

var (
	income       string
	scheduleName string
	baseName     string
	proposedName string
)

// taxCmd assesses one income under one schedule
var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Calculate the tax owed on an income",
	Long: `Calculate progressive income tax with a per-bracket breakdown.

Examples:
  tax-dashboard tax --income 45000
  tax-dashboard tax --income 200000 --schedule proposed --format json`,
	Args: cobra.NoArgs,
	RunE: runTax,
}

// compareCmd assesses one income under two schedules
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the tax owed under two schedules",
	Args:  cobra.NoArgs,
	RunE:  runCompare,
}

func init() {
	taxCmd.Flags().StringVarP(&income, "income", "i", "", "annual taxable income")
	taxCmd.Flags().StringVarP(&scheduleName, "schedule", "s", "", "schedule name (default from config)")
	_ = taxCmd.MarkFlagRequired("income")

	compareCmd.Flags().StringVarP(&income, "income", "i", "", "annual taxable income")
	compareCmd.Flags().StringVar(&baseName, "base", "", "base schedule (default from config)")
	compareCmd.Flags().StringVar(&proposedName, "proposed", "", `proposed schedule (default "proposed")`)
	_ = compareCmd.MarkFlagRequired("income")
}

func parseIncome(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.InvalidInputf("income %q is not a number", raw)
	}
	return amount, nil
}

func runTax(cmd *cobra.Command, args []string) error {
	amount, err := parseIncome(income)
	if err != nil {
		return err
	}
	reg, err := registry()
	if err != nil {
		return err
	}
	schedule, err := reg.Resolve(scheduleName)
	if err != nil {
		return err
	}

	a, err := schedule.Assess(amount)
	if err != nil {
		return err
	}
	logging.Debug("tax assessed", zap.String("schedule", a.Schedule), zap.String("tax", a.Tax.String()))

	return render(cmd, &output.Report{Assessment: a})
}

func runCompare(cmd *cobra.Command, args []string) error {
	amount, err := parseIncome(income)
	if err != nil {
		return err
	}
	reg, err := registry()
	if err != nil {
		return err
	}
	base, proposed, err := reg.Pair(baseName, proposedName)
	if err != nil {
		return err
	}

	c, err := tax.Compare(amount, base, proposed)
	if err != nil {
		return err
	}
	logging.Debug("schedules compared", zap.String("delta", c.Delta.String()))

	return render(cmd, &output.Report{Comparison: c})
}

// Package cmd - sma command
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tax-dashboard/adapters/prices"
	"tax-dashboard/core/indicator"
	"tax-dashboard/core/output"
	"tax-dashboard/internal/config"
	"tax-dashboard/internal/errors"
	"tax-dashboard/internal/logging"
)

var (
	pricesFile  string
	shortWindow int
	longWindow  int
)

// smaCmd computes short and long moving averages over a price file
var smaCmd = &cobra.Command{
	Use:   "sma",
	Short: "Compute moving-average crossovers from daily closes",
	Long: `Compute short and long simple moving averages of daily close prices and
report where they cross.

The file is a CSV export with Date and Close columns, or two unheaded
columns (date, close).

Examples:
  tax-dashboard sma --file aapl.csv
  tax-dashboard sma --file aapl.csv --short 20 --long 50 --format markdown`,
	Args: cobra.NoArgs,
	RunE: runSMA,
}

func init() {
	smaCmd.Flags().StringVar(&pricesFile, "file", "", "CSV file of daily closes")
	smaCmd.Flags().IntVar(&shortWindow, "short", 0, "short window in days (default from config)")
	smaCmd.Flags().IntVar(&longWindow, "long", 0, "long window in days (default from config)")
	_ = smaCmd.MarkFlagRequired("file")
}

func runSMA(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	short, long := shortWindow, longWindow
	if short == 0 {
		short = cfg.Indicator.ShortWindow
	}
	if long == 0 {
		long = cfg.Indicator.LongWindow
	}

	closes, err := prices.ReadFile(pricesFile)
	if err != nil {
		return err
	}
	if len(closes) < long {
		logging.Warn("fewer closes than the long window", zap.Int("closes", len(closes)), zap.Int("window", long))
	}

	analysis, err := indicator.Analyze(closes, short, long)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return e.WithContext("file", pricesFile)
		}
		return err
	}
	return render(cmd, &output.Report{Analysis: analysis})
}

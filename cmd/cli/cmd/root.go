// Package cmd provides the CLI commands for tax-dashboard.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tax-dashboard/core/output"
	"tax-dashboard/core/tax"
	"tax-dashboard/core/ui"
	"tax-dashboard/internal/config"
	"tax-dashboard/internal/logging"
)

// Version is the CLI version
const Version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	outputFormat string
	noColor      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tax-dashboard",
	Short: "Progressive income tax and moving-average calculator",
	Long: `tax-dashboard computes progressive income tax over bracket schedules
and simple moving averages over daily close prices.

Examples:
  tax-dashboard tax --income 120000
  tax-dashboard compare --income 200000 --base current --proposed proposed
  tax-dashboard sma --file aapl.csv --short 40 --long 100`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI and reports any failure on stderr
func Execute() error {
	defer logging.Sync()
	err := rootCmd.Execute()
	if err != nil {
		ui.NewWriter(rootCmd.ErrOrStderr(), noColor || config.Get().Output.NoColor).Error("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tax-dashboard.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable terminal colors")

	// Add subcommands
	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(schedulesCmd)
	rootCmd.AddCommand(smaCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" {
		cfg.Output.DefaultFormat = outputFormat
	}
	if noColor {
		cfg.Output.NoColor = true
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	return nil
}

// registry builds the schedule registry from the active configuration
func registry() (*tax.Registry, error) {
	return config.Get().Registry()
}

// render writes a report in the configured format to stdout
func render(cmd *cobra.Command, report *output.Report) error {
	cfg := config.Get()
	f, err := output.NewRegistry(cfg.Output.NoColor).Get(output.Format(cfg.Output.DefaultFormat))
	if err != nil {
		return err
	}
	return f.Render(cmd.OutOrStdout(), report)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tax-dashboard version %s\n", Version)
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(config.Get())
	},
}

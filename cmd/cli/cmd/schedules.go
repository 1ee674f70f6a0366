package cmd

import (
	"github.com/spf13/cobra"

	"tax-dashboard/core/output"
)

// schedulesCmd lists the configured bracket tables
var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "List the available tax schedules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		return render(cmd, &output.Report{Schedules: reg.All()})
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bratMaciek/Yacht-Port-Simulation/config"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/model"
	"github.com/bratMaciek/Yacht-Port-Simulation/core/port"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the berth layout for a configuration",
	RunE:  printPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func printPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	plan := port.QuayPlan{
		StartGap:  cfg.Port.QuayStartGap,
		GapGrowth: cfg.Port.QuayGapGrowth,
		Cols:      cfg.Port.Cols,
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "grid %dx%d, slot %dm\n", cfg.Port.Rows, cfg.Port.Cols, cfg.Port.SlotSizeM)
	fmt.Fprintf(out, "quay columns: %v\n", plan.QuayColumns())
	for col := 0; col < cfg.Port.Cols; col++ {
		if plan.IsQuay(col) {
			continue
		}
		if kind := plan.Classify(col); kind != model.CellFree {
			fmt.Fprintf(out, "col %2d: %s\n", col, kind)
		}
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertiport/evtol-sim/config"
	"github.com/vertiport/evtol-sim/core/model"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the aircraft archetypes used to build the fleet",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	catalog := model.DefaultCatalog()
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		catalog = cfg.Simulation.Catalog
	}
	for _, a := range catalog {
		fmt.Fprintf(cmd.OutOrStdout(),
			"%s: %.0f mph, %.0f kWh, %.2f h charge, %.1f kWh/mi, %d pax, fault p=%.2f (max flight %.3f h)\n",
			a.Company, a.CruiseSpeed, a.BatteryKWh, a.ChargeHours, a.EnergyUse, a.Passengers, a.FaultProb, a.MaxFlightHours())
	}
	return nil
}

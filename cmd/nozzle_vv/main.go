package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "nozzle_vv",
		Short: "V&V comparison of CFD results against the FDA nozzle PIV benchmark",
		Long: `nozzle_vv compares OpenFOAM sample output for the FDA sudden-expansion
nozzle benchmark (Re = 500, laminar) against the published PIV
measurements.

It parses the experimental data file into labeled sections, reads the
simulation sample tables at the latest available time, aligns the
coordinate frames, and reports RMSE, MAE, R2, NRMSE and maximum error per
sampling location, together with comparison figures and a PDF summary.`,
	}

	rootCmd.PersistentFlags().String("case", ".", "Case directory")
	rootCmd.PersistentFlags().String("config", "", "Optional YAML case config overriding the defaults")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSyncCmd(),
		newAxialCmd(),
		newRadialCmd(),
		newPressureCmd(),
		newJetWidthCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nozzle_vv version %s\n", version)
		},
	}
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evprice/core/model"
)

var (
	estimateIn   model.VehicleInput
	estimateYear int
	estimateRng  float64
	estimateJSON bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the price of one vehicle",
	Example: `  evprice estimate --make TESLA --model "MODEL 3" --year 2022 \
    --type "Battery Electric Vehicle (BEV)" \
    --cafv "Clean Alternative Fuel Vehicle Eligible" --range 300 \
    --county King --utility "CITY OF SEATTLE - (WA)" --district 43 --city Seattle`,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVar(&estimateIn.Make, "make", "", "manufacturer")
	f.StringVar(&estimateIn.Model, "model", "", "model name")
	f.IntVar(&estimateYear, "year", 0, "model year")
	f.StringVar(&estimateIn.EVType, "type", "", "electric vehicle type")
	f.StringVar(&estimateIn.CAFVEligibility, "cafv", "", "clean alternative fuel vehicle eligibility")
	f.Float64Var(&estimateRng, "range", 0, "electric range in miles")
	f.StringVar(&estimateIn.County, "county", "", "county")
	f.StringVar(&estimateIn.ElectricUtility, "utility", "", "electric utility")
	f.StringVar(&estimateIn.LegislativeDistrict, "district", "", "legislative district")
	f.StringVar(&estimateIn.City, "city", "", "city")
	f.BoolVar(&estimateJSON, "json", false, "print the full estimate as JSON")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	in := estimateIn
	// unset numeric flags stay missing so validation can name them
	if cmd.Flags().Changed("year") {
		in.ModelYear = &estimateYear
	}
	if cmd.Flags().Changed("range") {
		in.ElectricRange = &estimateRng
	}

	p, err := buildPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer p.Close()

	est, err := p.Estimator.Estimate(in)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if estimateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(est)
	}
	label := ""
	if est.Demo {
		label = " (demo)"
	}
	if _, err := fmt.Fprintf(out, "%s%s\n", est.Formatted, label); err != nil {
		return err
	}
	for _, w := range est.Warnings {
		if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w); err != nil {
			return err
		}
	}
	return nil
}

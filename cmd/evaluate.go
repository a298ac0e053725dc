package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evprice/pkg/export"
)

var evaluateJSON bool

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Replay the reference dataset and report the model error",
	Long:  "Compares the model output with Expected_Price for every complete row. Errors are in thousands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer p.Close()
		ev, err := p.Estimator.Evaluate(p.Dataset)
		if err != nil {
			return err
		}
		if evaluateJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(ev)
		}
		return export.WriteEvaluation(cmd.OutOrStdout(), ev)
	},
}

func init() {
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(evaluateCmd)
}

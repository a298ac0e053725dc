package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evprice/pkg/export"
)

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the feature columns in the order the model expects",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer p.Close()
		schema := p.Estimator.Schema()
		switch schemaFormat {
		case "json":
			return export.WriteJSON(cmd.OutOrStdout(), schema)
		case "csv":
			return export.WriteCSV(cmd.OutOrStdout(), schema)
		default:
			return fmt.Errorf("unknown format %q (json or csv)", schemaFormat)
		}
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "json", "output format: json or csv")
	rootCmd.AddCommand(schemaCmd)
}

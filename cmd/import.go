package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	infradataset "github.com/kilianp07/evprice/infra/dataset"
)

var (
	importCSV   string
	importDelim string
	importDB    string
	importPG    string
	importTable string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy a CSV export of the reference dataset into a SQLite or PostgreSQL table",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := infradataset.NewCSVSource(infradataset.CSVConfig{Path: importCSV, Delimiter: importDelim})
		if err != nil {
			return err
		}
		ds, err := src.Load(cmd.Context())
		if err != nil {
			return err
		}
		table := infradataset.TableConfig{Table: importTable}
		dest := importDB
		if importPG != "" {
			dest = "postgres"
			err = infradataset.WritePostgres(cmd.Context(), importPG, table, ds)
		} else {
			err = infradataset.WriteSQLite(cmd.Context(), importDB, table, ds)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows into %s\n", ds.Len(), dest)
		return err
	},
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importCSV, "csv", "", "CSV file to read")
	f.StringVar(&importDelim, "delimiter", "", "CSV delimiter, comma by default")
	f.StringVar(&importDB, "sqlite", "", "SQLite database to write")
	f.StringVar(&importPG, "postgres", "", "PostgreSQL connection URL to write to")
	f.StringVar(&importTable, "table", infradataset.DefaultTable, "destination table")
	_ = importCmd.MarkFlagRequired("csv")
	importCmd.MarkFlagsOneRequired("sqlite", "postgres")
	importCmd.MarkFlagsMutuallyExclusive("sqlite", "postgres")
	rootCmd.AddCommand(importCmd)
}

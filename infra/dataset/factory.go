package dataset

import (
	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/factory"
)

// init registers the built-in sources.
func init() {
	_ = dataset.RegisterSource("csv", func(conf map[string]any) (dataset.Source, error) {
		var c CSVConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewCSVSource(c)
	})
	_ = dataset.RegisterSource("sqlite", func(conf map[string]any) (dataset.Source, error) {
		var c SQLiteConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteSource(c)
	})
	_ = dataset.RegisterSource("postgres", func(conf map[string]any) (dataset.Source, error) {
		var c PostgresConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPostgresSource(c)
	})
}

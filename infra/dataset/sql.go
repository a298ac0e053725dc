package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/model"
)

// DefaultTable is queried when no table is configured.
const DefaultTable = "electric_vehicles"

// TableConfig selects the rows of a SQL source.
type TableConfig struct {
	Table string `json:"table"`
	// SkipExpectedPrice omits the Expected_Price column for tables that do
	// not carry it. Evaluation then has nothing to compare against.
	SkipExpectedPrice bool `json:"skip_expected_price"`
}

func (c TableConfig) table() string {
	if c.Table == "" {
		return DefaultTable
	}
	return c.Table
}

func (c TableConfig) columns() []string {
	if !c.SkipExpectedPrice {
		return dataset.Columns
	}
	cols := make([]string, 0, len(dataset.Columns)-1)
	for _, col := range dataset.Columns {
		if col != model.ColumnExpectedPrice {
			cols = append(cols, col)
		}
	}
	return cols
}

// selectQuery reads every column as text so both drivers scan into strings
// and numbers go through the same parsing as CSV values.
func (c TableConfig) selectQuery() string {
	cols := c.columns()
	exprs := make([]string, len(cols))
	for i, col := range cols {
		exprs[i] = fmt.Sprintf("CAST(%s AS TEXT)", quoteIdent(col))
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), quoteTable(c.table()))
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// quoteTable quotes every part of a possibly schema-qualified name.
func quoteTable(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, ".")
}

func rowFromText(cols []string, values []*string) dataset.Row {
	r := dataset.EmptyRow()
	for i, col := range cols {
		if values[i] != nil {
			r.Set(col, *values[i])
		}
	}
	return r
}

// textValue renders column of r for storage; missing values become NULL.
func textValue(r dataset.Row, column string) any {
	switch column {
	case model.ColumnModelYear, model.ColumnElectricRange, model.ColumnExpectedPrice:
		v := r.Number(column)
		if math.IsNaN(v) {
			return nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v := r.Category(column); v != "" {
		return v
	}
	return nil
}

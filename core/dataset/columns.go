package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/kilianp07/evprice/core/model"
)

// Columns lists every column a Row can hold, in the order sources select
// them.
var Columns = []string{
	model.ColumnMake,
	model.ColumnModel,
	model.ColumnModelYear,
	model.ColumnEVType,
	model.ColumnCAFVEligibility,
	model.ColumnElectricRange,
	model.ColumnCounty,
	model.ColumnElectricUtility,
	model.ColumnLegislativeDistrict,
	model.ColumnCity,
	model.ColumnExpectedPrice,
}

// NormalizeHeader maps a raw header such as "Electric Vehicle Type" to its
// column name "Electric_Vehicle_Type".
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	return strings.Join(strings.Fields(h), "_")
}

// EmptyRow returns a row whose numeric fields are missing.
func EmptyRow() Row {
	return Row{ModelYear: math.NaN(), ElectricRange: math.NaN(), ExpectedPrice: math.NaN()}
}

// Set stores raw under column. Numeric values that are empty or do not
// parse are stored as NaN. ok is false for columns a Row does not hold.
func (r *Row) Set(column, raw string) (ok bool) {
	switch column {
	case model.ColumnMake:
		r.Make = raw
	case model.ColumnModel:
		r.Model = raw
	case model.ColumnEVType:
		r.EVType = raw
	case model.ColumnCAFVEligibility:
		r.CAFVEligibility = raw
	case model.ColumnCounty:
		r.County = raw
	case model.ColumnElectricUtility:
		r.ElectricUtility = raw
	case model.ColumnLegislativeDistrict:
		r.LegislativeDistrict = raw
	case model.ColumnCity:
		r.City = raw
	case model.ColumnModelYear:
		r.ModelYear = parseNumber(raw)
	case model.ColumnElectricRange:
		r.ElectricRange = parseNumber(raw)
	case model.ColumnExpectedPrice:
		r.ExpectedPrice = parseNumber(raw)
	default:
		return false
	}
	return true
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

package dataset

import (
	"math"

	"github.com/kilianp07/evprice/core/model"
)

// Row is one historical vehicle record. Missing categorical values are empty
// strings and missing numeric values are NaN.
type Row struct {
	Make                string
	Model               string
	EVType              string
	CAFVEligibility     string
	County              string
	ElectricUtility     string
	LegislativeDistrict string
	City                string
	ModelYear           float64
	ElectricRange       float64
	ExpectedPrice       float64
}

// Category returns the categorical value stored under column.
func (r Row) Category(column string) string {
	switch column {
	case model.ColumnMake:
		return r.Make
	case model.ColumnModel:
		return r.Model
	case model.ColumnEVType:
		return r.EVType
	case model.ColumnCAFVEligibility:
		return r.CAFVEligibility
	case model.ColumnCounty:
		return r.County
	case model.ColumnElectricUtility:
		return r.ElectricUtility
	case model.ColumnLegislativeDistrict:
		return r.LegislativeDistrict
	case model.ColumnCity:
		return r.City
	}
	return ""
}

// Number returns the numeric value stored under column or NaN.
func (r Row) Number(column string) float64 {
	switch column {
	case model.ColumnModelYear:
		return r.ModelYear
	case model.ColumnElectricRange:
		return r.ElectricRange
	case model.ColumnExpectedPrice:
		return r.ExpectedPrice
	}
	return math.NaN()
}

// Vehicle converts the row into a model input. ok is false when one of the
// numeric attributes is missing.
func (r Row) Vehicle() (v model.Vehicle, ok bool) {
	if math.IsNaN(r.ModelYear) || math.IsNaN(r.ElectricRange) {
		return model.Vehicle{}, false
	}
	return model.Vehicle{
		Make:                r.Make,
		Model:               r.Model,
		ModelYear:           int(r.ModelYear),
		EVType:              r.EVType,
		CAFVEligibility:     r.CAFVEligibility,
		ElectricRange:       r.ElectricRange,
		County:              r.County,
		ElectricUtility:     r.ElectricUtility,
		LegislativeDistrict: r.LegislativeDistrict,
		City:                r.City,
	}, true
}

// Canonicalize normalizes every categorical field of the row.
func (r Row) Canonicalize() Row {
	r.Make = Canonical(r.Make)
	r.Model = Canonical(r.Model)
	r.EVType = Canonical(r.EVType)
	r.CAFVEligibility = Canonical(r.CAFVEligibility)
	r.County = Canonical(r.County)
	r.ElectricUtility = Canonical(r.ElectricUtility)
	r.LegislativeDistrict = Canonical(r.LegislativeDistrict)
	r.City = Canonical(r.City)
	return r
}

// Dataset is an immutable collection of rows.
type Dataset struct {
	rows []Row
}

// New copies rows into a new Dataset. Categorical values are canonicalized.
func New(rows []Row) *Dataset {
	cp := make([]Row, len(rows))
	for i, r := range rows {
		cp[i] = r.Canonicalize()
	}
	return &Dataset{rows: cp}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Row returns the i-th row.
func (d *Dataset) Row(i int) Row { return d.rows[i] }

// Each calls fn for every row in order.
func (d *Dataset) Each(fn func(i int, r Row)) {
	if d == nil {
		return
	}
	for i, r := range d.rows {
		fn(i, r)
	}
}

// Categories returns the values of a categorical column, missing values included.
func (d *Dataset) Categories(column string) []string {
	out := make([]string, 0, d.Len())
	d.Each(func(_ int, r Row) { out = append(out, r.Category(column)) })
	return out
}

// Numbers returns the non-missing values of a numeric column.
func (d *Dataset) Numbers(column string) []float64 {
	out := make([]float64, 0, d.Len())
	d.Each(func(_ int, r Row) {
		if v := r.Number(column); !math.IsNaN(v) {
			out = append(out, v)
		}
	})
	return out
}

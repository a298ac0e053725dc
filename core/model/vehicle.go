package model

import "math"

// Column names of the reference dataset, after spaces have been replaced by
// underscores. They double as the prefixes of the encoded feature names.
const (
	ColumnMake                = "Make"
	ColumnModel               = "Model"
	ColumnModelYear           = "Model_Year"
	ColumnEVType              = "Electric_Vehicle_Type"
	ColumnCAFVEligibility     = "Clean_Alternative_Fuel_Vehicle_(CAFV)_Eligibility"
	ColumnElectricRange       = "Electric_Range"
	ColumnCounty              = "County"
	ColumnElectricUtility     = "Electric_Utility"
	ColumnLegislativeDistrict = "Legislative_District"
	ColumnCity                = "City"
	ColumnExpectedPrice       = "Expected_Price"
)

// FrequencyColumns are replaced by their occurrence count in the reference dataset.
var FrequencyColumns = []string{ColumnCounty, ColumnElectricUtility, ColumnLegislativeDistrict, ColumnCity}

// OneHotColumns are expanded into one indicator per known category.
var OneHotColumns = []string{ColumnMake, ColumnModel, ColumnEVType, ColumnCAFVEligibility}

// ScaleColumns are standardized with the reference mean and standard deviation.
var ScaleColumns = []string{ColumnModelYear, ColumnElectricRange}

// Vehicle is a validated input record. It holds exactly the ten attributes
// the pricing model is trained on.
type Vehicle struct {
	Make                string  `json:"make"`
	Model               string  `json:"model"`
	ModelYear           int     `json:"model_year"`
	EVType              string  `json:"electric_vehicle_type"`
	CAFVEligibility     string  `json:"cafv_eligibility"`
	ElectricRange       float64 `json:"electric_range"`
	County              string  `json:"county"`
	ElectricUtility     string  `json:"electric_utility"`
	LegislativeDistrict string  `json:"legislative_district"`
	City                string  `json:"city"`
}

// Category returns the categorical value stored under the given column name.
// Unknown columns yield an empty string.
func (v Vehicle) Category(column string) string {
	switch column {
	case ColumnMake:
		return v.Make
	case ColumnModel:
		return v.Model
	case ColumnEVType:
		return v.EVType
	case ColumnCAFVEligibility:
		return v.CAFVEligibility
	case ColumnCounty:
		return v.County
	case ColumnElectricUtility:
		return v.ElectricUtility
	case ColumnLegislativeDistrict:
		return v.LegislativeDistrict
	case ColumnCity:
		return v.City
	}
	return ""
}

// Number returns the numeric value stored under the given column name or NaN.
func (v Vehicle) Number(column string) float64 {
	switch column {
	case ColumnModelYear:
		return float64(v.ModelYear)
	case ColumnElectricRange:
		return v.ElectricRange
	}
	return math.NaN()
}

// VehicleInput is the raw form of a Vehicle as received from a caller.
// Numeric fields are pointers so that a missing value can be told apart from
// zero.
type VehicleInput struct {
	Make                string   `json:"make"`
	Model               string   `json:"model"`
	ModelYear           *int     `json:"model_year"`
	EVType              string   `json:"electric_vehicle_type"`
	CAFVEligibility     string   `json:"cafv_eligibility"`
	ElectricRange       *float64 `json:"electric_range"`
	County              string   `json:"county"`
	ElectricUtility     string   `json:"electric_utility"`
	LegislativeDistrict string   `json:"legislative_district"`
	City                string   `json:"city"`
}

// Input converts a Vehicle back into its raw form.
func (v Vehicle) Input() VehicleInput {
	year := v.ModelYear
	rng := v.ElectricRange
	return VehicleInput{
		Make:                v.Make,
		Model:               v.Model,
		ModelYear:           &year,
		EVType:              v.EVType,
		CAFVEligibility:     v.CAFVEligibility,
		ElectricRange:       &rng,
		County:              v.County,
		ElectricUtility:     v.ElectricUtility,
		LegislativeDistrict: v.LegislativeDistrict,
		City:                v.City,
	}
}

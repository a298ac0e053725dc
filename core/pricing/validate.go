package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kilianp07/evprice/core/model"
)

// Limits bound the numeric inputs accepted by the Estimator.
type Limits struct {
	MinModelYear     int     `json:"min_model_year"`
	MaxModelYear     int     `json:"max_model_year"`
	MaxElectricRange float64 `json:"max_electric_range"`
}

// DefaultLimits accepts model years from 1997 up to next year and ranges up
// to 1000 miles.
func DefaultLimits(now time.Time) Limits {
	return Limits{MinModelYear: 1997, MaxModelYear: now.Year() + 1, MaxElectricRange: 1000}
}

// Validate checks in and returns the trimmed Vehicle. The returned error is
// a *ValidationError naming the first offending field.
func (l Limits) Validate(in model.VehicleInput) (model.Vehicle, error) {
	v := model.Vehicle{
		Make:                strings.TrimSpace(in.Make),
		Model:               strings.TrimSpace(in.Model),
		EVType:              strings.TrimSpace(in.EVType),
		CAFVEligibility:     strings.TrimSpace(in.CAFVEligibility),
		County:              strings.TrimSpace(in.County),
		ElectricUtility:     strings.TrimSpace(in.ElectricUtility),
		LegislativeDistrict: strings.TrimSpace(in.LegislativeDistrict),
		City:                strings.TrimSpace(in.City),
	}
	required := []struct {
		field string
		value string
	}{
		{"make", v.Make},
		{"model", v.Model},
		{"electric_vehicle_type", v.EVType},
		{"cafv_eligibility", v.CAFVEligibility},
		{"county", v.County},
		{"electric_utility", v.ElectricUtility},
		{"legislative_district", v.LegislativeDistrict},
		{"city", v.City},
	}
	for _, r := range required {
		if r.value == "" {
			return model.Vehicle{}, &ValidationError{Field: r.field, Reason: "is required"}
		}
	}

	if in.ModelYear == nil {
		return model.Vehicle{}, &ValidationError{Field: "model_year", Reason: "is required"}
	}
	if y := *in.ModelYear; y < l.MinModelYear || (l.MaxModelYear > 0 && y > l.MaxModelYear) {
		return model.Vehicle{}, &ValidationError{
			Field:  "model_year",
			Reason: fmt.Sprintf("must be between %d and %d", l.MinModelYear, l.MaxModelYear),
		}
	}
	v.ModelYear = *in.ModelYear

	if in.ElectricRange == nil {
		return model.Vehicle{}, &ValidationError{Field: "electric_range", Reason: "is required"}
	}
	r := *in.ElectricRange
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		return model.Vehicle{}, &ValidationError{Field: "electric_range", Reason: "must be a finite number"}
	case r < 0:
		return model.Vehicle{}, &ValidationError{Field: "electric_range", Reason: "must not be negative"}
	case l.MaxElectricRange > 0 && r > l.MaxElectricRange:
		return model.Vehicle{}, &ValidationError{
			Field:  "electric_range",
			Reason: fmt.Sprintf("must not exceed %g", l.MaxElectricRange),
		}
	}
	v.ElectricRange = r
	return v, nil
}

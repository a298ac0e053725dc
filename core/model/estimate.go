package model

// UnknownCategory identifies an input value that was absent from the
// reference statistics. It is not an error: the value contributes zero to
// the encoded vector.
type UnknownCategory struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Estimate is the priced result for one vehicle.
type Estimate struct {
	// Price is expressed in full currency units and is never negative.
	Price float64 `json:"price"`
	// Formatted renders Price with a currency symbol, thousands separators
	// and two decimals.
	Formatted string `json:"formatted"`
	// RawOutput is the model output in thousands of currency units.
	RawOutput float64 `json:"raw_output"`
	// Demo marks a placeholder value returned while no model is loaded.
	Demo bool `json:"demo"`
	// Anomaly is set when the model produced a negative price.
	Anomaly           bool              `json:"anomaly,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
	UnknownCategories []UnknownCategory `json:"unknown_categories,omitempty"`
}

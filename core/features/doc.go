// Package features turns a raw vehicle record into the numeric feature vector
// the pricing model was trained on.
//
// Statistics are fitted once from the reference dataset: a frequency table
// per location column, a one-hot vocabulary per categorical column and
// standardization parameters per numeric column. An Encoder combines those
// statistics with the model's expected column list and maps one record to one
// vector. Both are read-only after construction and safe for concurrent use.
//
// The encoded order is fixed:
//
//	Model_Year, Electric_Range,
//	County_freq, Electric_Utility_freq, Legislative_District_freq, City_freq,
//	Make_*, Model_*, Electric_Vehicle_Type_*, Clean_Alternative_Fuel_Vehicle_(CAFV)_Eligibility_*
//
// and is then projected onto the model schema, which is authoritative.
package features

// Package prediction wraps the frozen regression model. A Predictor receives a
// feature vector that already follows its schema and returns the model output
// in thousands of currency units. Predictors are immutable after loading and
// may be shared between goroutines.
package prediction

// Package pricing is the single entry point of the resale price pipeline:
// validate the raw input, encode it with statistics fitted once at startup,
// run the frozen model and rescale the output to currency units.
//
// An Estimator holds only read-only state after construction and is safe for
// concurrent use.
package pricing

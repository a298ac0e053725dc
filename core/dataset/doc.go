// Package dataset holds the immutable reference table the encoding
// statistics are derived from. The table is loaded once per process through a
// Source and never mutated afterwards, so it can be shared freely between
// goroutines.
package dataset

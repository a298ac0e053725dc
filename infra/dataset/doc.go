// Package dataset loads the reference vehicle dataset from CSV files,
// SQLite databases or PostgreSQL. Sources register themselves with
// core/dataset under the types "csv", "sqlite" and "postgres".
package dataset

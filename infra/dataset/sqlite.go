package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/evprice/core/dataset"
)

// SQLiteConfig locates the dataset table in a SQLite file.
type SQLiteConfig struct {
	Path string `json:"path"`
	TableConfig
}

// SQLiteSource reads the dataset from a SQLite database.
type SQLiteSource struct {
	cfg SQLiteConfig
}

// NewSQLiteSource validates cfg.
func NewSQLiteSource(cfg SQLiteConfig) (*SQLiteSource, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite source: path is required")
	}
	return &SQLiteSource{cfg: cfg}, nil
}

// Load queries every row of the configured table.
func (s *SQLiteSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	db, err := sql.Open("sqlite", s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite source: %w", err)
	}
	defer func() { _ = db.Close() }()

	cols := s.cfg.columns()
	rows, err := db.QueryContext(ctx, s.cfg.selectQuery())
	if err != nil {
		return nil, fmt.Errorf("sqlite source: query %s: %w", s.cfg.table(), err)
	}
	defer func() { _ = rows.Close() }()

	var out []dataset.Row
	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	text := make([]*string, len(cols))
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqlite source: scan: %w", err)
		}
		for i := range values {
			text[i] = nil
			if values[i].Valid {
				text[i] = &values[i].String
			}
		}
		out = append(out, rowFromText(cols, text))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite source: %w", err)
	}
	return dataset.New(out), nil
}

// WriteSQLite stores ds in table, creating it if needed. Existing rows are
// replaced. It is used to import a CSV export into a database.
func WriteSQLite(ctx context.Context, path string, cfg TableConfig, ds *dataset.Dataset) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	cols := dataset.Columns
	defs := make([]string, len(cols))
	idents := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		idents[i] = quoteIdent(c)
		defs[i] = idents[i] + " TEXT"
		marks[i] = "?"
	}
	table := quoteTable(cfg.table())

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(idents, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, len(cols))
	for i := 0; i < ds.Len(); i++ {
		r := ds.Row(i)
		for j, c := range cols {
			args[j] = textValue(r, c)
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

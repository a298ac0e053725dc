package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kilianp07/evprice/core/dataset"
)

// PostgresConfig locates the dataset table in a PostgreSQL database.
type PostgresConfig struct {
	URL string `json:"url"`
	TableConfig
}

// PostgresSource reads the dataset from PostgreSQL.
type PostgresSource struct {
	cfg PostgresConfig
}

// NewPostgresSource validates cfg.
func NewPostgresSource(cfg PostgresConfig) (*PostgresSource, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("postgres source: url is required")
	}
	return &PostgresSource{cfg: cfg}, nil
}

// Load queries every row of the configured table. The pool lives only for
// the duration of the load.
func (s *PostgresSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	pool, err := pgxpool.New(ctx, s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres source: connect: %w", err)
	}
	defer pool.Close()

	cols := s.cfg.columns()
	rows, err := pool.Query(ctx, s.cfg.selectQuery())
	if err != nil {
		return nil, fmt.Errorf("postgres source: query %s: %w", s.cfg.table(), err)
	}
	defer rows.Close()

	var out []dataset.Row
	for rows.Next() {
		values := make([]*string, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("postgres source: scan: %w", err)
		}
		out = append(out, rowFromText(cols, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres source: %w", err)
	}
	return dataset.New(out), nil
}

// WritePostgres stores ds in table through the COPY protocol, creating the
// table if needed. Existing rows are replaced.
func WritePostgres(ctx context.Context, url string, cfg TableConfig, ds *dataset.Dataset) (err error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("postgres: connect: %w", err)
	}
	defer pool.Close()

	cols := dataset.Columns
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	table := quoteTable(cfg.table())

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if _, err = tx.Exec(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return err
	}
	rows := make([][]any, ds.Len())
	for i := range rows {
		r := ds.Row(i)
		rows[i] = make([]any, len(cols))
		for j, c := range cols {
			rows[i][j] = textValue(r, c)
		}
	}
	ident := pgx.Identifier(strings.Split(cfg.table(), "."))
	if _, err = tx.CopyFrom(ctx, ident, cols, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy into %s: %w", table, err)
	}
	return tx.Commit(ctx)
}

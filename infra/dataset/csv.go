package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/model"
)

// CSVConfig locates a CSV export of the registrations dataset.
type CSVConfig struct {
	Path      string `json:"path"`
	Delimiter string `json:"delimiter"`
}

// CSVSource reads the dataset from a file. Headers are normalized by
// replacing spaces with underscores; unknown columns are ignored.
type CSVSource struct {
	cfg   CSVConfig
	delim rune
}

// NewCSVSource validates cfg.
func NewCSVSource(cfg CSVConfig) (*CSVSource, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("csv source: path is required")
	}
	delim := ','
	if cfg.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(cfg.Delimiter)
		if size != len(cfg.Delimiter) {
			return nil, fmt.Errorf("csv source: delimiter %q must be a single character", cfg.Delimiter)
		}
		delim = r
	}
	return &CSVSource{cfg: cfg, delim: delim}, nil
}

// Load reads and canonicalizes every record.
func (s *CSVSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	f, err := os.Open(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("csv source: %w", err)
	}
	defer func() { _ = f.Close() }()
	ds, err := ReadCSV(ctx, f, s.delim)
	if err != nil {
		return nil, fmt.Errorf("csv source %s: %w", s.cfg.Path, err)
	}
	return ds, nil
}

// ReadCSV parses a header line followed by records. Every feature column
// must be present; Expected_Price is optional.
func ReadCSV(ctx context.Context, r io.Reader, delim rune) (*dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		cols[i] = dataset.NormalizeHeader(h)
		present[cols[i]] = true
	}
	var missing []string
	for _, c := range dataset.Columns {
		if c != model.ColumnExpectedPrice && !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	var rows []dataset.Row
	for line := 2; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := dataset.EmptyRow()
		for i, v := range rec {
			row.Set(cols[i], v)
		}
		rows = append(rows, row)
	}
	return dataset.New(rows), nil
}

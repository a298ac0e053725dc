// Package export renders the feature schema and evaluation reports for the
// command line.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/kilianp07/evprice/core/features"
	"github.com/kilianp07/evprice/core/model"
	"github.com/kilianp07/evprice/core/pricing"
)

// Feature kinds.
const (
	KindScaled    = "scaled"
	KindFrequency = "frequency"
	KindOneHot    = "one_hot"
)

// FeatureEntry describes one column of the encoded vector.
type FeatureEntry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
}

// Entries lists the schema columns with their encoding kind.
func Entries(schema features.Schema) []FeatureEntry {
	out := make([]FeatureEntry, len(schema))
	for i, name := range schema {
		out[i] = FeatureEntry{Index: i, Name: name, Kind: kindOf(name)}
	}
	return out
}

func kindOf(name string) string {
	switch {
	case slices.Contains(model.ScaleColumns, name):
		return KindScaled
	case strings.HasSuffix(name, features.FrequencySuffix):
		return KindFrequency
	default:
		return KindOneHot
	}
}

// WriteJSON writes the schema to w in JSON format.
func WriteJSON(w io.Writer, schema features.Schema) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Entries(schema))
}

// WriteCSV writes the schema to w in CSV format.
func WriteCSV(w io.Writer, schema features.Schema) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "name", "kind"}); err != nil {
		return err
	}
	for _, e := range Entries(schema) {
		if err := cw.Write([]string{strconv.Itoa(e.Index), e.Name, e.Kind}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEvaluation writes ev as aligned key/value lines.
func WriteEvaluation(w io.Writer, ev pricing.Evaluation) error {
	lines := []struct {
		key string
		val string
	}{
		{"rows", strconv.Itoa(ev.Rows)},
		{"skipped", strconv.Itoa(ev.Skipped)},
		{"mse", strconv.FormatFloat(ev.MSE, 'f', 4, 64)},
		{"rmse", strconv.FormatFloat(ev.RMSE, 'f', 4, 64)},
		{"r2", strconv.FormatFloat(ev.R2, 'f', 4, 64)},
		{"max_abs_error", strconv.FormatFloat(ev.MaxAbsError, 'f', 4, 64)},
	}
	for _, l := range lines {
		if _, err := io.WriteString(w, l.key+strings.Repeat(" ", 14-len(l.key))+l.val+"\n"); err != nil {
			return err
		}
	}
	return nil
}

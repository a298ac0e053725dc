package features

import (
	"errors"
	"fmt"

	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/model"
)

// ErrEmptyDataset is returned when statistics are requested for a dataset
// without rows.
var ErrEmptyDataset = errors.New("reference dataset is empty")

// Statistics bundles everything fitted from the reference dataset. It is
// built once and only read afterwards.
type Statistics struct {
	Rows         int
	Frequencies  []FrequencyTable
	Vocabularies []Vocabulary
	Scaling      []ScalingParameters
}

// Build derives the encoding statistics from ds. It has no side effects.
func Build(ds *dataset.Dataset) (*Statistics, error) {
	if ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	s := &Statistics{Rows: ds.Len()}
	for _, c := range model.FrequencyColumns {
		s.Frequencies = append(s.Frequencies, newFrequencyTable(c, ds.Categories(c)))
	}
	for _, c := range model.OneHotColumns {
		s.Vocabularies = append(s.Vocabularies, newVocabulary(c, ds.Categories(c)))
	}
	for _, c := range model.ScaleColumns {
		p := newScalingParameters(c, ds.Numbers(c))
		if p.Count == 0 {
			return nil, fmt.Errorf("column %s has no numeric values", c)
		}
		s.Scaling = append(s.Scaling, p)
	}
	return s, nil
}

// Frequency returns the table for column.
func (s *Statistics) Frequency(column string) (FrequencyTable, bool) {
	for _, t := range s.Frequencies {
		if t.Column == column {
			return t, true
		}
	}
	return FrequencyTable{}, false
}

// Vocabulary returns the vocabulary for column.
func (s *Statistics) Vocabulary(column string) (Vocabulary, bool) {
	for _, v := range s.Vocabularies {
		if v.Column == column {
			return v, true
		}
	}
	return Vocabulary{}, false
}

// Scale returns the scaling parameters for column.
func (s *Statistics) Scale(column string) (ScalingParameters, bool) {
	for _, p := range s.Scaling {
		if p.Column == column {
			return p, true
		}
	}
	return ScalingParameters{}, false
}

// Degenerate lists the columns whose scaling falls back to a constant.
func (s *Statistics) Degenerate() []string {
	var out []string
	for _, p := range s.Scaling {
		if p.Degenerate() {
			out = append(out, p.Column)
		}
	}
	for _, t := range s.Frequencies {
		if t.Degenerate() {
			out = append(out, t.Column+FrequencySuffix)
		}
	}
	return out
}

// FeatureNames returns the names of the encoded features in encoding order,
// before projection onto a model schema.
func (s *Statistics) FeatureNames() Schema {
	var out Schema
	for _, p := range s.Scaling {
		out = append(out, p.Column)
	}
	for _, t := range s.Frequencies {
		out = append(out, t.Column+FrequencySuffix)
	}
	for _, v := range s.Vocabularies {
		out = append(out, v.FeatureNames()...)
	}
	return out
}

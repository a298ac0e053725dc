package features

import (
	"fmt"

	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/model"
)

// Result is the outcome of encoding one record.
type Result struct {
	// Vector follows the schema the Encoder was built with.
	Vector []float64
	// Unknown lists categories absent from the reference statistics.
	Unknown []model.UnknownCategory
	// OutOfRange lists numeric columns whose value lies outside the
	// reference range. The value is still standardized (extrapolated).
	OutOfRange []string
}

// Encoder maps records to feature vectors. It never mutates its statistics.
type Encoder struct {
	stats   *Statistics
	schema  Schema
	natural Schema
	// proj[i] is the schema position of natural feature i, or -1 when the
	// schema does not carry it.
	proj    []int
	missing []string
	dropped []string
}

// NewEncoder builds an encoder projecting onto schema. A nil schema uses the
// natural encoding order of the statistics.
func NewEncoder(stats *Statistics, schema Schema) (*Encoder, error) {
	if stats == nil {
		return nil, fmt.Errorf("statistics are required")
	}
	natural := stats.FeatureNames()
	if schema == nil {
		schema = natural
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	e := &Encoder{stats: stats, schema: append(Schema(nil), schema...), natural: natural}
	idx := schema.Index()
	produced := make(map[string]struct{}, len(natural))
	e.proj = make([]int, len(natural))
	for i, name := range natural {
		produced[name] = struct{}{}
		pos, ok := idx[name]
		if !ok {
			e.proj[i] = -1
			e.dropped = append(e.dropped, name)
			continue
		}
		e.proj[i] = pos
	}
	for _, name := range schema {
		if _, ok := produced[name]; !ok {
			e.missing = append(e.missing, name)
		}
	}
	return e, nil
}

// Schema returns a copy of the output column order.
func (e *Encoder) Schema() Schema { return append(Schema(nil), e.schema...) }

// Width is the length of every encoded vector.
func (e *Encoder) Width() int { return len(e.schema) }

// Filled lists schema columns the encoder never produces; they are always 0.
func (e *Encoder) Filled() []string { return append([]string(nil), e.missing...) }

// Dropped lists produced columns that the schema does not carry.
func (e *Encoder) Dropped() []string { return append([]string(nil), e.dropped...) }

// Encode maps v onto the schema. It is deterministic and never fails.
func (e *Encoder) Encode(v model.Vehicle) Result {
	var res Result
	natural := make([]float64, 0, len(e.natural))

	for _, p := range e.stats.Scaling {
		x := v.Number(p.Column)
		if !p.Observed(x) {
			res.OutOfRange = append(res.OutOfRange, p.Column)
		}
		natural = append(natural, p.Standardize(x))
	}

	for _, t := range e.stats.Frequencies {
		val := dataset.Canonical(v.Category(t.Column))
		if !t.Known(val) {
			res.Unknown = append(res.Unknown, model.UnknownCategory{Column: t.Column, Value: val})
		}
		natural = append(natural, t.Normalize(t.Count(val)))
	}

	for _, voc := range e.stats.Vocabularies {
		block := make([]float64, voc.Width())
		val := dataset.Canonical(v.Category(voc.Column))
		if i, ok := voc.Index(val); ok {
			block[i] = 1
		} else {
			res.Unknown = append(res.Unknown, model.UnknownCategory{Column: voc.Column, Value: val})
		}
		natural = append(natural, block...)
	}

	res.Vector = make([]float64, len(e.schema))
	for i, x := range natural {
		if pos := e.proj[i]; pos >= 0 {
			res.Vector[pos] = x
		}
	}
	return res
}

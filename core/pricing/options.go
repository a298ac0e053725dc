package pricing

import "github.com/kilianp07/evprice/core/model"

// Range is an observed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Options lists the choices a form should offer: the known categories of
// every categorical column and the observed range of every numeric column.
type Options struct {
	Categories map[string][]string `json:"categories"`
	Ranges     map[string]Range    `json:"ranges"`
}

// Options derives form choices from the reference statistics.
func (e *Estimator) Options() Options {
	o := Options{
		Categories: make(map[string][]string, len(model.OneHotColumns)+len(model.FrequencyColumns)),
		Ranges:     make(map[string]Range, len(model.ScaleColumns)),
	}
	for _, v := range e.stats.Vocabularies {
		o.Categories[v.Column] = v.Values()
	}
	for _, t := range e.stats.Frequencies {
		o.Categories[t.Column] = t.Values()
	}
	for _, p := range e.stats.Scaling {
		o.Ranges[p.Column] = Range{Min: p.Min, Max: p.Max}
	}
	return o
}

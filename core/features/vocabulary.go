package features

import "sort"

// MissingCategory names the reserved vocabulary slot for missing values in
// feature names. Exported training schemas spell it "nan".
const MissingCategory = "nan"

// Vocabulary is the frozen, ordered list of categories of a one-hot column.
// Every vocabulary ends with a reserved slot for missing values; values that
// are neither known nor missing produce an all-zero block.
type Vocabulary struct {
	Column string
	values []string
	index  map[string]int
}

func newVocabulary(column string, values []string) Vocabulary {
	v := Vocabulary{Column: column, index: make(map[string]int)}
	for _, s := range values {
		if s == "" {
			continue
		}
		if _, ok := v.index[s]; !ok {
			v.index[s] = 0
			v.values = append(v.values, s)
		}
	}
	sort.Strings(v.values)
	for i, s := range v.values {
		v.index[s] = i
	}
	return v
}

// Width is the number of indicator dimensions, missing slot included.
func (v Vocabulary) Width() int { return len(v.values) + 1 }

// MissingIndex is the position of the reserved missing slot.
func (v Vocabulary) MissingIndex() int { return len(v.values) }

// Index returns the indicator position of s. Empty strings map to the
// missing slot; unknown values report false.
func (v Vocabulary) Index(s string) (int, bool) {
	if s == "" {
		return v.MissingIndex(), true
	}
	i, ok := v.index[s]
	return i, ok
}

// Values lists the known categories in vocabulary order, missing slot excluded.
func (v Vocabulary) Values() []string {
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

// FeatureNames returns one name per indicator dimension, in order.
func (v Vocabulary) FeatureNames() []string {
	out := make([]string, 0, v.Width())
	for _, s := range v.values {
		out = append(out, v.Column+"_"+s)
	}
	return append(out, v.Column+"_"+MissingCategory)
}

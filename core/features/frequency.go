package features

import "sort"

// FrequencySuffix is appended to a column name to form its feature name.
const FrequencySuffix = "_freq"

// FrequencyTable counts how often each category of a column occurs in the
// reference dataset.
type FrequencyTable struct {
	Column string
	counts map[string]int
	min    int
	max    int
}

func newFrequencyTable(column string, values []string) FrequencyTable {
	t := FrequencyTable{Column: column, counts: make(map[string]int)}
	for _, v := range values {
		if v == "" {
			continue
		}
		t.counts[v]++
	}
	first := true
	for _, c := range t.counts {
		if first || c < t.min {
			t.min = c
		}
		if first || c > t.max {
			t.max = c
		}
		first = false
	}
	return t
}

// Count returns the number of occurrences of v; unseen values count 0.
func (t FrequencyTable) Count(v string) int { return t.counts[v] }

// Known reports whether v occurs in the reference dataset.
func (t FrequencyTable) Known(v string) bool {
	_, ok := t.counts[v]
	return ok
}

// Range returns the smallest and largest count observed in the reference
// dataset.
func (t FrequencyTable) Range() (minCount, maxCount int) { return t.min, t.max }

// Degenerate reports whether every category has the same count, in which
// case min-max normalization has no spread to work with.
func (t FrequencyTable) Degenerate() bool { return t.max == t.min }

// Normalize maps a count into [0,1] using the reference range. A degenerate
// range yields 0 and counts outside the range are clamped.
func (t FrequencyTable) Normalize(count int) float64 {
	if t.Degenerate() {
		return 0
	}
	v := float64(count-t.min) / float64(t.max-t.min)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Values lists the known categories in lexical order.
func (t FrequencyTable) Values() []string {
	out := make([]string, 0, len(t.counts))
	for v := range t.counts {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct categories.
func (t FrequencyTable) Len() int { return len(t.counts) }

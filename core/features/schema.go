package features

import "fmt"

// Schema is the ordered list of feature names a model expects.
type Schema []string

// Validate rejects empty schemas and duplicate names.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("schema has no columns")
	}
	seen := make(map[string]struct{}, len(s))
	for i, name := range s {
		if name == "" {
			return fmt.Errorf("schema column %d has no name", i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate schema column %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Index maps every name to its position.
func (s Schema) Index() map[string]int {
	idx := make(map[string]int, len(s))
	for i, name := range s {
		idx[name] = i
	}
	return idx
}

// Equal reports whether both schemas list the same names in the same order.
func (s Schema) Equal(o Schema) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

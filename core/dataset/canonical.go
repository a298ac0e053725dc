package dataset

import "strings"

// Canonical trims surrounding whitespace and drops an all-zero fractional part
// from integral numbers, so "43.0" read from a float column and "43" typed by
// a user refer to the same category.
func Canonical(v string) string {
	v = strings.TrimSpace(v)
	dot := strings.IndexByte(v, '.')
	if dot <= 0 || dot == len(v)-1 {
		return v
	}
	if !allBytes(v[:dot], isDigit) || !allBytes(v[dot+1:], func(b byte) bool { return b == '0' }) {
		return v
	}
	return v[:dot]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func allBytes(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

package common

import "strconv"

// AtoiDefault parses s as an int, returning def when parsing fails.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

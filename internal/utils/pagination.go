// Package utils provides small, generic helpers shared across layers. Nothing
// in here knows about accounts, sessions, or messages.
package utils

import "strconv"

// AtoiDefault converts s to an int, falling back to def when s is empty or
// not a valid integer. It backs the parsing of optional numeric query
// parameters such as ?page= and ?page_size=, where absent or garbage input
// should silently become the documented default rather than an error.
//
//	utils.AtoiDefault("42", 0)  // 42
//	utils.AtoiDefault("", 20)   // 20
//	utils.AtoiDefault("x", 20)  // 20
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

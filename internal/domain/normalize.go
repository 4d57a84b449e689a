package domain

import "strings"

// FoldForSearch lower-cases s for case-insensitive matching and ordering.
func FoldForSearch(s string) string {
	return strings.ToLower(s)
}

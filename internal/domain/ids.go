package domain

import (
	"strconv"
	"strings"
)

// MemberID identifies a member record. The store assigns it on create.
type MemberID string

// EventID identifies an event record.
type EventID string

// GalleryItemID identifies a gallery item record.
type GalleryItemID string

// CompareIDs orders identifiers numerically when both parse as integers
// and lexically otherwise. Store-assigned ids are integers rendered as
// strings, so "10" sorts after "9".
func CompareIDs(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

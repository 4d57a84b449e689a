package domain

import (
	"fmt"
	"sort"
)

// Kind names one of the three content collections.
type Kind string

const (
	KindMembers Kind = "members"
	KindEvents  Kind = "events"
	KindGallery Kind = "gallery"
)

// Kinds lists every content kind in display order.
func Kinds() []Kind { return []Kind{KindMembers, KindEvents, KindGallery} }

// ParseKind accepts a kind name as typed by a user.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMembers, KindEvents, KindGallery:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown content kind %q (expected members|events|gallery)", s)
}

// Record is a content record of any kind. The set of implementations is closed:
// Member, Event and GalleryItem.
type Record interface {
	Kind() Kind
	RecordID() string
	isRecord()
}

func (Member) Kind() Kind { return KindMembers }
func (m Member) RecordID() string { return string(m.ID) }
func (Member) isRecord() {}

func (Event) Kind() Kind { return KindEvents }
func (e Event) RecordID() string { return string(e.ID) }
func (Event) isRecord() {}

func (GalleryItem) Kind() Kind { return KindGallery }
func (g GalleryItem) RecordID() string { return string(g.ID) }
func (GalleryItem) isRecord() {}

// SortMembers orders members by case-folded name, then by id.
func SortMembers(ms []Member) {
	sort.SliceStable(ms, func(i, j int) bool {
		ni := FoldForSearch(ms[i].Name)
		nj := FoldForSearch(ms[j].Name)
		if ni == nj {
			return CompareIDs(string(ms[i].ID), string(ms[j].ID)) < 0
		}
		return ni < nj
	})
}

// SortEvents orders events by id.
func SortEvents(es []Event) {
	sort.SliceStable(es, func(i, j int) bool {
		return CompareIDs(string(es[i].ID), string(es[j].ID)) < 0
	})
}

// SortGallery orders gallery items by id.
func SortGallery(gs []GalleryItem) {
	sort.SliceStable(gs, func(i, j int) bool {
		return CompareIDs(string(gs[i].ID), string(gs[j].ID)) < 0
	})
}

package admin

import "github.com/rotary-puebla/club-site-api/internal/domain"

// Target is the record loaded into the form. A nil Target means create mode.
// Gallery items have no variant: they are never edited.
type Target interface {
	Kind() domain.Kind
	ID() string
	isTarget()
}

type EditMember struct{ Member domain.Member }

func (EditMember) Kind() domain.Kind { return domain.KindMembers }
func (t EditMember) ID() string { return string(t.Member.ID) }
func (EditMember) isTarget() {}

type EditEvent struct{ Event domain.Event }

func (EditEvent) Kind() domain.Kind { return domain.KindEvents }
func (t EditEvent) ID() string { return string(t.Event.ID) }
func (EditEvent) isTarget() {}

// targetFor returns the edit target for r, or ErrEditUnsupported.
func targetFor(r domain.Record) (Target, error) {
	switch v := r.(type) {
	case domain.Member:
		return EditMember{Member: v.Clone()}, nil
	case domain.Event:
		return EditEvent{Event: v}, nil
	case domain.GalleryItem:
		return nil, ErrEditUnsupported
	}
	return nil, ErrEditUnsupported
}

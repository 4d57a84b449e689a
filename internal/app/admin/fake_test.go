package admin

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentapi"
)

// fakeAPI is an in-memory Content API that records calls and can fail per kind.
type fakeAPI struct {
	mu      sync.Mutex
	seq     int
	members []domain.Member
	events  []domain.Event
	gallery []domain.GalleryItem

	listErr  map[domain.Kind]error
	writeErr error

	calls   atomic.Int32
	keys    []string
	secrets []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{listErr: map[domain.Kind]error{}}
}

func (f *fakeAPI) nextID() string {
	f.seq++
	return strconv.Itoa(f.seq)
}

func (f *fakeAPI) recordKey(ctx context.Context) {
	if k, ok := contentapi.IdempotencyKeyFromContext(ctx); ok {
		f.keys = append(f.keys, k)
	}
}

func (f *fakeAPI) SetAdminSecret(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.secrets = append(f.secrets, s)
}

func (f *fakeAPI) ListMembers(context.Context) ([]domain.Member, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[domain.KindMembers]; err != nil {
		return nil, err
	}
	return append([]domain.Member{}, f.members...), nil
}

func (f *fakeAPI) CreateMember(ctx context.Context, m domain.Member) (domain.Member, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordKey(ctx)
	if f.writeErr != nil {
		return domain.Member{}, f.writeErr
	}
	m.ID = domain.MemberID(f.nextID())
	f.members = append(f.members, m)
	return m, nil
}

func (f *fakeAPI) UpdateMember(_ context.Context, m domain.Member) (domain.Member, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Member{}, f.writeErr
	}
	for i := range f.members {
		if f.members[i].ID == m.ID {
			f.members[i] = m
			return m, nil
		}
	}
	return domain.Member{}, &contentapi.Error{Op: "update member", Status: 404, Err: contentapi.ErrNotFound}
}

func (f *fakeAPI) DeleteMember(_ context.Context, id domain.MemberID) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	out := f.members[:0]
	for _, m := range f.members {
		if m.ID != id {
			out = append(out, m)
		}
	}
	f.members = out
	return nil
}

func (f *fakeAPI) ListEvents(context.Context) ([]domain.Event, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[domain.KindEvents]; err != nil {
		return nil, err
	}
	return append([]domain.Event{}, f.events...), nil
}

func (f *fakeAPI) CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordKey(ctx)
	if f.writeErr != nil {
		return domain.Event{}, f.writeErr
	}
	e.ID = domain.EventID(f.nextID())
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeAPI) UpdateEvent(_ context.Context, e domain.Event) (domain.Event, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Event{}, f.writeErr
	}
	for i := range f.events {
		if f.events[i].ID == e.ID {
			f.events[i] = e
			return e, nil
		}
	}
	return domain.Event{}, &contentapi.Error{Op: "update event", Status: 404, Err: contentapi.ErrNotFound}
}

func (f *fakeAPI) DeleteEvent(_ context.Context, id domain.EventID) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	out := f.events[:0]
	for _, e := range f.events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	f.events = out
	return nil
}

func (f *fakeAPI) ListGallery(context.Context) ([]domain.GalleryItem, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[domain.KindGallery]; err != nil {
		return nil, err
	}
	return append([]domain.GalleryItem{}, f.gallery...), nil
}

func (f *fakeAPI) CreateGalleryItem(ctx context.Context, g domain.GalleryItem) (domain.GalleryItem, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordKey(ctx)
	if f.writeErr != nil {
		return domain.GalleryItem{}, f.writeErr
	}
	g.ID = domain.GalleryItemID(f.nextID())
	f.gallery = append(f.gallery, g)
	return g, nil
}

func (f *fakeAPI) DeleteGalleryItem(_ context.Context, id domain.GalleryItemID) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	out := f.gallery[:0]
	for _, g := range f.gallery {
		if g.ID != id {
			out = append(out, g)
		}
	}
	f.gallery = out
	return nil
}

func (f *fakeAPI) setWriteErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

func (f *fakeAPI) setListErr(k domain.Kind, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr[k] = err
}

var _ contentapi.API = (*fakeAPI)(nil)

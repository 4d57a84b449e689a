package contentrepo

import (
	"context"
	"strconv"
	"sync"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentrepo"
)

// table is a mutex-guarded map with a store-assigned integer sequence.
type table[ID ~string, T any] struct {
	mu   sync.RWMutex
	seq  int64
	byID map[ID]T
}

func newTable[ID ~string, T any]() *table[ID, T] {
	return &table[ID, T]{byID: make(map[ID]T)}
}

func (t *table[ID, T]) list(clone func(T) T) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.byID))
	for _, v := range t.byID {
		out = append(out, clone(v))
	}
	return out
}

func (t *table[ID, T]) create(v T, setID func(*T, ID), clone func(T) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	id := ID(strconv.FormatInt(t.seq, 10))
	setID(&v, id)
	t.byID[id] = clone(v)
	return clone(v)
}

func (t *table[ID, T]) update(id ID, v T, clone func(T) T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		var zero T
		return zero, contentrepo.ErrNotFound
	}
	t.byID[id] = clone(v)
	return clone(v), nil
}

func (t *table[ID, T]) delete(id ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byID, id)
}

// MemberRepo is an in-memory implementation of contentrepo.MemberRepository.
// It is safe for concurrent use.
type MemberRepo struct {
	t *table[domain.MemberID, domain.Member]
}

func NewMemberRepo() *MemberRepo {
	return &MemberRepo{t: newTable[domain.MemberID, domain.Member]()}
}

func (r *MemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	_ = ctx
	out := r.t.list(domain.Member.Clone)
	domain.SortMembers(out)
	return out, nil
}

func (r *MemberRepo) Create(ctx context.Context, m domain.Member) (domain.Member, error) {
	_ = ctx
	return r.t.create(m, func(m *domain.Member, id domain.MemberID) { m.ID = id }, domain.Member.Clone), nil
}

func (r *MemberRepo) Update(ctx context.Context, m domain.Member) (domain.Member, error) {
	_ = ctx
	return r.t.update(m.ID, m, domain.Member.Clone)
}

func (r *MemberRepo) Delete(ctx context.Context, id domain.MemberID) error {
	_ = ctx
	r.t.delete(id)
	return nil
}

// EventRepo is an in-memory implementation of contentrepo.EventRepository.
type EventRepo struct {
	t *table[domain.EventID, domain.Event]
}

func NewEventRepo() *EventRepo {
	return &EventRepo{t: newTable[domain.EventID, domain.Event]()}
}

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	_ = ctx
	out := r.t.list(identity[domain.Event])
	domain.SortEvents(out)
	return out, nil
}

func (r *EventRepo) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	_ = ctx
	return r.t.create(e, func(e *domain.Event, id domain.EventID) { e.ID = id }, identity[domain.Event]), nil
}

func (r *EventRepo) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	_ = ctx
	return r.t.update(e.ID, e, identity[domain.Event])
}

func (r *EventRepo) Delete(ctx context.Context, id domain.EventID) error {
	_ = ctx
	r.t.delete(id)
	return nil
}

// GalleryRepo is an in-memory implementation of contentrepo.GalleryRepository.
type GalleryRepo struct {
	t *table[domain.GalleryItemID, domain.GalleryItem]
}

func NewGalleryRepo() *GalleryRepo {
	return &GalleryRepo{t: newTable[domain.GalleryItemID, domain.GalleryItem]()}
}

func (r *GalleryRepo) List(ctx context.Context) ([]domain.GalleryItem, error) {
	_ = ctx
	out := r.t.list(domain.GalleryItem.Clone)
	domain.SortGallery(out)
	return out, nil
}

func (r *GalleryRepo) Create(ctx context.Context, g domain.GalleryItem) (domain.GalleryItem, error) {
	_ = ctx
	return r.t.create(g, func(g *domain.GalleryItem, id domain.GalleryItemID) { g.ID = id }, domain.GalleryItem.Clone), nil
}

func (r *GalleryRepo) Delete(ctx context.Context, id domain.GalleryItemID) error {
	_ = ctx
	r.t.delete(id)
	return nil
}

func identity[T any](v T) T { return v }

var (
	_ contentrepo.MemberRepository  = (*MemberRepo)(nil)
	_ contentrepo.EventRepository   = (*EventRepo)(nil)
	_ contentrepo.GalleryRepository = (*GalleryRepo)(nil)
)

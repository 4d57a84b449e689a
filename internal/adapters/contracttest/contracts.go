package contracttest

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	contentrepoport "github.com/rotary-puebla/club-site-api/internal/ports/out/contentrepo"
	idempotencyport "github.com/rotary-puebla/club-site-api/internal/ports/out/idempotency"
)

type CleanupFunc = func()

// Factories must return a repository over an empty store.
type MemberRepoFactory func(t *testing.T) (contentrepoport.MemberRepository, CleanupFunc)
type EventRepoFactory func(t *testing.T) (contentrepoport.EventRepository, CleanupFunc)
type GalleryRepoFactory func(t *testing.T) (contentrepoport.GalleryRepository, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	fp := idempotencyport.Fingerprint{
		Key:      "k-1",
		Method:   "POST",
		Route:    "/api/manage-members",
		BodyHash: "",
	}
	if _, ok, err := store.Get(ctx, fp); err != nil || ok {
		t.Fatalf("Get before Put: ok=%v err=%v", ok, err)
	}
	rec := idempotencyport.Record{
		StatusCode:  0,
		ContentType: "text/plain",
		Body:        []byte("hash-abc"),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != "hash-abc" || got.ContentType != "text/plain" || got.StatusCode != 0 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte("hash-def")
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != "hash-def" {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}

	// A different body hash is a different fingerprint.
	other := fp
	other.BodyHash = "hash-xyz"
	if _, ok, err := store.Get(ctx, other); err != nil || ok {
		t.Fatalf("Get other fingerprint: ok=%v err=%v", ok, err)
	}
}

func strPtr(s string) *string { return &s }

func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	empty, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty store, got %d members", len(empty))
	}

	full := domain.Member{
		ID:               "client-supplied",
		Name:             "mayela Romero",
		Role:             "Socio Activo",
		Profession:       "Logística",
		ShortDescription: "Especialista en logística.",
		BusinessHelp:     "Trámites ante SCT.",
		ImageURL:         "/foto_mayela.jpg",
		Email:            "mayela@example.com",
		WhatsApp:         "522221143039",
		Birthday:         "18/01",
		BusinessURL:      strPtr("https://example.com"),
		Socials:          &domain.Socials{Instagram: strPtr("https://instagram.com/m"), Twitter: strPtr("https://x.com/m")},
		ImageSettings:    &domain.ImageSettings{Zoom: 1.5, X: 20, Y: 80},
	}
	a, err := repo.Create(ctx, full)
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if a.ID == "" || a.ID == "client-supplied" {
		t.Fatalf("expected store-assigned id, got %q", a.ID)
	}

	// Absent nested values stay absent; an empty socials object stays present.
	b, err := repo.Create(ctx, domain.Member{Name: "Alejandro Luna", Socials: &domain.Socials{}})
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}
	c, err := repo.Create(ctx, domain.Member{Name: "Zoe"})
	if err != nil {
		t.Fatalf("Create c: %v", err)
	}
	if a.ID == b.ID || b.ID == c.ID {
		t.Fatalf("ids must be unique: %q %q %q", a.ID, b.ID, c.ID)
	}

	ms, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	names := make([]string, 0, len(ms))
	for _, m := range ms {
		names = append(names, m.Name)
	}
	if !reflect.DeepEqual(names, []string{"Alejandro Luna", "mayela Romero", "Zoe"}) {
		t.Fatalf("unexpected ordering: %v", names)
	}

	want := full
	want.ID = a.ID
	if !reflect.DeepEqual(ms[1], want) {
		t.Fatalf("round trip mismatch:\n got=%#v\nwant=%#v", ms[1], want)
	}
	if ms[0].Socials == nil || ms[0].Socials.Instagram != nil {
		t.Fatalf("empty socials not preserved: %#v", ms[0].Socials)
	}
	if ms[2].Socials != nil || ms[2].ImageSettings != nil || ms[2].BusinessURL != nil {
		t.Fatalf("absent fields should stay nil: %#v", ms[2])
	}

	// Update replaces all fields.
	upd := ms[1]
	upd.Name = "Mayela Romero Pérez"
	upd.Socials = nil
	upd.ImageSettings = &domain.ImageSettings{Zoom: 2, X: 50, Y: 50}
	got, err := repo.Update(ctx, upd)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !reflect.DeepEqual(got, upd) {
		t.Fatalf("update result mismatch:\n got=%#v\nwant=%#v", got, upd)
	}
	ms, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(ms) != 3 || ms[1].Name != "Mayela Romero Pérez" || ms[1].Socials != nil || ms[1].ImageSettings.Zoom != 2 {
		t.Fatalf("update not visible in list: %#v", ms)
	}

	// Update of a missing id.
	missing := upd
	missing.ID = "999999"
	if _, err := repo.Update(ctx, missing); !errors.Is(err, contentrepoport.ErrNotFound) {
		t.Fatalf("Update missing err=%v want ErrNotFound", err)
	}
	missing.ID = "not-a-number"
	if _, err := repo.Update(ctx, missing); !errors.Is(err, contentrepoport.ErrNotFound) {
		t.Fatalf("Update malformed id err=%v want ErrNotFound", err)
	}

	// Delete, including unknown ids.
	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
	if err := repo.Delete(ctx, "not-a-number"); err != nil {
		t.Fatalf("Delete malformed: %v", err)
	}
	ms, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("expected 2 members after delete, got %d", len(ms))
	}
	for _, m := range ms {
		if m.ID == b.ID {
			t.Fatalf("deleted member still listed")
		}
	}
}

func RunEventRepo(t *testing.T, newRepo EventRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	var ids []domain.EventID
	for _, title := range []string{"Sesión Ordinaria", "Cena de Gala", "Asamblea"} {
		e, err := repo.Create(ctx, domain.Event{
			Title:       title,
			Date:        "Jueves 5 Febrero",
			Time:        "20:00 hrs",
			Location:    "Hotel Sede",
			Description: "Descripción",
			ImageURL:    "/evento.jpg",
		})
		if err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
		ids = append(ids, e.ID)
	}

	es, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(es) != 3 {
		t.Fatalf("len=%d want=3", len(es))
	}
	for i := 1; i < len(es); i++ {
		if domain.CompareIDs(string(es[i-1].ID), string(es[i].ID)) >= 0 {
			t.Fatalf("events not ordered by id: %v", es)
		}
	}
	if es[0].Title != "Sesión Ordinaria" || es[0].Location != "Hotel Sede" {
		t.Fatalf("unexpected first event: %#v", es[0])
	}

	upd := es[1]
	upd.Title = "Cena de Gala 2026"
	upd.Time = "21:00 hrs"
	if got, err := repo.Update(ctx, upd); err != nil || got != upd {
		t.Fatalf("Update got=%#v err=%v", got, err)
	}
	missing := upd
	missing.ID = "424242"
	if _, err := repo.Update(ctx, missing); !errors.Is(err, contentrepoport.ErrNotFound) {
		t.Fatalf("Update missing err=%v want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "424242"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	es, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(es) != 2 || es[0].Title != "Cena de Gala 2026" {
		t.Fatalf("unexpected list after delete: %#v", es)
	}
}

func RunGalleryRepo(t *testing.T, newRepo GalleryRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	a, err := repo.Create(ctx, domain.GalleryItem{ImageURL: "/gallery-1.png", Caption: "Evento Rotario"})
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	b, err := repo.Create(ctx, domain.GalleryItem{
		ImageURL:    "/reel.jpg",
		Caption:     "Reel",
		IsInstagram: true,
		Link:        strPtr("https://instagram.com/p/abc"),
	})
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}

	gs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(gs) != 2 || gs[0].ID != a.ID || gs[1].ID != b.ID {
		t.Fatalf("unexpected list: %#v", gs)
	}
	if gs[0].IsInstagram || gs[0].Link != nil {
		t.Fatalf("defaults not preserved: %#v", gs[0])
	}
	if !gs[1].IsInstagram || gs[1].Link == nil || *gs[1].Link != "https://instagram.com/p/abc" {
		t.Fatalf("instagram item mismatch: %#v", gs[1])
	}

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
	gs, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(gs) != 1 || gs[0].ID != b.ID {
		t.Fatalf("unexpected list after delete: %#v", gs)
	}
}

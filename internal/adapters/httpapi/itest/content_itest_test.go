package itest

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rotary-puebla/club-site-api/internal/adapters/contentclient"
	"github.com/rotary-puebla/club-site-api/internal/app/admin"
	"github.com/rotary-puebla/club-site-api/internal/app/views"
	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/platform/secret"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentapi"
	contentrepoport "github.com/rotary-puebla/club-site-api/internal/ports/out/contentrepo"
)

type member struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Role          string         `json:"role"`
	Socials       map[string]any `json:"socials"`
	ImageSettings map[string]any `json:"imageSettings"`
}

func TestMembers_ITest(t *testing.T) {
	for _, b := range backendsFromEnv(t) {
		t.Run(string(b), func(t *testing.T) {
			srv := newTestServer(t, b)

			// Reads are public and start empty.
			{
				status, body, _ := srv.doJSON(t, http.MethodGet, "/api/get-members", "", nil)
				requireStatus(t, status, body, http.StatusOK)
				if got := mustUnmarshal[[]member](t, body); len(got) != 0 {
					t.Fatalf("expected empty list; body=%s", string(body))
				}
			}

			// Writes without the secret are rejected.
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/api/manage-members", "", map[string]any{"name": "Ana"})
				requireErrorCode(t, status, body, http.StatusUnauthorized, "UNAUTHORIZED")
				requireRequestID(t, body)
			}

			var created member
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/api/manage-members", adminSecret, map[string]any{
					"id":            "ignored",
					"name":          "Ana Ruiz",
					"role":          "Presidente",
					"socials":       map[string]any{"instagram": "https://instagram.com/ana"},
					"imageSettings": map[string]any{"zoom": 1.5, "x": 30, "y": 70},
				})
				requireStatus(t, status, body, http.StatusCreated)
				created = mustUnmarshal[member](t, body)
				if created.ID == "" || created.ID == "ignored" {
					t.Fatalf("expected store-assigned id; body=%s", string(body))
				}
			}

			{
				status, body, _ := srv.doJSON(t, http.MethodPut, "/api/manage-members", adminSecret, map[string]any{
					"id":   created.ID,
					"name": "Ana Ruiz",
					"role": "Past President",
				})
				requireStatus(t, status, body, http.StatusOK)
				if got := mustUnmarshal[member](t, body); got.Role != "Past President" || got.Socials != nil {
					t.Fatalf("update did not replace the record; body=%s", string(body))
				}
			}

			{
				status, body, _ := srv.doJSON(t, http.MethodPut, "/api/manage-members", adminSecret, map[string]any{"id": "987654", "name": "Nadie"})
				requireErrorCode(t, status, body, http.StatusNotFound, "NOT_FOUND")
			}

			{
				status, body, _ := srv.doJSON(t, http.MethodDelete, "/api/manage-members", adminSecret, map[string]any{"id": created.ID})
				requireStatus(t, status, body, http.StatusOK)
				status, body, _ = srv.doJSON(t, http.MethodGet, "/api/get-members", "", nil)
				requireStatus(t, status, body, http.StatusOK)
				if got := mustUnmarshal[[]member](t, body); len(got) != 0 {
					t.Fatalf("expected empty list after delete; body=%s", string(body))
				}
			}

			{
				status, body, _ := srv.doJSON(t, http.MethodPut, "/api/manage-gallery", adminSecret, map[string]any{"id": "1"})
				requireErrorCode(t, status, body, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
			}
		})
	}
}

func TestAdminWorkflow_ITest(t *testing.T) {
	for _, b := range backendsFromEnv(t) {
		t.Run(string(b), func(t *testing.T) {
			ctx := context.Background()
			srv := newTestServer(t, b)

			verifier, err := secret.NewPlain(adminSecret)
			if err != nil {
				t.Fatalf("NewPlain: %v", err)
			}
			client := contentclient.New(srv.baseURL, contentclient.WithHTTPClient(srv.client))
			answer := true
			wf, err := admin.New(admin.Config{
				API:      client,
				Verifier: verifier,
				Fallback: fallback.Default(),
				Confirmer: admin.ConfirmFunc(func(context.Context, string) (bool, error) {
					return answer, nil
				}),
				Logger: zerolog.Nop(),
			})
			if err != nil {
				t.Fatalf("admin.New: %v", err)
			}

			if err := wf.Authenticate(ctx, adminSecret); err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			for _, k := range domain.Kinds() {
				if wf.Fallback(k) {
					t.Fatalf("%s fell back against a live store", k)
				}
			}

			// Create one record of each kind through the form.
			fill := map[domain.Kind]map[string]string{
				domain.KindMembers: {
					"name": "Ana Ruiz", "role": "Presidente", "profession": "Abogada", "birthday": "05/03",
					"imageUrl": "/ana.jpg", "shortDescription": "Socia fundadora", "businessHelp": "Contratos",
					"email": "ana@example.com", "whatsapp": "5212220000000", "zoom": "2",
				},
				domain.KindEvents: {
					"title": "Cena de Gala", "date": "14 Feb 2026", "time": "20:00", "location": "Hotel Sede",
					"imageUrl": "/gala.jpg", "description": "Cena anual",
				},
				domain.KindGallery: {
					"imageUrl": "/reel.jpg", "caption": "Reel", "isInstagram": "on", "link": "https://instagram.com/p/x",
				},
			}
			for _, k := range domain.Kinds() {
				if err := wf.SetTab(k); err != nil {
					t.Fatalf("SetTab(%s): %v", k, err)
				}
				f, err := wf.OpenCreate()
				if err != nil {
					t.Fatalf("OpenCreate(%s): %v", k, err)
				}
				for name, v := range fill[k] {
					if err := f.Set(name, v); err != nil {
						t.Fatalf("Set(%s.%s): %v", k, name, err)
					}
				}
				if err := wf.Submit(ctx); err != nil {
					t.Fatalf("Submit(%s): %v", k, err)
				}
				if n := len(wf.Records(k)); n != 1 {
					t.Fatalf("%s records after create=%d want=1", k, n)
				}
			}

			ms, err := srv.content.ListMembers(ctx)
			if err != nil || len(ms) != 1 {
				t.Fatalf("store members=%v err=%v", ms, err)
			}
			if ms[0].ImageSettings == nil || ms[0].ImageSettings.Zoom != 2 || ms[0].Socials == nil {
				t.Fatalf("member payload not mapped: %#v", ms[0])
			}

			// Edit the member in place.
			f, err := wf.OpenEdit(wf.Members()[0])
			if err != nil {
				t.Fatalf("OpenEdit: %v", err)
			}
			if err := f.Set("role", "Past President"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := wf.Submit(ctx); err != nil {
				t.Fatalf("Submit edit: %v", err)
			}
			if got := wf.Members(); len(got) != 1 || got[0].Role != "Past President" {
				t.Fatalf("edit not re-listed: %#v", got)
			}

			// Gallery items cannot be edited.
			if _, err := wf.OpenEdit(wf.Gallery()[0]); !errors.Is(err, admin.ErrEditUnsupported) {
				t.Fatalf("OpenEdit gallery err=%v want ErrEditUnsupported", err)
			}

			// Declined delete sends nothing; confirmed delete removes and re-lists.
			evID := string(wf.Events()[0].ID)
			answer = false
			if deleted, err := wf.Delete(ctx, domain.KindEvents, evID); err != nil || deleted {
				t.Fatalf("declined delete deleted=%v err=%v", deleted, err)
			}
			answer = true
			if deleted, err := wf.Delete(ctx, domain.KindEvents, evID); err != nil || !deleted {
				t.Fatalf("delete deleted=%v err=%v", deleted, err)
			}
			if len(wf.Events()) != 0 {
				t.Fatalf("events after delete=%d want=0", len(wf.Events()))
			}

			// A write made with the wrong secret is rejected by the server.
			client.SetAdminSecret("wrong")
			if err := wf.SetTab(domain.KindGallery); err != nil {
				t.Fatalf("SetTab: %v", err)
			}
			f, err = wf.OpenCreate()
			if err != nil {
				t.Fatalf("OpenCreate: %v", err)
			}
			_ = f.Set("imageUrl", "/x.png")
			_ = f.Set("caption", "X")
			err = wf.Submit(ctx)
			if !errors.Is(err, admin.ErrSaveFailed) || !errors.Is(err, contentapi.ErrUnauthorized) {
				t.Fatalf("Submit with wrong secret err=%v", err)
			}
			if _, open := wf.Form(); !open {
				t.Fatalf("form should stay open after a failed save")
			}

			// The public views see what the editor wrote.
			dir := views.LoadDirectory(ctx, client, fallback.Default(), zerolog.Nop())
			dir.SetQuery("abogada")
			if dir.Fallback() || len(dir.Visible()) != 1 {
				t.Fatalf("directory fallback=%v visible=%d", dir.Fallback(), len(dir.Visible()))
			}

			wf.Exit()
			if wf.State() != admin.Unauthenticated || len(wf.Records(domain.KindMembers)) != 0 {
				t.Fatalf("exit did not reset the workflow")
			}
		})
	}
}

type failOnceEvents struct {
	contentrepoport.EventRepository
	failed atomic.Bool
}

func (r *failOnceEvents) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	if r.failed.CompareAndSwap(false, true) {
		return domain.Event{}, errors.New("store unavailable")
	}
	return r.EventRepository.Create(ctx, e)
}

func TestAdminWorkflow_RetryWithEditedValue_ITest(t *testing.T) {
	for _, b := range backendsFromEnv(t) {
		t.Run(string(b), func(t *testing.T) {
			ctx := context.Background()
			srv := newTestServerWithEvents(t, b, func(r contentrepoport.EventRepository) contentrepoport.EventRepository {
				return &failOnceEvents{EventRepository: r}
			})

			verifier, err := secret.NewPlain(adminSecret)
			if err != nil {
				t.Fatalf("NewPlain: %v", err)
			}
			wf, err := admin.New(admin.Config{
				API:       contentclient.New(srv.baseURL, contentclient.WithHTTPClient(srv.client)),
				Verifier:  verifier,
				Fallback:  fallback.Default(),
				Confirmer: admin.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil }),
				Logger:    zerolog.Nop(),
			})
			if err != nil {
				t.Fatalf("admin.New: %v", err)
			}
			if err := wf.Authenticate(ctx, adminSecret); err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if err := wf.SetTab(domain.KindEvents); err != nil {
				t.Fatalf("SetTab: %v", err)
			}
			f, err := wf.OpenCreate()
			if err != nil {
				t.Fatalf("OpenCreate: %v", err)
			}
			for name, v := range map[string]string{
				"title": "Cena de gala", "date": "14 Feb 2026", "time": "20:00",
				"location": "Hotel Sede", "imageUrl": "/gala.jpg", "description": "Cena anual",
			} {
				if err := f.Set(name, v); err != nil {
					t.Fatalf("Set(%s): %v", name, err)
				}
			}

			if err := wf.Submit(ctx); !errors.Is(err, admin.ErrSaveFailed) || !errors.Is(err, contentapi.ErrStore) {
				t.Fatalf("first Submit err=%v, want a store failure", err)
			}
			if _, open := wf.Form(); !open {
				t.Fatalf("form should stay open after a failed save")
			}

			if err := f.Set("title", "Cena de Gala"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := wf.Submit(ctx); err != nil {
				t.Fatalf("retry with edited value: %v", err)
			}
			es := wf.Events()
			if len(es) != 1 || es[0].Title != "Cena de Gala" {
				t.Fatalf("events after retry=%#v", es)
			}
		})
	}
}

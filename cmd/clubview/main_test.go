package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotary-puebla/club-site-api/internal/adapters/httpapi"
	memclock "github.com/rotary-puebla/club-site-api/internal/adapters/memory/clock"
	memcontentrepo "github.com/rotary-puebla/club-site-api/internal/adapters/memory/contentrepo"
	memidempotency "github.com/rotary-puebla/club-site-api/internal/adapters/memory/idempotency"
	"github.com/rotary-puebla/club-site-api/internal/app/content"
	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
)

func newSeededServer(t *testing.T) string {
	t.Helper()
	svc := content.NewService(memcontentrepo.NewMemberRepo(), memcontentrepo.NewEventRepo(), memcontentrepo.NewGalleryRepo())
	ctx := context.Background()
	_, err := svc.CreateMember(ctx, domain.Member{Name: "Ana Ruiz", Role: "Presidente", Profession: "Abogada", BusinessHelp: "Contratos"})
	require.NoError(t, err)
	_, err = svc.CreateMember(ctx, domain.Member{Name: "Luis Pérez", Role: "Socio", Profession: "Arquitecto"})
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, domain.Event{Title: "Cena de Gala", Date: "14 Feb", Time: "20:00", Location: "Hotel Sede"})
	require.NoError(t, err)
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewServer(svc, memidempotency.NewStore()), httpapi.RouterOptions{Logger: zerolog.Nop()}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestRun_DirectoryFilter(t *testing.T) {
	t.Parallel()
	url := newSeededServer(t)
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"-api", url, "directory", "-q", "abog"}, &out, &errOut, memclock.NewManualClock(time.Unix(0, 0)))
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "Ana Ruiz | Presidente | Abogada")
	assert.NotContains(t, out.String(), "Luis")
	assert.NotContains(t, out.String(), "saved directory")
}

func TestRun_EventsFallBackWhenUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"-api", url, "-timeout", "1s", "events"}, &out, &errOut, memclock.NewManualClock(time.Unix(0, 0)))
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "(showing saved events)")
	for _, e := range fallback.Default().Events() {
		assert.Contains(t, out.String(), e.Title)
	}
}

func TestRun_GalleryEmpty(t *testing.T) {
	t.Parallel()
	url := newSeededServer(t)
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"-api", url, "gallery", "-for", "10ms"}, &out, &errOut, memclock.NewManualClock(time.Unix(0, 0)))
	require.Equal(t, 0, code, errOut.String())
	assert.Contains(t, out.String(), "gallery is empty")
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()
	var out, errOut bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &out, &errOut, memclock.NewManualClock(time.Unix(0, 0))))
	assert.Contains(t, errOut.String(), "usage: clubview")
	assert.Equal(t, 2, run(context.Background(), []string{"bogus"}, &out, &errOut, memclock.NewManualClock(time.Unix(0, 0))))
}

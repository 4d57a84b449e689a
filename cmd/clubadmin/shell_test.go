package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotary-puebla/club-site-api/internal/adapters/contentclient"
	"github.com/rotary-puebla/club-site-api/internal/adapters/httpapi"
	memcontentrepo "github.com/rotary-puebla/club-site-api/internal/adapters/memory/contentrepo"
	memidempotency "github.com/rotary-puebla/club-site-api/internal/adapters/memory/idempotency"
	"github.com/rotary-puebla/club-site-api/internal/app/content"
	"github.com/rotary-puebla/club-site-api/internal/platform/secret"
)

const testSecret = "club-secret"

func runScript(t *testing.T, script ...string) (string, *content.Service) {
	t.Helper()
	v, err := secret.NewPlain(testSecret)
	require.NoError(t, err)
	svc := content.NewService(memcontentrepo.NewMemberRepo(), memcontentrepo.NewEventRepo(), memcontentrepo.NewGalleryRepo())
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewServer(svc, memidempotency.NewStore()), httpapi.RouterOptions{
		AdminMiddleware: httpapi.NewAdminSecretMiddleware(v),
		Logger:          zerolog.Nop(),
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	sh := newShell(strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, sh.attach(contentclient.New(srv.URL), v, zerolog.Nop()))
	require.NoError(t, sh.run(context.Background()))
	return out.String(), svc
}

func TestShell_RejectsWrongSecret(t *testing.T) {
	t.Parallel()
	out, _ := runScript(t, "nope")
	assert.Contains(t, out, "invalid secret")
	assert.NotContains(t, out, "members: ")
}

func TestShell_CreateAndDeleteEvent(t *testing.T) {
	t.Parallel()
	out, svc := runScript(t,
		testSecret,
		"tab events",
		"new",
		"set title Cena de Gala",
		"set date 14 Feb 2026",
		"set time 20:00 hrs",
		"set location Hotel Sede",
		"set imageUrl /gala.jpg",
		"set description Cena anual",
		"save",
		"delete 1",
		"n",
		"delete 1",
		"s",
		"exit",
	)
	assert.Contains(t, out, "members: 0")
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, "Cena de Gala, 14 Feb 2026 20:00 hrs")
	assert.Contains(t, out, "¿Estás seguro de eliminar este elemento?")
	assert.Contains(t, out, "deleted")

	es, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, es)
}

func TestShell_ValidationKeepsForm(t *testing.T) {
	t.Parallel()
	out, svc := runScript(t,
		testSecret,
		"new",
		"set name Ana",
		"save",
		"show",
		"cancel",
		"show",
	)
	assert.Contains(t, out, "email: ")
	assert.Contains(t, out, "[members new]")
	assert.Contains(t, out, "no open form")

	ms, err := svc.ListMembers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestShell_GalleryEditUnsupported(t *testing.T) {
	t.Parallel()
	out, _ := runScript(t,
		testSecret,
		"tab gallery",
		"new",
		"set imageUrl /g.png",
		"set caption Foto",
		"save",
		"edit 1",
	)
	assert.Contains(t, out, "Foto")
	assert.Contains(t, out, "kind cannot be edited")
}

func TestShell_UnknownCommand(t *testing.T) {
	t.Parallel()
	out, _ := runScript(t, testSecret, "frobnicate", "tab nowhere")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "unknown content kind")
}

func TestRun_HashSecret(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-hash-secret", "abc"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	v, err := secret.NewBcrypt(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.NoError(t, v.Verify("abc"))
}

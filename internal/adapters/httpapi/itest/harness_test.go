package itest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rotary-puebla/club-site-api/internal/adapters/httpapi"
	memcontentrepo "github.com/rotary-puebla/club-site-api/internal/adapters/memory/contentrepo"
	memidempotency "github.com/rotary-puebla/club-site-api/internal/adapters/memory/idempotency"
	pgcontentrepo "github.com/rotary-puebla/club-site-api/internal/adapters/postgres/contentrepo"
	pgidempotency "github.com/rotary-puebla/club-site-api/internal/adapters/postgres/idempotency"
	postgres_testutil "github.com/rotary-puebla/club-site-api/internal/adapters/postgres/testutil"
	sqlitecontentrepo "github.com/rotary-puebla/club-site-api/internal/adapters/sqlite/contentrepo"
	sqliteidempotency "github.com/rotary-puebla/club-site-api/internal/adapters/sqlite/idempotency"
	sqlite_testutil "github.com/rotary-puebla/club-site-api/internal/adapters/sqlite/testutil"
	"github.com/rotary-puebla/club-site-api/internal/app/content"
	"github.com/rotary-puebla/club-site-api/internal/platform/secret"
	contentrepoport "github.com/rotary-puebla/club-site-api/internal/ports/out/contentrepo"
	idempotencyport "github.com/rotary-puebla/club-site-api/internal/ports/out/idempotency"
)

const adminSecret = "itest-secret"

type backend string

const (
	backendMemory   backend = "memory"
	backendSQLite   backend = "sqlite"
	backendPostgres backend = "postgres"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory}
	case "sqlite":
		return []backend{backendSQLite}
	case "postgres":
		return []backend{backendPostgres}
	case "all":
		return []backend{backendMemory, backendSQLite, backendPostgres}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|sqlite|postgres|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
	content *content.Service
}

func newTestServer(t *testing.T, b backend) *testServer {
	t.Helper()
	return newTestServerWithEvents(t, b, nil)
}

// newTestServerWithEvents lets a test wrap the backend's event repository.
func newTestServerWithEvents(t *testing.T, b backend, wrap func(contentrepoport.EventRepository) contentrepoport.EventRepository) *testServer {
	t.Helper()

	var (
		members   contentrepoport.MemberRepository
		events    contentrepoport.EventRepository
		gallery   contentrepoport.GalleryRepository
		idemStore idempotencyport.Store
	)

	switch b {
	case backendPostgres:
		pool := postgres_testutil.OpenMigratedPool(t)
		members = pgcontentrepo.NewMemberRepo(pool)
		events = pgcontentrepo.NewEventRepo(pool)
		gallery = pgcontentrepo.NewGalleryRepo(pool)
		idemStore = pgidempotency.NewStore(pool)
	case backendSQLite:
		db := sqlite_testutil.OpenMigratedDB(t)
		members = sqlitecontentrepo.NewMemberRepo(db)
		events = sqlitecontentrepo.NewEventRepo(db)
		gallery = sqlitecontentrepo.NewGalleryRepo(db)
		idemStore = sqliteidempotency.NewStore(db)
	case backendMemory:
		members = memcontentrepo.NewMemberRepo()
		events = memcontentrepo.NewEventRepo()
		gallery = memcontentrepo.NewGalleryRepo()
		idemStore = memidempotency.NewStore()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	if wrap != nil {
		events = wrap(events)
	}

	verifier, err := secret.NewPlain(adminSecret)
	if err != nil {
		t.Fatalf("NewPlain: %v", err)
	}
	svc := content.NewService(members, events, gallery)
	handler := httpapi.NewRouter(httpapi.NewServer(svc, idemStore), httpapi.RouterOptions{
		AdminMiddleware: httpapi.NewAdminSecretMiddleware(verifier),
		Logger:          zerolog.Nop(),
		AllowedOrigins:  []string{"*"},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		baseURL: srv.URL,
		client:  srv.Client(),
		content: svc,
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

// doJSON sends body as JSON. A non-empty secret is sent as the admin header.
func (s *testServer) doJSON(t *testing.T, method string, path string, secret string, body any) (int, []byte, http.Header) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if secret != "" {
		req.Header.Set(httpapi.AdminSecretHeader, secret)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

type errorResponse struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	} `json:"error"`
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireStatus(t *testing.T, status int, body []byte, want int) {
	t.Helper()
	if status != want {
		t.Fatalf("status=%d want=%d body=%s", status, want, string(body))
	}
}

func requireErrorCode(t *testing.T, status int, body []byte, wantStatus int, wantCode string) {
	t.Helper()
	requireStatus(t, status, body, wantStatus)
	got := mustUnmarshal[errorResponse](t, body)
	if got.Error.Code != wantCode {
		t.Fatalf("error.code=%q want=%q body=%s", got.Error.Code, wantCode, string(body))
	}
}

func requireRequestID(t *testing.T, body []byte) {
	t.Helper()
	if strings.TrimSpace(mustUnmarshal[errorResponse](t, body).Error.RequestID) == "" {
		t.Fatalf("expected error.requestId to be set; body=%s", string(body))
	}
}

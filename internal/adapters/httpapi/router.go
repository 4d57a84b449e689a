package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RouterOptions configures NewRouter. Zero values are usable.
type RouterOptions struct {
	// AdminMiddleware wraps the manage-* routes. Nil leaves writes open.
	AdminMiddleware func(http.Handler) http.Handler
	Logger          zerolog.Logger
	AllowedOrigins  []string
}

// NewRouter constructs the Content API HTTP router.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(requestIDLogField)
	r.Use(hlog.RemoteAddrHandler("ip"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(NewCORSMiddleware(opts.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	// Health endpoint is unauthenticated (used for infra checks).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/get-members", s.ListMembers)
	r.Get("/api/get-events", s.ListEvents)
	r.Get("/api/get-gallery", s.ListGallery)

	admin := opts.AdminMiddleware
	if admin == nil {
		admin = func(next http.Handler) http.Handler { return next }
	}
	w := r.With(admin)

	w.Post("/api/manage-members", s.CreateMember)
	w.Put("/api/manage-members", s.UpdateMember)
	w.Delete("/api/manage-members", s.DeleteMember)

	w.Post("/api/manage-events", s.CreateEvent)
	w.Put("/api/manage-events", s.UpdateEvent)
	w.Delete("/api/manage-events", s.DeleteEvent)

	// Gallery items are immutable once created.
	w.Post("/api/manage-gallery", s.CreateGalleryItem)
	w.Delete("/api/manage-gallery", s.DeleteGalleryItem)

	return r
}

func requestIDLogField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", rid)
			})
		}
		next.ServeHTTP(w, r)
	})
}

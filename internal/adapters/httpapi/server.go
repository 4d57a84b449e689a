package httpapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/rotary-puebla/club-site-api/internal/app/content"
	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/idempotency"
	"github.com/rotary-puebla/club-site-api/internal/wire"
)

// IdempotencyKeyHeader is honoured on create requests.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxBodyBytes = 1 << 20

const (
	routeMembers = "/api/manage-members"
	routeEvents  = "/api/manage-events"
	routeGallery = "/api/manage-gallery"
)

// Server is the HTTP adapter for the content service.
type Server struct {
	Content *content.Service
	Idem    idempotency.Store
}

func NewServer(svc *content.Service, idem idempotency.Store) *Server {
	return &Server{Content: svc, Idem: idem}
}

func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	ms, err := s.Content.ListMembers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MembersFromDomain(ms))
}

func (s *Server) CreateMember(w http.ResponseWriter, r *http.Request) {
	var body wire.Member
	if !decodeBody(w, r, &body) {
		return
	}
	body.ID = ""
	s.createWithReplay(w, r, routeMembers, body, func(ctx context.Context) (any, error) {
		m, err := s.Content.CreateMember(ctx, body.ToDomain())
		if err != nil {
			return nil, err
		}
		return wire.MemberFromDomain(m), nil
	})
}

func (s *Server) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var body wire.Member
	if !decodeBody(w, r, &body) {
		return
	}
	m, err := s.Content.UpdateMember(r.Context(), body.ToDomain())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MemberFromDomain(m))
}

func (s *Server) DeleteMember(w http.ResponseWriter, r *http.Request) {
	var body wire.DeleteRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.Content.DeleteMember(r.Context(), domain.MemberID(body.ID)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MessageResponse{Message: "Member deleted"})
}

func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	es, err := s.Content.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.EventsFromDomain(es))
}

func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body wire.Event
	if !decodeBody(w, r, &body) {
		return
	}
	body.ID = ""
	s.createWithReplay(w, r, routeEvents, body, func(ctx context.Context) (any, error) {
		e, err := s.Content.CreateEvent(ctx, body.ToDomain())
		if err != nil {
			return nil, err
		}
		return wire.EventFromDomain(e), nil
	})
}

func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var body wire.Event
	if !decodeBody(w, r, &body) {
		return
	}
	e, err := s.Content.UpdateEvent(r.Context(), body.ToDomain())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.EventFromDomain(e))
}

func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	var body wire.DeleteRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.Content.DeleteEvent(r.Context(), domain.EventID(body.ID)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MessageResponse{Message: "Event deleted"})
}

func (s *Server) ListGallery(w http.ResponseWriter, r *http.Request) {
	gs, err := s.Content.ListGallery(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.GalleryFromDomain(gs))
}

func (s *Server) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var body wire.GalleryItem
	if !decodeBody(w, r, &body) {
		return
	}
	body.ID = ""
	s.createWithReplay(w, r, routeGallery, body, func(ctx context.Context) (any, error) {
		g, err := s.Content.CreateGalleryItem(ctx, body.ToDomain())
		if err != nil {
			return nil, err
		}
		return wire.GalleryItemFromDomain(g), nil
	})
}

func (s *Server) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	var body wire.DeleteRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.Content.DeleteGalleryItem(r.Context(), domain.GalleryItemID(body.ID)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MessageResponse{Message: "Gallery item deleted"})
}

// decodeBody reads a single JSON value into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", nil)
			return false
		}
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", map[string]any{"reason": err.Error()})
		return false
	}
	return true
}

// createWithReplay runs create under the request's Idempotency-Key, if any.
//
// Idempotency handling:
// - Replay if same key+route+bodyHash
// - Reject if same key+route with different bodyHash (409)
// - Failed creates store nothing
func (s *Server) createWithReplay(w http.ResponseWriter, r *http.Request, route string, canon any, create func(context.Context) (any, error)) {
	ctx := r.Context()
	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	if key == "" || s.Idem == nil {
		out, err := create(ctx)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, out)
		return
	}

	bodyHash, err := hashBody(canon)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	claimFP, respFP := idempotency.ForCreate(idempotency.Key(key), route, bodyHash)
	if claim, ok, err := s.Idem.Get(ctx, claimFP); err != nil {
		writeServiceError(w, r, err)
		return
	} else if ok && claim.ClaimedHash() != bodyHash {
		writeError(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSE", "idempotency key reuse with different payload", nil)
		return
	}

	if rec, ok, err := s.Idem.Get(ctx, respFP); err != nil {
		writeServiceError(w, r, err)
		return
	} else if ok && rec.Replayable() {
		hlog.FromRequest(r).Debug().Str("idempotency_key", key).Msg("replaying stored response")
		w.Header().Set("Content-Type", rec.ContentType)
		w.Header().Set("Idempotent-Replayed", "true")
		w.WriteHeader(rec.StatusCode)
		_, _ = w.Write(rec.Body)
		return
	}

	out, err := create(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// The key is claimed only by a create that succeeded, so a failed
	// attempt can be retried under the same key with a corrected body.
	_ = s.Idem.Put(ctx, claimFP, idempotency.Claim(bodyHash, time.Now()))
	if b, err := json.Marshal(out); err == nil {
		_ = s.Idem.Put(ctx, respFP, idempotency.Record{
			StatusCode:  http.StatusCreated,
			ContentType: "application/json",
			Body:        b,
			CreatedAt:   time.Now().UTC(),
		})
	}
	writeJSON(w, http.StatusCreated, out)
}

func hashBody(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

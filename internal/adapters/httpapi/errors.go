package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"
	"github.com/rs/zerolog/hlog"

	"github.com/rotary-puebla/club-site-api/internal/app/content"
	"github.com/rotary-puebla/club-site-api/internal/wire"
)

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string, details map[string]any) {
	var er wire.ErrorResponse
	er.Error.Code = code
	er.Error.Message = message
	if details != nil {
		er.Error.Details = nullable.NewNullableWithValue(map[string]any(details))
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		er.Error.RequestID = nullable.NewNullableWithValue(rid)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(er)
}

// writeServiceError maps service errors to the error envelope. Causes are logged, not returned.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ae := (*content.Error)(nil); errors.As(err, &ae) {
		ev := hlog.FromRequest(r).Warn()
		if ae.Status >= 500 {
			ev = hlog.FromRequest(r).Error()
		}
		ev.Err(ae.Err).Str("code", ae.Code).Int("status", ae.Status).Msg(ae.Message)
		writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	hlog.FromRequest(r).Error().Err(err).Msg("unhandled service error")
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "Internal error", nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type channelActivityRequest struct {
	// Type is "open" when the client starts viewing the channel and
	// "close" when it navigates away.
	Type string `json:"type" validate:"required,oneof=open close"`
}

// handleChannelActivity updates the viewer presence record for the
// calling session. Opening resets the record TTL; closing removes the
// single channel and leaves the TTL alone.
func (s *Server) handleChannelActivity(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(r)
	if !ok {
		http.Error(w, "missing identity headers", http.StatusUnauthorized)
		return
	}
	channelID := chi.URLParam(r, "channelID")

	var req channelActivityRequest
	if err := s.decodeValid(r, &req); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			http.Error(w, "type must be \"open\" or \"close\"", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var err error
	switch req.Type {
	case "open":
		err = s.presence.MarkOpen(r.Context(), userID, sessionID, channelID)
	case "close":
		err = s.presence.MarkClose(r.Context(), userID, sessionID, channelID)
	}
	if err != nil {
		s.logger.Error("update channel activity", "channel_id", channelID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Package http exposes the thin inbound surface of the pipeline: the
// channel-activity endpoint that feeds the presence store and the
// web-push subscription endpoints. Identity is established by the
// enclosing API layer and conveyed via headers.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/strogmv/pushd/internal/port"
)

const (
	userIDHeader    = "X-User-Id"
	sessionIDHeader = "X-Session-Id"
)

type Server struct {
	presence      port.PresenceStore
	subscriptions port.SubscriptionStore
	logger        *slog.Logger
	validate      *validator.Validate
}

func NewServer(presence port.PresenceStore, subscriptions port.SubscriptionStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		presence:      presence,
		subscriptions: subscriptions,
		logger:        logger,
		validate:      validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Put("/channels/{channelID}/activity", s.handleChannelActivity)
	r.Route("/push", func(r chi.Router) {
		r.Post("/subscribe", s.handleSubscribe)
		r.Post("/unsubscribe", s.handleUnsubscribe)
	})

	return otelhttp.NewHandler(r, "pushd.http")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// identity extracts the pre-authenticated caller; the session layer in
// front of this service validated the token and injected the headers.
func identity(r *http.Request) (userID, sessionID string, ok bool) {
	userID = r.Header.Get(userIDHeader)
	sessionID = r.Header.Get(sessionIDHeader)
	return userID, sessionID, userID != "" && sessionID != ""
}

func (s *Server) decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return s.validate.Struct(dst)
}

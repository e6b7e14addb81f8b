// Package api exposes the tutor session over HTTP and a WebSocket state
// feed. All handlers share the same controller and stores as the terminal
// UI would.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/state"
)

// Deps are the shared objects the API operates on.
type Deps struct {
	Controller *conversation.Controller
	Selection  *state.Selection
	Progress   *state.ProgressStore
	Notifier   *state.Notifier
	Logger     *slog.Logger

	// PingInterval overrides the WebSocket keepalive period.
	PingInterval time.Duration
}

// Handler serves the tutor API.
type Handler struct {
	deps   Deps
	logger *slog.Logger
}

// New creates a handler. A nil Logger falls back to slog.Default.
func New(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Notifier == nil {
		deps.Notifier = state.NewNotifier()
	}
	if deps.PingInterval <= 0 {
		deps.PingInterval = defaultPingInterval
	}
	return &Handler{deps: deps, logger: logger}
}

// NewRouter wires HTTP routes to the session state.
func NewRouter(deps Deps) http.Handler {
	h := New(deps)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		h.RegisterRoutes(api)
	})

	return r
}

// RegisterRoutes mounts the API routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.handleCatalog)

	r.Get("/selection", h.handleGetSelection)
	r.Put("/selection", h.handlePutSelection)

	r.Get("/messages", h.handleListMessages)
	r.Post("/messages", h.handlePostMessage)
	r.Delete("/messages", h.handleResetMessages)

	r.Get("/progress", h.handleGetProgress)
	r.Patch("/progress", h.handlePatchProgress)
	r.Get("/progress/chart", h.handleProgressChart)
	r.Post("/progress/achievements", h.handleAddAchievement)

	r.Get("/ws", h.handleWebSocket)
}

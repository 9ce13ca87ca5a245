package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/numerology"
	"github.com/aretw0/numerology/internal/logging"
	"github.com/aretw0/numerology/pkg/calendar"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/session"
	"github.com/aretw0/numerology/pkg/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server exposes the calculator over JSON.
type Server struct {
	Engine   *numerology.Engine
	Sessions *session.Manager
	Streams  *StreamManager

	metrics http.Handler
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithIDGenerator replaces uuid.NewString for POST /sessions.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		s.newID = fn
	}
}

// WithClock sets the clock used by the calendar endpoints.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer wires a Server. Use Handler to obtain the router.
func NewServer(engine *numerology.Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine *numerology.Engine, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(engine, sessions, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/calendar", func(r chi.Router) {
		r.Get("/years", s.GetYears)
		r.Get("/days", s.GetDays)
	})

	r.Post("/calculate", s.Calculate)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/calculate", s.CalculateSession)
			r.Put("/mode", s.SetMode)
			r.Get("/events", s.SubscribeEvents)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionResponse is the body of every /sessions/{id} endpoint. View is
// absent until the session holds a result.
type SessionResponse struct {
	ID   string             `json:"id"`
	Mode domain.DisplayMode `json:"mode"`
	View *presenter.View    `json:"view,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "numerology-http",
		"version": strings.TrimSpace(numerology.Version),
	})
}

// GetYears lists the selectable birth years, newest first.
func (s *Server) GetYears(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]int{"years": calendar.Years(s.now())})
}

// GetDays lists the days of ?year=&month=. Either may be omitted.
func (s *Server) GetDays(w http.ResponseWriter, r *http.Request) {
	year, err := optionalInt(r, "year")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error(), "year")
		return
	}
	month, err := optionalInt(r, "month")
	if err != nil || month < 0 || month > 12 {
		s.writeError(w, http.StatusBadRequest, "month must be between 1 and 12", "month")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]int{"days": calendar.DayOptions(s.now(), year, month)})
}

func optionalInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return n, nil
}

// Calculate handles the stateless POST /calculate request. The body is a
// form plus an optional "mode".
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	in, mode, ok := s.decodeForm(w, r)
	if !ok {
		return
	}
	if mode == "" {
		mode = domain.DefaultMode
	}

	result, err := s.Engine.Calculate(r.Context(), in)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Present(result, mode))
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Create(r.Context(), s.newID())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.logger.Debug("session created", "session_id", sess.ID)
	s.writeJSON(w, http.StatusCreated, s.sessionResponse(sess))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse(sess))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.Load(r.Context(), id); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CalculateSession handles POST /sessions/{id}/calculate. A rejected form
// leaves the stored session untouched.
func (s *Server) CalculateSession(w http.ResponseWriter, r *http.Request) {
	in, mode, ok := s.decodeForm(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.Sessions.Update(r.Context(), id, func(sess *domain.Session) error {
		if mode != "" {
			sess.Mode = mode
		}
		_, err := s.Engine.Submit(r.Context(), sess, in)
		return err
	})
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.publish(sess))
}

// SetMode handles PUT /sessions/{id}/mode. The cached result is re-rendered
// without being derived again.
func (s *Server) SetMode(w http.ResponseWriter, r *http.Request) {
	var body modeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	mode, err := domain.ParseMode(body.Mode)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error(), "mode")
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.Sessions.Update(r.Context(), id, func(sess *domain.Session) error {
		s.Engine.SwitchMode(r.Context(), sess, mode)
		return nil
	})
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.publish(sess))
}

// publish builds the session view and pushes it to any event subscribers.
func (s *Server) publish(sess *domain.Session) SessionResponse {
	resp := s.sessionResponse(sess)
	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(sess.ID, string(payload))
	}
	return resp
}

func (s *Server) sessionResponse(sess *domain.Session) SessionResponse {
	resp := SessionResponse{ID: sess.ID, Mode: sess.Mode}
	if view, ok := s.Engine.Render(sess); ok {
		resp.View = &view
	}
	return resp
}

// decodeForm reads {"year","month","day","name","mode"}. Numbers and strings
// are both accepted for the date fields.
func (s *Server) decodeForm(w http.ResponseWriter, r *http.Request) (validation.Input, domain.DisplayMode, bool) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body", "")
		s.logger.Warn("invalid request body", "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
		return validation.Input{}, "", false
	}

	var mode domain.DisplayMode
	if m, ok := raw["mode"]; ok {
		str, _ := m.(string)
		parsed, err := domain.ParseMode(str)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error(), "mode")
			return validation.Input{}, "", false
		}
		mode = parsed
	}

	in, err := validation.DecodeInput(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error(), "")
		return validation.Input{}, "", false
	}
	return in, mode, true
}

func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		s.writeError(w, http.StatusUnprocessableEntity, ve.Message, ve.Field)
		return
	}
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.writeError(w, http.StatusNotFound, domain.ErrSessionNotFound.Error(), "")
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()), "error", err)
	s.writeError(w, http.StatusInternalServerError, "internal error", "")
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, field string) {
	s.writeJSON(w, status, errorResponse{Error: msg, Field: field})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

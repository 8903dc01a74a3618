package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	engine *session.Engine
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// disables the auth check on mutating routes.
func New(db *storage.DB, engine *session.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		engine: engine,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read endpoints (no auth — tsnet handles access)
		r.Get("/exercises", s.handleListExercises)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}/exercises", s.handleSessionBreakdown)
		r.Get("/session", s.handleSessionStatus)
		r.Get("/history/exercises", s.handleExerciseNames)
		r.Get("/history/exercises/{name}", s.handleExerciseHistory)
		r.Get("/analytics/records", s.handleRecords)
		r.Get("/analytics/weekly", s.handleWeeklyComparison)
		r.Get("/analytics/monthly", s.handleMonthlyComparison)
		r.Get("/analytics/insights", s.handleInsights)
		r.Get("/settings", s.handleGetSettings)
		r.Get("/profiles", s.handleListProfiles)
		r.Get("/restdays", s.handleListRestDays)

		// Mutating endpoints (API key required when configured)
		r.Group(func(r chi.Router) {
			if s.apiKey != "" {
				r.Use(APIKeyAuth(s.apiKey))
			}
			r.Post("/exercises", s.handleCreateExercise)
			r.Put("/exercises/{id}", s.handleUpdateExercise)
			r.Delete("/exercises/{id}", s.handleDeleteExercise)

			r.Post("/session/start", s.handleStartSession)
			r.Post("/session/complete", s.handleCompleteSession)
			r.Post("/session/pause", s.handlePauseSession)
			r.Post("/session/resume", s.handleResumeSession)
			r.Post("/session/sets/{exerciseID}/complete", s.handleCompleteSet)
			r.Post("/session/sets/{exerciseID}/undo", s.handleUndoSet)
			r.Post("/timer/pause", s.handleTimerPause)
			r.Post("/timer/resume", s.handleTimerResume)
			r.Post("/timer/stop", s.handleTimerStop)

			r.Delete("/sessions/{id}", s.handleDeleteSession)
			r.Put("/settings", s.handleSaveSettings)

			r.Post("/profiles", s.handleSaveProfile)
			r.Post("/profiles/{id}/activate", s.handleActivateProfile)
			r.Delete("/profiles/{id}", s.handleDeleteProfile)

			r.Post("/restdays", s.handleCreateRestDay)
			r.Delete("/restdays/{id}", s.handleDeleteRestDay)
		})
	})
}

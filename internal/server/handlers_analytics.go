package server

import (
	"context"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	sessions, entries, err := s.loadHistory(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.Records(sessions, entries, time.Now()))
}

func (s *Server) handleWeeklyComparison(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.WeeklyComparison(sessions, time.Now()))
}

func (s *Server) handleMonthlyComparison(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analytics.MonthlyComparison(sessions, time.Now()))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	sessions, entries, err := s.loadHistory(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	now := time.Now()
	records := analytics.Records(sessions, entries, now)
	weekly := analytics.WeeklyComparison(sessions, now)
	monthly := analytics.MonthlyComparison(sessions, now)
	writeJSON(w, http.StatusOK, analytics.Insights(sessions, records, weekly, monthly))
}

// loadHistory fetches all sessions and their breakdown rows for the
// analytics handlers.
func (s *Server) loadHistory(ctx context.Context) ([]models.WorkoutSession, []models.SessionExercise, error) {
	sessions, err := s.db.ListSessions(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.db.ListAllSessionExercises(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sessions, entries, nil
}

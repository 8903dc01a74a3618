package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/timer"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.StartSession(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes string `json:"notes"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	completed, err := s.engine.CompleteSession(r.Context(), body.Notes)
	if err != nil {
		if completed != nil {
			// Session record saved, breakdown write failed. The session is
			// over; surface the record with the error.
			s.log.Error("session breakdown save failed", "session_id", completed.ID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   err.Error(),
				"session": completed,
			})
			return
		}
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completed)
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.PauseSession(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ResumeSession(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleCompleteSet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "exerciseID")
	if !ok {
		return
	}

	count, reachedTarget, err := s.engine.CompleteNextSet(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":          count,
		"reached_target": reachedTarget,
	})
}

func (s *Server) handleUndoSet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "exerciseID")
	if !ok {
		return
	}

	count, err := s.engine.UndoSet(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}

func (s *Server) handleTimerPause(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Timer().Pause(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleTimerResume(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Timer().Resume(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	s.engine.Timer().Stop()
	writeJSON(w, http.StatusOK, s.engine.Status())
}

// writeEngineError maps engine and timer contract violations to 409, unknown
// exercises to 404, and everything else to 500.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrSessionActive),
		errors.Is(err, session.ErrNoActiveSession),
		errors.Is(err, timer.ErrNotRunning),
		errors.Is(err, timer.ErrNotPaused):
		status = http.StatusConflict
	case errors.Is(err, session.ErrUnknownExercise):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

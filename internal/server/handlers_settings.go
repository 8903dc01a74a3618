package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if settings.RestTimerSec <= 0 || settings.ExerciseSwitchSec <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "timer durations must be positive"})
		return
	}

	if err := s.db.SaveSettings(r.Context(), settings); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.db.ListUserMetrics(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// handleSaveProfile inserts a body-metrics profile and makes it the active
// one, deactivating the rest.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var m models.UserMetrics
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if m.WeightKg <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight_kg must be positive"})
		return
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if err := s.db.SaveUserMetrics(r.Context(), m); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	m.IsActive = true
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleActivateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.db.SetActiveProfile(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.db.DeleteUserMetrics(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListRestDays lists all rest days, or looks up a single day when a
// ?date=YYYY-MM-DD query is given.
func (s *Server) handleListRestDays(w http.ResponseWriter, r *http.Request) {
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		day, err := s.db.RestDayOn(r.Context(), date)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if day == nil {
			writeJSON(w, http.StatusOK, []models.RestDay{})
			return
		}
		writeJSON(w, http.StatusOK, []models.RestDay{*day})
		return
	}

	days, err := s.db.ListRestDays(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleCreateRestDay(w http.ResponseWriter, r *http.Request) {
	var day models.RestDay
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if day.Date.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date is required"})
		return
	}
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}

	if err := s.db.InsertRestDay(r.Context(), day); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

func (s *Server) handleDeleteRestDay(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.db.DeleteRestDay(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

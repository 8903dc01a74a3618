package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/session"
)

// fakeStore backs the session engine in handler tests. History and settings
// endpoints go through *storage.DB and are exercised against a real database.
type fakeStore struct {
	exercises []models.Exercise
}

func (f *fakeStore) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return f.exercises, nil
}

func (f *fakeStore) ActiveUserMetrics(ctx context.Context) (*models.UserMetrics, error) {
	return nil, nil
}

func (f *fakeStore) GetSettings(ctx context.Context) (models.Settings, error) {
	return models.DefaultSettings(), nil
}

func (f *fakeStore) SaveSession(ctx context.Context, s models.WorkoutSession) (uuid.UUID, error) {
	return s.ID, nil
}

func (f *fakeStore) SaveSessionExercises(ctx context.Context, entries []models.SessionExercise) error {
	return nil
}

type noopNotifier struct{}

func (noopNotifier) TimerTick(int)       {}
func (noopNotifier) TimerFinished()      {}
func (noopNotifier) SessionCelebration() {}

func newTestServer(t *testing.T, apiKey string, store *fakeStore) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := session.NewEngine(store, noopNotifier{}, log, session.WithTickInterval(time.Hour))
	return New(nil, engine, apiKey, log)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestSessionLifecycleEndpoints walks a session through start, pause, resume
// and completion, and checks the double-start conflict.
func TestSessionLifecycleEndpoints(t *testing.T) {
	ex := models.Exercise{ID: uuid.New(), Name: "Bench Press", WeightKg: 100, Reps: 10, TargetSets: 4}
	s := newTestServer(t, "", &fakeStore{exercises: []models.Exercise{ex}})

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/start", ""); rec.Code != http.StatusOK {
		t.Fatalf("start status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/start", ""); rec.Code != http.StatusConflict {
		t.Errorf("second start status = %d, want 409", rec.Code)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/v1/session", "")
	var status session.Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Active {
		t.Error("status.active = false, want true after start")
	}

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/pause", ""); rec.Code != http.StatusOK {
		t.Errorf("pause status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/resume", ""); rec.Code != http.StatusOK {
		t.Errorf("resume status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/session/complete", `{"notes":"push day"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var completed models.WorkoutSession
	if err := json.NewDecoder(rec.Body).Decode(&completed); err != nil {
		t.Fatalf("decode completed session: %v", err)
	}
	if completed.Notes != "push day" {
		t.Errorf("notes = %q, want %q", completed.Notes, "push day")
	}

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/complete", ""); rec.Code != http.StatusConflict {
		t.Errorf("complete without session status = %d, want 409", rec.Code)
	}
}

// TestCompleteSetEndpoint verifies set completion responses and the error
// mapping for bad and unknown exercise IDs.
func TestCompleteSetEndpoint(t *testing.T) {
	ex := models.Exercise{ID: uuid.New(), Name: "Squat", WeightKg: 150, Reps: 5, TargetSets: 2}
	s := newTestServer(t, "", &fakeStore{exercises: []models.Exercise{ex}})

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/start", ""); rec.Code != http.StatusOK {
		t.Fatalf("start status = %d, want 200", rec.Code)
	}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/session/sets/"+ex.ID.String()+"/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete set status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Count         int  `json:"count"`
		ReachedTarget bool `json:"reached_target"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Count != 1 || result.ReachedTarget {
		t.Errorf("result = %+v, want count=1 reached_target=false", result)
	}

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/sets/not-a-uuid/complete", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad uuid status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/sets/"+uuid.NewString()+"/complete", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown exercise status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/session/sets/"+ex.ID.String()+"/undo", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("undo set status = %d, want 200", rec.Code)
	}
	var undo struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&undo); err != nil {
		t.Fatalf("decode undo: %v", err)
	}
	if undo.Count != 0 {
		t.Errorf("undo count = %d, want 0", undo.Count)
	}
}

// TestTimerEndpointConflicts verifies that pausing an idle countdown and
// resuming a running one surface 409.
func TestTimerEndpointConflicts(t *testing.T) {
	s := newTestServer(t, "", &fakeStore{})

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/timer/pause", ""); rec.Code != http.StatusConflict {
		t.Errorf("pause idle timer status = %d, want 409", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/timer/resume", ""); rec.Code != http.StatusConflict {
		t.Errorf("resume idle timer status = %d, want 409", rec.Code)
	}
	// Stop is always valid.
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/timer/stop", ""); rec.Code != http.StatusOK {
		t.Errorf("stop status = %d, want 200", rec.Code)
	}
}

// TestMutatingRoutesRequireKey verifies that a configured API key guards the
// mutating routes but leaves reads open.
func TestMutatingRoutesRequireKey(t *testing.T) {
	s := newTestServer(t, "secret", &fakeStore{})

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/session/start", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated start status = %d, want 401", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/api/v1/session", ""); rec.Code != http.StatusOK {
		t.Errorf("read status = %d, want 200", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/start", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated start status = %d, want 200", rec.Code)
	}
}

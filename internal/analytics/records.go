// Package analytics derives training metrics from session history: personal
// records, streaks, rolling period comparisons, and motivational insights.
// Everything here is a pure function of its inputs; history may arrive in
// any order and is sorted internally where order matters.
package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// daySeconds is the fixed day length used to bucket timestamps into days.
// Deliberately not calendar/timezone aware; workouts near midnight may land
// on either side of the boundary.
const daySeconds = 86400

func dayIndex(t time.Time) int64 {
	return t.Unix() / daySeconds
}

// Records computes personal records over the full history. Heaviest lifts
// come from the per-exercise breakdown entries; all other records come from
// the session rows. Zero values throughout when history is empty.
func Records(sessions []models.WorkoutSession, entries []models.SessionExercise, now time.Time) models.PersonalRecords {
	rec := models.PersonalRecords{
		HeaviestLiftByExercise: make(map[string]float64),
	}
	if len(sessions) == 0 {
		return rec
	}

	var mostVolume float64
	var longestSec int
	for _, s := range sessions {
		if s.TotalVolume > mostVolume {
			mostVolume = s.TotalVolume
		}
		if s.DurationSec > longestSec {
			longestSec = s.DurationSec
		}
	}

	for _, e := range entries {
		if e.WeightKg > rec.HeaviestLiftByExercise[e.ExerciseName] {
			rec.HeaviestLiftByExercise[e.ExerciseName] = e.WeightKg
		}
	}

	rec.MostVolume = mostVolume
	rec.LongestSessionMin = longestSec / 60
	rec.CurrentStreak = CurrentStreak(sessions, now)
	rec.TotalWorkouts = len(sessions)
	return rec
}

// CurrentStreak counts consecutive workout days ending at today or
// yesterday. Multiple workouts on one day count once; a gap of more than one
// day breaks the streak.
func CurrentStreak(sessions []models.WorkoutSession, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	mostRecent := sessions[0].CompletedAt
	for _, s := range sessions[1:] {
		if s.CompletedAt.After(mostRecent) {
			mostRecent = s.CompletedAt
		}
	}
	if (now.Unix()-mostRecent.Unix())/daySeconds > 1 {
		return 0
	}

	// Unique workout days, most recent first.
	seen := make(map[int64]bool, len(sessions))
	var days []int64
	for _, s := range sessions {
		d := dayIndex(s.CompletedAt)
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	streak := 0
	expected := dayIndex(now)
	for _, d := range days {
		diff := expected - d
		if diff != 0 && diff != 1 {
			break
		}
		streak++
		expected = d - 1
	}
	return streak
}

package analytics

import (
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func quietComparison() models.SummaryComparison {
	return models.SummaryComparison{}
}

func historyOf(n int) []models.WorkoutSession {
	sessions := make([]models.WorkoutSession, n)
	for i := range sessions {
		sessions[i] = sessionOn(noon(), 100, 600)
	}
	return sessions
}

// TestInsightsMilestones verifies exact workout-count milestones fire one
// achievement and near-misses fire none.
func TestInsightsMilestones(t *testing.T) {
	tests := []struct {
		workouts  int
		wantTitle string
	}{
		{1, "First Workout! 🎉"},
		{10, "10 Workouts Complete!"},
		{25, "25 Workouts Milestone!"},
		{50, "Half Century!"},
		{100, "100 Workouts! 🎊"},
	}

	for _, tt := range tests {
		records := models.PersonalRecords{TotalWorkouts: tt.workouts}
		got := Insights(historyOf(tt.workouts), records, quietComparison(), quietComparison())

		achievements := 0
		for _, in := range got {
			if in.Type == models.InsightAchievement {
				achievements++
				if in.Title != tt.wantTitle {
					t.Errorf("workouts=%d: title = %q, want %q", tt.workouts, in.Title, tt.wantTitle)
				}
			}
		}
		if achievements != 1 {
			t.Errorf("workouts=%d: %d achievements, want 1", tt.workouts, achievements)
		}
	}

	// 11 is not a milestone; with nothing else qualifying the fallback fires.
	got := Insights(historyOf(11), models.PersonalRecords{TotalWorkouts: 11}, quietComparison(), quietComparison())
	for _, in := range got {
		if in.Type == models.InsightAchievement {
			t.Errorf("workouts=11 produced achievement %q, want none", in.Title)
		}
	}
}

// TestInsightsStreakTiersExclusive verifies only the longest qualifying
// streak tier fires.
func TestInsightsStreakTiersExclusive(t *testing.T) {
	tests := []struct {
		streak    int
		wantTitle string
		want      bool
	}{
		{6, "", false},
		{7, "Week Streak! 🔥", true},
		{13, "Week Streak! 🔥", true},
		{14, "Two Week Streak!", true},
		{29, "Two Week Streak!", true},
		{30, "Month Streak! 🏆", true},
		{90, "Month Streak! 🏆", true},
	}

	for _, tt := range tests {
		in, ok := streakInsight(tt.streak)
		if ok != tt.want {
			t.Errorf("streak=%d: fired=%v, want %v", tt.streak, ok, tt.want)
			continue
		}
		if ok && in.Title != tt.wantTitle {
			t.Errorf("streak=%d: title = %q, want %q", tt.streak, in.Title, tt.wantTitle)
		}
	}
}

// TestInsightsProgressThresholds verifies the weekly (>10%) and monthly
// (>20%) volume-gain rules, including boundary values.
func TestInsightsProgressThresholds(t *testing.T) {
	weekly := models.SummaryComparison{VolumeChangePercent: 10}
	monthly := models.SummaryComparison{VolumeChangePercent: 20}
	got := Insights(historyOf(3), models.PersonalRecords{TotalWorkouts: 3}, weekly, monthly)
	for _, in := range got {
		if in.Type == models.InsightProgress {
			t.Errorf("boundary values fired progress insight %q", in.Title)
		}
	}

	weekly.VolumeChangePercent = 15
	monthly.VolumeChangePercent = 25
	got = Insights(historyOf(3), models.PersonalRecords{TotalWorkouts: 3}, weekly, monthly)
	progress := 0
	for _, in := range got {
		if in.Type == models.InsightProgress {
			progress++
		}
	}
	if progress != 2 {
		t.Errorf("progress insights = %d, want 2 (weekly and monthly)", progress)
	}
}

// TestInsightsCapAndPriority verifies the result is capped at three in rule
// order when many rules fire at once.
func TestInsightsCapAndPriority(t *testing.T) {
	records := models.PersonalRecords{TotalWorkouts: 10, CurrentStreak: 10}
	weekly := models.SummaryComparison{VolumeChangePercent: 50, FrequencyChange: 2}
	monthly := models.SummaryComparison{VolumeChangePercent: 50}

	got := Insights(historyOf(10), records, weekly, monthly)
	if len(got) != maxInsights {
		t.Fatalf("len = %d, want %d", len(got), maxInsights)
	}
	if got[0].Type != models.InsightAchievement {
		t.Errorf("insight[0] = %v, want achievement first", got[0].Type)
	}
	if got[1].Type != models.InsightProgress || got[2].Type != models.InsightProgress {
		t.Errorf("insights[1:] = %v/%v, want progress then progress", got[1].Type, got[2].Type)
	}
}

// TestInsightsFallback verifies the keep-going encouragement fires only for
// a nonempty history with no other qualifying rule.
func TestInsightsFallback(t *testing.T) {
	got := Insights(nil, models.PersonalRecords{}, quietComparison(), quietComparison())
	if len(got) != 0 {
		t.Fatalf("empty history produced %d insights, want 0", len(got))
	}

	got = Insights(historyOf(3), models.PersonalRecords{TotalWorkouts: 3}, quietComparison(), quietComparison())
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Type != models.InsightEncouragement || got[0].Title != "Keep Going!" {
		t.Errorf("fallback = %+v, want Keep Going encouragement", got[0])
	}
}

package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Retrieve completed workout sessions in a time range. Each session includes duration, total volume lifted, estimated calories, and optional notes."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Get all-time personal records: heaviest lift per exercise, most volume in one session, longest session, current streak, and total workout count."),
)

var toolGetPeriodSummary = mcp.NewTool("get_period_summary",
	mcp.WithDescription("Compare the current rolling week or month against the previous one. Returns totals and percent changes for workout count, volume, and duration."),
	mcp.WithString("period", mcp.Required(), mcp.Description("Comparison period"), mcp.Enum("week", "month")),
)

var toolGetInsights = mcp.NewTool("get_insights",
	mcp.WithDescription("Generate up to 3 prioritized insights from workout history: milestones, volume trends, streaks, frequency, and consistency."),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Per-exercise history across all sessions, most recent first. Returns weight, sets, reps, and volume for each occurrence."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name as recorded in session breakdowns (e.g. 'Bench Press')")),
)

// --- Tool handlers ---

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	sessions, err := h.db.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	filtered := make([]models.WorkoutSession, 0, len(sessions))
	for _, s := range sessions {
		if !s.CompletedAt.Before(start) && s.CompletedAt.Before(end) {
			filtered = append(filtered, s)
		}
	}

	result, err := mcp.NewToolResultJSON(filtered)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, entries, err := h.loadHistory(ctx)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.Records(sessions, entries, time.Now()))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPeriodSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, err := req.RequireString("period")
	if err != nil {
		return mcp.NewToolResultError("period parameter is required"), nil
	}

	sessions, err := h.db.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_period_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	var comparison models.SummaryComparison
	switch period {
	case "week":
		comparison = analytics.WeeklyComparison(sessions, time.Now())
	case "month":
		comparison = analytics.MonthlyComparison(sessions, time.Now())
	default:
		return mcp.NewToolResultError("period must be 'week' or 'month'"), nil
	}

	result, err := mcp.NewToolResultJSON(comparison)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getInsights(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, entries, err := h.loadHistory(ctx)
	if err != nil {
		h.log.Error("mcp get_insights", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	now := time.Now()
	records := analytics.Records(sessions, entries, now)
	weekly := analytics.WeeklyComparison(sessions, now)
	monthly := analytics.MonthlyComparison(sessions, now)

	result, err := mcp.NewToolResultJSON(analytics.Insights(sessions, records, weekly, monthly))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	entries, err := h.db.ExerciseHistory(ctx, name)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// loadHistory fetches all sessions and breakdown rows for the analytics
// tools.
func (h *handlers) loadHistory(ctx context.Context) ([]models.WorkoutSession, []models.SessionExercise, error) {
	sessions, err := h.db.ListSessions(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries, err := h.db.ListAllSessionExercises(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sessions, entries, nil
}

package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftlog/internal/storage"
)

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout data server. Query completed workout sessions, personal records, period summaries, insights, and per-exercise history."),
	)

	h := &handlers{db: db, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetPeriodSummary, Handler: h.getPeriodSummary},
		server.ServerTool{Tool: toolGetInsights, Handler: h.getInsights},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
		server.ServerResource{Resource: resPersonalRecords, Handler: h.personalRecords},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentSessions = mcp.NewResource(
	"liftlog://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Completed workout sessions from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resPersonalRecords = mcp.NewResource(
	"liftlog://personal_records",
	"Personal Records",
	mcp.WithResourceDescription("All-time personal records: heaviest lift per exercise, most volume, longest session, current streak, total workouts"),
	mcp.WithMIMEType("application/json"),
)

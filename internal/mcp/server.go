package mcp

import (
	"log/slog"

	"github.com/claude/treino/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server whose tools drive form. The form's credentials
// decide which account workouts are created for.
func New(form *workout.Form, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Treino", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Treino workout logger. Look up exercises by name with find_exercise, then record a workout for one of the returned exercise IDs with create_workout."),
	)

	h := &handlers{form: form, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolFindExercise, Handler: h.findExercise},
		server.ServerTool{Tool: toolCreateWorkout, Handler: h.createWorkout},
	)

	s.AddResources(
		server.ServerResource{Resource: resDivisions, Handler: h.divisions},
		server.ServerResource{Resource: resDraft, Handler: h.draft},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	form *workout.Form
	log  *slog.Logger
}

// --- Resource definitions ---

var resDivisions = mcp.NewResource(
	"treino://divisions",
	"Divisions",
	mcp.WithResourceDescription("Training division labels accepted by create_workout"),
	mcp.WithMIMEType("application/json"),
)

var resDraft = mcp.NewResource(
	"treino://draft",
	"Current Draft",
	mcp.WithResourceDescription("The workout being filled in: exercise text, selected exercise, numeric fields, division and current suggestions"),
	mcp.WithMIMEType("application/json"),
)

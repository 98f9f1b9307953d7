package mcp

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/claude/treino/internal/models"
	"github.com/claude/treino/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolFindExercise = mcp.NewTool("find_exercise",
	mcp.WithDescription("Look up exercises by name. Returns candidates with id, name and muscle grouping. Pass one of the returned ids to create_workout."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name or prefix (e.g. 'supino')")),
)

var toolCreateWorkout = mcp.NewTool("create_workout",
	mcp.WithDescription("Record a workout for an exercise. The exercise must come from find_exercise: pass exercise_id, or pass exercise with the exact name of a candidate. Weight is sent as a whole number; fractions are dropped."),
	mcp.WithString("exercise_id", mcp.Description("ID of a candidate returned by find_exercise")),
	mcp.WithString("exercise", mcp.Description("Exercise name. Looked up first; must match one candidate exactly when exercise_id is omitted.")),
	mcp.WithNumber("repetitions", mcp.Required(), mcp.Description("Repetitions per series, at least 1")),
	mcp.WithNumber("series", mcp.Required(), mcp.Description("Number of series, at least 1")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kg, at least 1")),
	mcp.WithString("division", mcp.Required(), mcp.Description("Training division"), mcp.Enum(models.Divisions...)),
)

// --- Tool handlers ---

type lookupResult struct {
	Query       string                     `json:"query"`
	Suggestions []models.ExerciseCandidate `json:"suggestions"`
	Stale       bool                       `json:"stale,omitempty"`
}

func (h *handlers) findExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil || strings.TrimSpace(name) == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	res := h.form.SetExerciseName(ctx, name)
	if res.Err != nil && res.Err.Kind == workout.LookupTransport {
		return mcp.NewToolResultError("lookup failed: " + res.Err.Error()), nil
	}

	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = []models.ExerciseCandidate{}
	}
	result, err := mcp.NewToolResultJSON(lookupResult{Query: res.Query, Suggestions: suggestions, Stale: res.Stale})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

type createResult struct {
	Message         string                       `json:"message"`
	Request         *models.CreateWorkoutRequest `json:"request,omitempty"`
	WeightTruncated bool                         `json:"weight_truncated,omitempty"`
}

func (h *handlers) createWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	exerciseID := req.GetString("exercise_id", "")
	exercise := req.GetString("exercise", "")

	if exercise != "" {
		res := h.form.SetExerciseName(ctx, exercise)
		if res.Err != nil && res.Err.Kind == workout.LookupTransport {
			return mcp.NewToolResultError("lookup failed: " + res.Err.Error()), nil
		}
	}

	if exerciseID == "" && exercise != "" {
		exerciseID = exactMatch(h.form.View().Suggestions, exercise)
	}
	if exerciseID != "" {
		if err := h.form.SelectExercise(exerciseID); err != nil {
			if errors.Is(err, workout.ErrUnknownExercise) {
				return mcp.NewToolResultError("exercise " + exerciseID + " is not among the current suggestions; call find_exercise first"), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if err := h.form.SelectDivision(req.GetString("division", "")); err != nil {
		return mcp.NewToolResultError("division must be one of " + strings.Join(models.Divisions, ", ")), nil
	}
	h.form.SetRepetitions(numberArg(args, "repetitions"))
	h.form.SetSeries(numberArg(args, "series"))
	h.form.SetWeight(numberArg(args, "weight"))

	res := h.form.Submit(ctx)
	if res.Notice.Level == workout.NoticeError {
		return mcp.NewToolResultError(res.Notice.Message), nil
	}

	result, err := mcp.NewToolResultJSON(createResult{
		Message:         res.Notice.Message,
		Request:         res.Request,
		WeightTruncated: res.WeightTruncated,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// exactMatch returns the ID of the single candidate named name, ignoring case.
func exactMatch(candidates []models.ExerciseCandidate, name string) string {
	id := ""
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			if id != "" {
				return ""
			}
			id = c.ID
		}
	}
	return id
}

// numberArg renders a numeric argument as the text a user would have typed,
// so the form applies the same validation to both surfaces.
func numberArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return ""
	}
}

package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/treino/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) divisions(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, models.Divisions)
}

type draftSummary struct {
	Exercise    string                     `json:"exercise"`
	Selected    *models.ExerciseCandidate  `json:"selected"`
	Repetitions string                     `json:"amountOfRepetitions"`
	Series      string                     `json:"amountOfSeries"`
	Weight      string                     `json:"weight"`
	Division    string                     `json:"division"`
	Suggestions []models.ExerciseCandidate `json:"suggestions"`
}

func (h *handlers) draft(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	v := h.form.View()
	out := draftSummary{
		Exercise:    v.Draft.ExerciseName,
		Repetitions: v.Draft.Repetitions,
		Series:      v.Draft.Series,
		Weight:      v.Draft.Weight,
		Division:    v.Draft.Division,
		Suggestions: v.Suggestions,
	}
	if c, ok := v.SelectedExercise(); ok {
		out.Selected = &c
	}
	return jsonResource(req.Params.URI, out)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

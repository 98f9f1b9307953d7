package models

import (
	"encoding/json"
	"fmt"
)

// ExerciseCandidate is an exercise definition known to the workouts API,
// returned by a lookup by name.
type ExerciseCandidate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Grouping string `json:"grouping"`
}

// Selection records which suggestion, if any, the user picked for the
// current exercise text. The zero value means no selection.
type Selection struct {
	candidate *ExerciseCandidate
}

// NoSelection returns the empty selection.
func NoSelection() Selection { return Selection{} }

// Selected returns a selection holding a copy of c.
func Selected(c ExerciseCandidate) Selection {
	return Selection{candidate: &c}
}

// Candidate returns the selected exercise and whether there is one.
func (s Selection) Candidate() (ExerciseCandidate, bool) {
	if s.candidate == nil {
		return ExerciseCandidate{}, false
	}
	return *s.candidate, true
}

// IsSelected reports whether an exercise has been picked.
func (s Selection) IsSelected() bool { return s.candidate != nil }

// WorkoutDraft is the unsaved state of the create-workout form.
// Numeric fields hold the raw text the user typed.
type WorkoutDraft struct {
	ExerciseName string
	Selection    Selection
	Repetitions  string
	Series       string
	Weight       string
	Division     string
}

// CreateWorkoutRequest is the body of POST /workouts/create.
type CreateWorkoutRequest struct {
	AmountOfRepetitions int    `json:"amountOfRepetitions"`
	AmountOfSeries      int    `json:"amountOfSeries"`
	Weight              int    `json:"weight"`
	ExerciseInfoID      string `json:"exerciseInfoId"`
	Division            string `json:"division"`
}

// ServerMessage is the "message" field of an API error response, which the
// workouts API sends either as a single string or as a list of strings.
type ServerMessage []string

// UnmarshalJSON accepts a string, a list of strings, or null.
func (m *ServerMessage) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = ServerMessage{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("message is neither string nor string list: %w", err)
	}
	*m = ServerMessage(list)
	return nil
}

// APIErrorBody is the JSON shape of a failed workouts API response.
type APIErrorBody struct {
	Message ServerMessage `json:"message"`
}

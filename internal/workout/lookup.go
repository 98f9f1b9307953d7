package workout

import (
	"errors"
	"fmt"

	"github.com/claude/treino/internal/apiclient"
	"github.com/claude/treino/internal/models"
)

// LookupErrorKind separates a server refusal from a failed call.
type LookupErrorKind string

const (
	// LookupStatus means the API answered with a non-OK status. The form
	// treats it as "no matches".
	LookupStatus LookupErrorKind = "status"
	// LookupTransport covers network, decoding and credential failures.
	// The form keeps its previous suggestions.
	LookupTransport LookupErrorKind = "transport"
)

// LookupError is a failed exercise lookup.
type LookupError struct {
	Kind LookupErrorKind
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("exercise lookup (%s): %v", e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func classifyLookupError(err error) *LookupError {
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		return &LookupError{Kind: LookupStatus, Err: err}
	}
	return &LookupError{Kind: LookupTransport, Err: err}
}

// LookupResult is the single outcome of SetExerciseName.
type LookupResult struct {
	Query       string
	Suggestions []models.ExerciseCandidate
	Err         *LookupError
	// Skipped is set when the text was empty and no request was made.
	Skipped bool
	// Stale is set when a newer lookup started before this one finished;
	// its result was not applied.
	Stale bool
}

// Outcome labels the result for metrics.
func (r LookupResult) Outcome() string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Stale:
		return "stale"
	case r.Err != nil:
		return string(r.Err.Kind)
	default:
		return "ok"
	}
}

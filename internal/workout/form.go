// Package workout implements the create-workout form: exercise lookup,
// selection, validation and submission to the workouts API.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/claude/treino/internal/apiclient"
	"github.com/claude/treino/internal/models"
	"github.com/claude/treino/internal/session"
)

// ErrUnknownExercise is returned when selecting an ID that is not among the
// current suggestions.
var ErrUnknownExercise = errors.New("exercise not among suggestions")

// User-facing notices that do not come from validation or the server.
const (
	msgCreated        = "Exercício adicionado com sucesso"
	msgSessionExpired = "Sua sessão expirou, faça login novamente"
	msgCreateFailed   = "Não foi possível salvar o exercício, tente novamente"
)

// ExerciseAPI is the subset of the workouts API the form needs.
// *apiclient.Client satisfies it.
type ExerciseAPI interface {
	FindExercises(ctx context.Context, token, name string) ([]models.ExerciseCandidate, error)
	CreateWorkout(ctx context.Context, token string, w models.CreateWorkoutRequest) error
}

var _ ExerciseAPI = (*apiclient.Client)(nil)

// Recorder receives lookup and submission outcomes for metrics.
type Recorder interface {
	ObserveLookup(outcome string, d time.Duration)
	ObserveSubmission(status string, d time.Duration)
}

// AuditLog persists submission attempts.
type AuditLog interface {
	RecordSubmission(ctx context.Context, rec models.SubmissionRecord) error
}

// NoticeLevel is the kind of toast shown to the user.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message for the user.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// SubmitResult is the outcome of Submit. Request is nil when nothing was sent.
type SubmitResult struct {
	Notice          Notice
	Request         *models.CreateWorkoutRequest
	WeightTruncated bool
	Validation      ValidationErrors
}

// View is a snapshot of the form for rendering.
type View struct {
	Draft             models.WorkoutDraft
	Suggestions       []models.ExerciseCandidate
	ExercisePanelOpen bool
	DivisionPanelOpen bool
	Divisions         []string
}

// SelectedExercise returns the selected candidate, if any.
func (v View) SelectedExercise() (models.ExerciseCandidate, bool) {
	return v.Draft.Selection.Candidate()
}

// ShowSuggestions reports whether the suggestion panel should be drawn.
func (v View) ShowSuggestions() bool {
	return v.ExercisePanelOpen && v.Suggestions != nil
}

// Form is the state of one user's create-workout form. It is safe for
// concurrent use; network calls are made without holding the lock.
type Form struct {
	owner    string
	api      ExerciseAPI
	creds    session.CredentialProvider
	log      *slog.Logger
	recorder Recorder
	audit    AuditLog

	mu                sync.Mutex
	draft             models.WorkoutDraft
	suggestions       []models.ExerciseCandidate
	exercisePanelOpen bool
	divisionPanelOpen bool
	generation        uint64
}

// NewForm creates an empty form. owner identifies the form in logs and the
// audit log.
func NewForm(owner string, api ExerciseAPI, creds session.CredentialProvider, log *slog.Logger) *Form {
	return &Form{
		owner: owner,
		api:   api,
		creds: creds,
		log:   log,
	}
}

// SetRecorder attaches a metrics recorder.
func (f *Form) SetRecorder(r Recorder) { f.recorder = r }

// SetAuditLog attaches an audit log for submissions.
func (f *Form) SetAuditLog(a AuditLog) { f.audit = a }

// View returns a copy of the current state.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return View{
		Draft:             f.draft,
		Suggestions:       slices.Clone(f.suggestions),
		ExercisePanelOpen: f.exercisePanelOpen,
		DivisionPanelOpen: f.divisionPanelOpen,
		Divisions:         models.Divisions,
	}
}

// OpenExercisePanel shows the suggestion list.
func (f *Form) OpenExercisePanel() {
	f.mu.Lock()
	f.exercisePanelOpen = true
	f.mu.Unlock()
}

// SetExerciseName updates the exercise text and, when it is non-empty, looks
// up matching exercises. Any change to the text drops the current
// selection. Only the most recent lookup is applied to the suggestions;
// results of superseded lookups come back with Stale set.
func (f *Form) SetExerciseName(ctx context.Context, name string) LookupResult {
	f.mu.Lock()
	if name != f.draft.ExerciseName {
		f.draft.Selection = models.NoSelection()
	}
	f.draft.ExerciseName = name
	f.exercisePanelOpen = true
	if name == "" {
		f.mu.Unlock()
		return LookupResult{Query: name, Skipped: true}
	}
	f.generation++
	gen := f.generation
	f.mu.Unlock()

	start := time.Now()
	res := f.lookup(ctx, name)
	f.applyLookup(gen, &res)
	if f.recorder != nil {
		f.recorder.ObserveLookup(res.Outcome(), time.Since(start))
	}
	return res
}

func (f *Form) lookup(ctx context.Context, name string) LookupResult {
	res := LookupResult{Query: name}
	token, err := f.creds.AccessToken(ctx)
	if err != nil {
		res.Err = &LookupError{Kind: LookupTransport, Err: fmt.Errorf("credentials: %w", err)}
		return res
	}
	candidates, err := f.api.FindExercises(ctx, token, name)
	if err != nil {
		res.Err = classifyLookupError(err)
		return res
	}
	if candidates == nil {
		candidates = []models.ExerciseCandidate{}
	}
	res.Suggestions = candidates
	return res
}

// applyLookup applies res to the suggestions if gen is still current.
func (f *Form) applyLookup(gen uint64, res *LookupResult) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		res.Stale = true
		f.log.Debug("discarding stale exercise lookup", "owner", f.owner, "query", res.Query)
		return
	}

	switch {
	case res.Err == nil:
		f.suggestions = res.Suggestions
	case res.Err.Kind == LookupStatus:
		f.suggestions = nil
		f.log.Info("exercise lookup returned no results", "owner", f.owner, "query", res.Query, "error", res.Err)
	default:
		f.log.Warn("exercise lookup failed", "owner", f.owner, "query", res.Query, "error", res.Err)
	}
}

// SelectExercise picks the suggestion with the given ID. It closes the
// suggestion panel and replaces the exercise text with the candidate name.
func (f *Form) SelectExercise(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := slices.IndexFunc(f.suggestions, func(c models.ExerciseCandidate) bool { return c.ID == id })
	if i < 0 {
		return ErrUnknownExercise
	}
	c := f.suggestions[i]
	f.draft.Selection = models.Selected(c)
	f.draft.ExerciseName = c.Name
	f.exercisePanelOpen = false
	// A lookup still in flight was for older text.
	f.generation++
	return nil
}

// OpenDivisionPanel shows the division picklist.
func (f *Form) OpenDivisionPanel() {
	f.mu.Lock()
	f.divisionPanelOpen = true
	f.mu.Unlock()
}

// SelectDivision stores a division label and closes the picklist.
func (f *Form) SelectDivision(label string) error {
	d, err := models.ParseDivision(label)
	if err != nil {
		return fmt.Errorf("%q: %w", label, err)
	}
	f.mu.Lock()
	f.draft.Division = d
	f.divisionPanelOpen = false
	f.mu.Unlock()
	return nil
}

// SetRepetitions stores the raw repetitions text.
func (f *Form) SetRepetitions(v string) {
	f.mu.Lock()
	f.draft.Repetitions = v
	f.mu.Unlock()
}

// SetSeries stores the raw series text.
func (f *Form) SetSeries(v string) {
	f.mu.Lock()
	f.draft.Series = v
	f.mu.Unlock()
}

// SetWeight stores the raw weight text.
func (f *Form) SetWeight(v string) {
	f.mu.Lock()
	f.draft.Weight = v
	f.mu.Unlock()
}

// Submit validates the draft and, if it passes, creates the workout.
// Every outcome resolves to a Notice; the draft is left as it was.
func (f *Form) Submit(ctx context.Context) SubmitResult {
	start := time.Now()

	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	rec := models.SubmissionRecord{Owner: f.owner, CreatedAt: start, Division: draft.Division}
	if c, ok := draft.Selection.Candidate(); ok {
		rec.ExerciseInfoID = c.ID
	}

	var res SubmitResult
	if verrs := Validate(draft); verrs != nil {
		res.Validation = verrs
		res.Notice = Notice{Level: NoticeError, Message: verrs.Error()}
		rec.Status = models.SubmissionInvalid
		rec.Message = res.Notice.Message
		f.finish(ctx, rec, start)
		return res
	}

	req, truncated := buildRequest(draft)
	res.WeightTruncated = truncated
	rec.Repetitions, rec.Series, rec.Weight = req.AmountOfRepetitions, req.AmountOfSeries, req.Weight
	rec.WeightTruncated = truncated
	if truncated {
		f.log.Warn("weight fraction dropped on submit", "owner", f.owner, "weight", draft.Weight, "sent", req.Weight)
	}

	token, err := f.creds.AccessToken(ctx)
	if err != nil {
		f.log.Error("no credentials for workout creation", "owner", f.owner, "error", err)
		res.Notice = Notice{Level: NoticeError, Message: msgSessionExpired}
		rec.Status = models.SubmissionError
		rec.Message = err.Error()
		f.finish(ctx, rec, start)
		return res
	}

	res.Request = &req
	err = f.api.CreateWorkout(ctx, token, req)

	var rej *apiclient.RejectionError
	switch {
	case err == nil:
		res.Notice = Notice{Level: NoticeSuccess, Message: msgCreated}
		rec.Status = models.SubmissionSuccess
	case errors.As(err, &rej):
		msg := strings.Join(TranslateMessages(rej.Messages), ", ")
		if msg == "" {
			msg = msgCreateFailed
		}
		res.Notice = Notice{Level: NoticeError, Message: msg}
		rec.Status = models.SubmissionRejected
		rec.HTTPStatus = &rej.StatusCode
		rec.Message = strings.Join(rej.Messages, ", ")
		f.log.Info("workout creation rejected", "owner", f.owner, "status", rej.StatusCode, "messages", rej.Messages)
	default:
		res.Notice = Notice{Level: NoticeError, Message: msgCreateFailed}
		rec.Status = models.SubmissionError
		rec.Message = err.Error()
		f.log.Error("workout creation failed", "owner", f.owner, "error", err)
	}

	f.finish(ctx, rec, start)
	return res
}

func (f *Form) finish(ctx context.Context, rec models.SubmissionRecord, start time.Time) {
	elapsed := time.Since(start)
	rec.DurationMs = int(elapsed.Milliseconds())
	if f.recorder != nil {
		f.recorder.ObserveSubmission(rec.Status, elapsed)
	}
	if f.audit != nil {
		if err := f.audit.RecordSubmission(context.WithoutCancel(ctx), rec); err != nil {
			f.log.Error("failed to record submission", "owner", f.owner, "error", err)
		}
	}
}

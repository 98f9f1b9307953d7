package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/claude/treino/internal/models"
	"github.com/claude/treino/internal/session"
	"github.com/claude/treino/internal/workout"
)

type createWorkoutPage struct {
	Title  string
	Form   workout.View
	Notice *workout.Notice
}

// form returns the session's form for the request.
func (s *Server) form(r *http.Request) *workout.Form {
	id, _ := session.IDFromContext(r.Context())
	return s.forms.Form(id, s.sessions.Credentials(id))
}

// absorbDraft copies the inputs present in the posted form into the draft.
// Every button posts the whole form, so edited exercise text is applied as a
// name change before the button's own action.
func absorbDraft(r *http.Request, f *workout.Form) {
	if v, ok := r.PostForm["exercise"]; ok && len(v) > 0 && v[0] != f.View().Draft.ExerciseName {
		f.SetExerciseName(r.Context(), v[0])
	}
	if v, ok := r.PostForm["amountOfRepetitions"]; ok && len(v) > 0 {
		f.SetRepetitions(v[0])
	}
	if v, ok := r.PostForm["amountOfSeries"]; ok && len(v) > 0 {
		f.SetSeries(v[0])
	}
	if v, ok := r.PostForm["weight"]; ok && len(v) > 0 {
		f.SetWeight(v[0])
	}
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) renderForm(w http.ResponseWriter, status int, f *workout.Form, notice *workout.Notice) {
	page := createWorkoutPage{Title: "Adicionar exercício", Form: f.View(), Notice: notice}

	var buf bytes.Buffer
	if err := s.pages["create_workout.html"].ExecuteTemplate(&buf, "layout", page); err != nil {
		s.log.Error("render create workout page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// handleCreateWorkoutPage mounts an empty draft, discarding any previous one.
func (s *Server) handleCreateWorkoutPage(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IDFromContext(r.Context())
	f := s.forms.Mount(id, s.sessions.Credentials(id))
	s.renderForm(w, http.StatusOK, f, nil)
}

func (s *Server) handleExerciseName(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	f := s.form(r)
	name := r.PostForm.Get("exercise")
	changed := name != f.View().Draft.ExerciseName
	absorbDraft(r, f)
	if !changed {
		// Unchanged text: search again.
		f.SetExerciseName(r.Context(), name)
	}
	s.renderForm(w, http.StatusOK, f, nil)
}

func (s *Server) handleOpenExercisePanel(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	f := s.form(r)
	absorbDraft(r, f)
	f.OpenExercisePanel()
	s.renderForm(w, http.StatusOK, f, nil)
}

func (s *Server) handleSelectExercise(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	f := s.form(r)
	absorbDraft(r, f)
	if err := f.SelectExercise(r.PostForm.Get("id")); err != nil {
		if !errors.Is(err, workout.ErrUnknownExercise) {
			s.log.Error("select exercise", "error", err)
		}
		s.renderForm(w, http.StatusUnprocessableEntity, f, nil)
		return
	}
	s.renderForm(w, http.StatusOK, f, nil)
}

func (s *Server) handleOpenDivisionPanel(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	f := s.form(r)
	absorbDraft(r, f)
	f.OpenDivisionPanel()
	s.renderForm(w, http.StatusOK, f, nil)
}

func (s *Server) handleSelectDivision(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	f := s.form(r)
	absorbDraft(r, f)
	if err := f.SelectDivision(r.PostForm.Get("division")); err != nil {
		if !errors.Is(err, models.ErrInvalidDivision) {
			s.log.Error("select division", "error", err)
		}
		s.renderForm(w, http.StatusUnprocessableEntity, f, nil)
		return
	}
	s.renderForm(w, http.StatusOK, f, nil)
}

// handleSubmitWorkout takes the posted fields and submits the draft. A
// changed exercise text clears the selection before validation.
func (s *Server) handleSubmitWorkout(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	f := s.form(r)
	absorbDraft(r, f)

	res := f.Submit(r.Context())
	status := http.StatusOK
	if res.Notice.Level == workout.NoticeError {
		status = http.StatusUnprocessableEntity
	}
	s.renderForm(w, status, f, &res.Notice)
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/claude/treino/internal/models"
	"github.com/claude/treino/internal/session"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateSession stores the access token issued by the identity
// provider and sets the session cookie.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.AccessToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "access_token required"})
		return
	}

	id, err := s.sessions.Create(r.Context(), body.AccessToken)
	if err != nil {
		s.log.Error("create session failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookie.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IDFromContext(r.Context())
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.forms.Discard(id)
	s.log.Info("session ended", "forms", s.forms.Len())

	http.SetCookie(w, &http.Cookie{
		Name:   s.cookie.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

type lookupResponse struct {
	Query       string                     `json:"query"`
	Suggestions []models.ExerciseCandidate `json:"suggestions"`
	Stale       bool                       `json:"stale"`
}

// handleFindExercises runs a lookup through the session's form so script
// clients get the same latest-wins suggestions as the page.
func (s *Server) handleFindExercises(w http.ResponseWriter, r *http.Request) {
	id, _ := session.IDFromContext(r.Context())
	f := s.forms.Form(id, s.sessions.Credentials(id))

	res := f.SetExerciseName(r.Context(), r.URL.Query().Get("name"))
	suggestions := f.View().Suggestions
	if suggestions == nil {
		suggestions = []models.ExerciseCandidate{}
	}
	writeJSON(w, http.StatusOK, lookupResponse{
		Query:       res.Query,
		Suggestions: suggestions,
		Stale:       res.Stale,
	})
}

func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	if s.submissions == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "audit log not configured"})
		return
	}
	id, _ := session.IDFromContext(r.Context())
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	subs, err := s.submissions.QuerySubmissions(r.Context(), id, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

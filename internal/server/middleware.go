package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/treino/internal/session"
)

// requireSession returns middleware that resolves the session cookie and
// stores the session ID in the request context. Page requests without a
// session are redirected to loginURL when one is configured.
func (s *Server) requireSession(page bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := s.sessionID(r)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					s.log.Error("session lookup failed", "error", err)
				}
				s.unauthorized(w, r, page)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), id)))
		})
	}
}

// sessionID returns the ID of a live session named by the request cookie.
func (s *Server) sessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(s.cookie.CookieName)
	if err != nil || c.Value == "" {
		return "", session.ErrNoSession
	}
	if _, err := s.sessions.Token(r.Context(), c.Value); err != nil {
		return "", err
	}
	return c.Value, nil
}

func (s *Server) unauthorized(w http.ResponseWriter, r *http.Request, page bool) {
	if page && s.cookie.LoginURL != "" {
		http.Redirect(w, r, s.cookie.LoginURL, http.StatusSeeOther)
		return
	}
	if page {
		http.Error(w, "login required", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no active session"})
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers for script clients of the JSON API.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/claude/treino/internal/config"
	"github.com/claude/treino/internal/session"
	"github.com/claude/treino/internal/storage"
	"github.com/claude/treino/internal/workout"
	"github.com/go-chi/chi/v5"
)

//go:embed web/templates/*.html
var templateFS embed.FS

//go:embed web/static
var staticFS embed.FS

// SubmissionLister reads the audit log. *storage.DB satisfies it.
type SubmissionLister interface {
	QuerySubmissions(ctx context.Context, owner string, limit int) ([]storage.Submission, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	sessions    *session.Store
	forms       *workout.Registry
	submissions SubmissionLister
	cookie      config.SessionConfig
	log         *slog.Logger
	pages       map[string]*template.Template
	metrics     http.Handler
	router      chi.Router
}

// New creates a new Server with all routes configured.
func New(sessions *session.Store, forms *workout.Registry, cookie config.SessionConfig, log *slog.Logger) *Server {
	s := &Server{
		sessions: sessions,
		forms:    forms,
		cookie:   cookie,
		log:      log,
		pages:    mustParsePages("create_workout.html"),
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetSubmissions enables the submission history endpoint.
func (s *Server) SetSubmissions(l SubmissionLister) {
	s.submissions = l
}

// SetMetrics mounts a Prometheus handler at /metrics.
func (s *Server) SetMetrics(h http.Handler) {
	s.metrics = h
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))

	static, _ := fs.Sub(staticFS, "web/static")
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			http.NotFound(w, r)
			return
		}
		s.metrics.ServeHTTP(w, r)
	})

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(CORS)
		r.Post("/session", s.handleCreateSession)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession(false))
			r.Delete("/session", s.handleDeleteSession)
			r.Get("/exercises", s.handleFindExercises)
			r.Get("/submissions", s.handleSubmissions)
		})
	})

	// Pages (session required)
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireSession(true))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/create-workout", http.StatusSeeOther)
		})
		r.Get("/create-workout", s.handleCreateWorkoutPage)
		r.Post("/create-workout", s.handleSubmitWorkout)
		r.Post("/create-workout/exercise", s.handleExerciseName)
		r.Post("/create-workout/exercise/open", s.handleOpenExercisePanel)
		r.Post("/create-workout/exercise/select", s.handleSelectExercise)
		r.Post("/create-workout/division/open", s.handleOpenDivisionPanel)
		r.Post("/create-workout/division", s.handleSelectDivision)
	})
}

// mustParsePages parses each page together with the application layout.
func mustParsePages(names ...string) map[string]*template.Template {
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.ParseFS(templateFS, "web/templates/layout.html", "web/templates/"+name)
		if err != nil {
			// Templates are embedded at compile time.
			panic(fmt.Sprintf("parsing template %s: %v", name, err))
		}
		pages[name] = t
	}
	return pages
}

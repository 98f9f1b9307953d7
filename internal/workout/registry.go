package workout

import (
	"log/slog"
	"sync"

	"github.com/claude/treino/internal/session"
)

// Registry holds one Form per session.
type Registry struct {
	api      ExerciseAPI
	log      *slog.Logger
	recorder Recorder
	audit    AuditLog

	mu    sync.Mutex
	forms map[string]*Form
}

// NewRegistry creates an empty Registry whose forms call api.
func NewRegistry(api ExerciseAPI, log *slog.Logger) *Registry {
	return &Registry{
		api:   api,
		log:   log,
		forms: make(map[string]*Form),
	}
}

// SetRecorder attaches a metrics recorder to forms mounted afterwards.
func (r *Registry) SetRecorder(rec Recorder) { r.recorder = rec }

// SetAuditLog attaches an audit log to forms mounted afterwards.
func (r *Registry) SetAuditLog(a AuditLog) { r.audit = a }

// Mount replaces the session's form with an empty one, as when the form
// page is opened.
func (r *Registry) Mount(sessionID string, creds session.CredentialProvider) *Form {
	f := r.newForm(sessionID, creds)
	r.mu.Lock()
	r.forms[sessionID] = f
	r.mu.Unlock()
	return f
}

// Form returns the session's form, mounting an empty one if there is none.
func (r *Registry) Form(sessionID string, creds session.CredentialProvider) *Form {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[sessionID]
	if !ok {
		f = r.newForm(sessionID, creds)
		r.forms[sessionID] = f
	}
	return f
}

func (r *Registry) newForm(sessionID string, creds session.CredentialProvider) *Form {
	f := NewForm(sessionID, r.api, creds, r.log)
	f.SetRecorder(r.recorder)
	f.SetAuditLog(r.audit)
	return f
}

// Discard drops the session's form.
func (r *Registry) Discard(sessionID string) {
	r.mu.Lock()
	delete(r.forms, sessionID)
	r.mu.Unlock()
}

// Len returns the number of mounted forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

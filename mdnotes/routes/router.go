package routes

import (
	"net/http"
	"strings"
	"time"

	"mdnotes/mdnotes/controllers"
	"mdnotes/mdnotes/utils/logging"
	"mdnotes/mdnotes/views"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NormalizePrefix turns "notes/" or "/notes/" into "/notes" and "/" into "".
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// NewRouter mounts the whole application under prefix, the path a reverse
// proxy forwards to this server.
func NewRouter(notes *controllers.NotesController, health *controllers.HealthController, pages *views.Pages, prefix string) http.Handler {
	prefix = NormalizePrefix(prefix)

	app := chi.NewRouter()
	app.Mount("/health", HealthRoutes(health))
	app.Mount("/autosave", AutosaveRoutes(notes))
	// the autosave websocket is long lived, only page requests get a deadline
	app.Mount("/", middleware.Timeout(60*time.Second)(NotesRoutes(notes, pages, prefix)))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestMiddleware)
	r.Use(middleware.Recoverer)
	if prefix == "" {
		r.Mount("/", app)
	} else {
		r.Mount(prefix, app)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, prefix+"/", http.StatusFound)
		})
	}
	return r
}

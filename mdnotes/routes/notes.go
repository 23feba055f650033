// mdnotes/routes/notes.go
package routes

import (
	"errors"
	"net/http"
	"strings"

	"mdnotes/mdnotes/controllers"
	"mdnotes/mdnotes/types"
	"mdnotes/mdnotes/utils/logging"
	"mdnotes/mdnotes/views"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// pageHandler renders whatever page the handler picks. A NotFound error sends
// the browser back to the index; anything else is a generic 500.
type pageHandler struct {
	pages  *views.Pages
	prefix string
}

func (p pageHandler) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, p.prefix+"/", http.StatusFound)
}

func (p pageHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, types.ErrNotFound) {
		p.home(w, r)
		return
	}
	logging.ErrorLogger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (p pageHandler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.pages.Render(w, name, data); err != nil {
		logging.ErrorLogger.Error("template render failed", zap.String("page", name), zap.Error(err))
	}
}

func NotesRoutes(ctrl *controllers.NotesController, pages *views.Pages, prefix string) chi.Router {
	p := pageHandler{pages: pages, prefix: prefix}
	r := chi.NewRouter()

	// List notes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		notes, err := ctrl.List(r.Context())
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.render(w, r, "index", views.IndexPage{Prefix: prefix, Notes: notes})
	})

	// Start a new note: the draft row exists before the editor opens
	r.Get("/create", func(w http.ResponseWriter, r *http.Request) {
		note, err := ctrl.BeginCreate(r.Context())
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.render(w, r, "editor", views.EditorPage{Prefix: prefix, Action: "/create", Note: note})
	})

	r.Post("/create", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err := ctrl.CreateOrUpdate(r.Context(), r.PostForm.Get("id"), r.PostForm.Get("title"), r.PostForm.Get("content"))
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.home(w, r)
	})

	r.Get("/edit/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		note, err := ctrl.Get(r.Context(), id)
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.render(w, r, "editor", views.EditorPage{Prefix: prefix, Action: "/edit/" + id, Note: note})
	})

	r.Post("/edit/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err := ctrl.Edit(r.Context(), chi.URLParam(r, "id"), r.PostForm.Get("title"), r.PostForm.Get("content"))
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.home(w, r)
	})

	r.Get("/view/{id}", func(w http.ResponseWriter, r *http.Request) {
		note, html, err := ctrl.View(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.render(w, r, "view", views.ViewPage{Prefix: prefix, Note: note, HTML: trustedHTML(html)})
	})

	r.Get("/delete/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
			p.fail(w, r, err)
			return
		}
		p.home(w, r)
	})

	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		notes, err := ctrl.Search(r.Context(), query)
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.render(w, r, "search", views.SearchPage{Prefix: prefix, Query: query, Notes: notes})
	})

	r.Get("/download/{id}", func(w http.ResponseWriter, r *http.Request) {
		data, name, err := ctrl.Download(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			p.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.Write(data)
	})

	return r
}

// Package views renders the HTML pages around the note controller. Pages get
// already computed data; markdown arrives pre-rendered.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"mdnotes/mdnotes/sources/db/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type IndexPage struct {
	Prefix string
	Notes  []models.Note
}

type EditorPage struct {
	Prefix string
	// Action is the form target, relative to Prefix.
	Action string
	Note   *models.Note
}

type ViewPage struct {
	Prefix string
	Note   *models.Note
	HTML   template.HTML
}

type SearchPage struct {
	Prefix string
	Query  string
	Notes  []models.Note
}

// Pages holds one parsed template set per page, each sharing layout.html.
type Pages struct {
	pages map[string]*template.Template
}

func NewPages() (*Pages, error) {
	funcs := template.FuncMap{
		"stamp": func(ts models.Timestamp) string { return ts.Local().Format("2006-01-02 15:04") },
	}
	p := &Pages{pages: map[string]*template.Template{}}
	for _, name := range []string{"index", "editor", "view", "search"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		p.pages[name] = t
	}
	return p, nil
}

func (p *Pages) Render(w io.Writer, name string, data any) error {
	t, ok := p.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

package views

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"time"

	"mdnotes/mdnotes/sources/db/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPage(t *testing.T, name string, data any) *goquery.Document {
	t.Helper()
	pages, err := NewPages()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, pages.Render(&buf, name, data))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func sampleNote(id, title string) models.Note {
	ts := models.NewTimestamp(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	return models.Note{ID: id, Title: &title, Created: ts, Updated: ts}
}

func TestIndexListsNotes(t *testing.T) {
	doc := renderPage(t, "index", IndexPage{
		Prefix: "/notes",
		Notes:  []models.Note{sampleNote("a", "First"), {ID: "b"}},
	})

	items := doc.Find("li.note")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "First", items.First().Find("a").First().Text())
	assert.Equal(t, "(untitled)", items.Last().Find("a").First().Text())
	href, _ := items.First().Find("a").First().Attr("href")
	assert.Equal(t, "/notes/view/a", href)
}

func TestIndexEmpty(t *testing.T) {
	doc := renderPage(t, "index", IndexPage{})
	assert.Equal(t, 1, doc.Find("li.empty").Length())
}

func TestEditorCarriesID(t *testing.T) {
	note := sampleNote("abc", `"quoted" <title>`)
	doc := renderPage(t, "editor", EditorPage{Prefix: "/notes", Action: "/create", Note: &note})

	action, _ := doc.Find("form#editor").Attr("action")
	assert.Equal(t, "/notes/create", action)
	id, _ := doc.Find(`input[name="id"]`).Attr("value")
	assert.Equal(t, "abc", id)
	title, _ := doc.Find(`input[name="title"]`).Attr("value")
	assert.Equal(t, `"quoted" <title>`, title)
}

func TestViewEmbedsRenderedHTML(t *testing.T) {
	note := sampleNote("v", "Hi")
	doc := renderPage(t, "view", ViewPage{Note: &note, HTML: template.HTML("<h1>Hi</h1><p>a<br>b</p>")})

	assert.Equal(t, 1, doc.Find(".note-body h1").Length())
	assert.Equal(t, 1, doc.Find(".note-body br").Length())
	assert.Equal(t, "Hi", strings.TrimSpace(doc.Find("title").Text()))
}

func TestSearchShowsQuery(t *testing.T) {
	doc := renderPage(t, "search", SearchPage{Query: "eggs", Notes: []models.Note{sampleNote("a", "Shopping")}})

	assert.Contains(t, doc.Find("h2").Text(), "eggs")
	assert.Equal(t, 1, doc.Find("li.note").Length())
}

func TestRenderUnknownPage(t *testing.T) {
	pages, err := NewPages()
	require.NoError(t, err)
	assert.Error(t, pages.Render(&bytes.Buffer{}, "missing", nil))
}

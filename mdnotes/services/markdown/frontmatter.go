package markdown

import (
	"bytes"
	"fmt"

	"mdnotes/mdnotes/sources/db/models"

	"gopkg.in/yaml.v3"
)

type frontMatter struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Created string `yaml:"created"`
	Updated string `yaml:"updated"`
}

// Export writes a note as a standalone markdown document: a YAML front matter
// block followed by the raw content.
func Export(note *models.Note) ([]byte, error) {
	meta, err := yaml.Marshal(frontMatter{
		ID:      note.ID,
		Title:   note.TitleText(),
		Created: note.Created.String(),
		Updated: note.Updated.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("front matter for %s: %w", note.ID, err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	buf.WriteString(note.ContentText())
	return buf.Bytes(), nil
}

// ExportName is the file or object name a note is exported under.
func ExportName(note *models.Note) string {
	return ExportFileName(note.ID)
}

func ExportFileName(id string) string {
	return id + ".md"
}

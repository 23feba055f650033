package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns note content into HTML with a fixed feature set: fenced code
// blocks, tables, and a <br> for every newline inside a paragraph. Raw HTML in
// the source is omitted from the output.
//
// A goldmark.Markdown holds no per-call state, so one Renderer serves every request.
type Renderer struct {
	engine goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			// fenced code blocks are part of CommonMark and need no extension
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

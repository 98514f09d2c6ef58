package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns bot markdown into terminal text.
type Renderer interface {
	Render(markdown string) (string, error)
}

// NewMarkdownRenderer builds a glamour renderer. An empty style picks one
// from the terminal background.
func NewMarkdownRenderer(style string, wrap int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wrap)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// plainRenderer leaves text untouched; used when glamour fails to start.
type plainRenderer struct{}

func (plainRenderer) Render(markdown string) (string, error) {
	return markdown, nil
}

func renderMarkdown(r Renderer, text string) string {
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

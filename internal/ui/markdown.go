package ui

import "github.com/charmbracelet/glamour"

// MarkdownRenderer renders model output for the terminal.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// GlamourRenderer implements MarkdownRenderer with glamour.
type GlamourRenderer struct {
	renderer *glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer tuned to the terminal width. width
// of 0 lets glamour pick a default.
func NewGlamourRenderer(width int) (*GlamourRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &GlamourRenderer{renderer: r}, nil
}

// Render renders markdown for display. On failure the raw markdown comes
// back so output is never lost.
func (g *GlamourRenderer) Render(markdown string) (string, error) {
	out, err := g.renderer.Render(markdown)
	if err != nil {
		return markdown, err
	}
	return out, nil
}

// PlainRenderer passes text through unchanged. Used when stdout is not a
// terminal.
type PlainRenderer struct{}

func (PlainRenderer) Render(markdown string) (string, error) { return markdown, nil }
